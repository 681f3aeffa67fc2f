package domain

import "time"

type ID int64

type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	AboutMe      string
	LastSeen     time.Time
	CreatedAt    time.Time
}

// Profile is the public slice of a user record, safe to hand to callers
// that must never see the credential hash.
type Profile struct {
	ID       ID
	Username string
	AboutMe  string
	LastSeen time.Time
}

func (u User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		AboutMe:  u.AboutMe,
		LastSeen: u.LastSeen,
	}
}
