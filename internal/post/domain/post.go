package domain

import (
	"time"

	userdomain "github.com/trandrew/microblog/internal/user/domain"
)

type ID int64

type Post struct {
	ID        ID
	AuthorID  userdomain.ID
	Body      string
	CreatedAt time.Time
}
