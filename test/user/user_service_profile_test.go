package user

import (
	"context"
	"strings"
	"testing"
	"time"

	commonerrors "github.com/trandrew/microblog/internal/common/errors"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
	userrepo "github.com/trandrew/microblog/internal/user/repository"
	"github.com/trandrew/microblog/internal/user/service"
)

func existingUser() userdomain.User {
	return userdomain.User{
		ID:       5,
		Username: "john",
		Email:    "john@example.com",
		AboutMe:  "old about",
	}
}

func TestUserService_UpdateProfile_Success(t *testing.T) {
	svc, mockRepo, _, _ := setupUserService(t)

	mockRepo.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return existingUser(), nil
	}

	var gotUsername, gotAbout string
	mockRepo.updateProfileFunc = func(ctx context.Context, id userdomain.ID, username, aboutMe string) error {
		gotUsername = username
		gotAbout = aboutMe
		return nil
	}

	newName := "johnny"
	updated, err := svc.UpdateProfile(context.Background(), 5, service.UpdateProfileInput{
		Username: &newName,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotUsername != "johnny" {
		t.Errorf("expected new username to be stored, got %s", gotUsername)
	}
	if gotAbout != "old about" {
		t.Errorf("expected untouched about text to be kept, got %q", gotAbout)
	}
	if updated.Username != "johnny" {
		t.Errorf("expected returned user to carry new username, got %s", updated.Username)
	}
}

func TestUserService_UpdateProfile_AboutOnly(t *testing.T) {
	svc, mockRepo, _, _ := setupUserService(t)

	mockRepo.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return existingUser(), nil
	}

	var gotUsername, gotAbout string
	mockRepo.updateProfileFunc = func(ctx context.Context, id userdomain.ID, username, aboutMe string) error {
		gotUsername = username
		gotAbout = aboutMe
		return nil
	}

	about := "new about"
	_, err := svc.UpdateProfile(context.Background(), 5, service.UpdateProfileInput{
		AboutMe: &about,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotUsername != "john" {
		t.Errorf("expected username unchanged, got %s", gotUsername)
	}
	if gotAbout != "new about" {
		t.Errorf("expected new about text, got %q", gotAbout)
	}
}

func TestUserService_UpdateProfile_ValidationError(t *testing.T) {
	svc, mockRepo, _, _ := setupUserService(t)

	mockRepo.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return existingUser(), nil
	}
	mockRepo.updateProfileFunc = func(ctx context.Context, id userdomain.ID, username, aboutMe string) error {
		t.Error("repository must not be reached on invalid input")
		return nil
	}

	badName := "ab"
	longAbout := strings.Repeat("x", 141)

	for _, tc := range []struct {
		name  string
		input service.UpdateProfileInput
	}{
		{"short username", service.UpdateProfileInput{Username: &badName}},
		{"about too long", service.UpdateProfileInput{AboutMe: &longAbout}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateProfile(context.Background(), 5, tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "VALIDATION_FAILED" {
				t.Errorf("expected VALIDATION_FAILED, got %v", err)
			}
		})
	}
}

func TestUserService_UpdateProfile_UsernameTaken(t *testing.T) {
	svc, mockRepo, _, _ := setupUserService(t)

	mockRepo.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return existingUser(), nil
	}
	mockRepo.updateProfileFunc = func(ctx context.Context, id userdomain.ID, username, aboutMe string) error {
		return commonerrors.ErrUsernameAlreadyExists
	}

	newName := "susan"
	_, err := svc.UpdateProfile(context.Background(), 5, service.UpdateProfileInput{
		Username: &newName,
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "USERNAME_TAKEN" {
		t.Errorf("expected USERNAME_TAKEN, got %v", err)
	}
}

func TestUserService_UpdateProfile_UserNotFound(t *testing.T) {
	svc, mockRepo, _, _ := setupUserService(t)

	mockRepo.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}

	name := "johnny"
	_, err := svc.UpdateProfile(context.Background(), 99, service.UpdateProfileInput{
		Username: &name,
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "USER_NOT_FOUND" {
		t.Errorf("expected USER_NOT_FOUND, got %v", err)
	}
}

func TestUserService_TouchLastSeen(t *testing.T) {
	svc, mockRepo, _, mockClock := setupUserService(t)

	var gotID userdomain.ID
	var gotSeenAt time.Time
	mockRepo.updateLastSeenFunc = func(ctx context.Context, id userdomain.ID, seenAt time.Time) error {
		gotID = id
		gotSeenAt = seenAt
		return nil
	}

	mockClock.SetTime(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC))

	if err := svc.TouchLastSeen(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotID != 5 {
		t.Errorf("expected user id 5, got %d", gotID)
	}
	if !gotSeenAt.Equal(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("expected clock time to be stored, got %v", gotSeenAt)
	}
}
