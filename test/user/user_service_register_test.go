package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/trandrew/microblog/internal/common/clock"
	commonerrors "github.com/trandrew/microblog/internal/common/errors"
	"github.com/trandrew/microblog/internal/common/logger"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
	"github.com/trandrew/microblog/internal/user/service"
)

func setupUserService(t *testing.T) (*service.Service, *mockUserRepo, *mockHasher, *clock.MockClock) {
	_ = t
	mockRepo := &mockUserRepo{}
	mockHasher := &mockHasher{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	log, _ := logger.New("", "test", "info")

	svc := service.NewService(service.Deps{
		Repo:   mockRepo,
		Hasher: mockHasher,
		Clock:  mockClock,
		Log:    log,
	})

	return svc, mockRepo, mockHasher, mockClock
}

func TestUserService_Register_Success(t *testing.T) {
	svc, mockRepo, mockHasher, _ := setupUserService(t)

	mockHasher.hashFunc = func(p string) (string, error) {
		return "hashed_" + p, nil
	}

	mockRepo.createFunc = func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
		if user.Username != "john" {
			t.Errorf("expected username john, got %s", user.Username)
		}
		if user.Email != "john@example.com" {
			t.Errorf("expected trimmed email, got %q", user.Email)
		}
		if user.PasswordHash != "hashed_secretpass1" {
			t.Errorf("expected password hash, got %s", user.PasswordHash)
		}
		user.ID = 42
		user.CreatedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		user.LastSeen = user.CreatedAt
		return user, nil
	}

	created, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "john",
		Email:    "  john@example.com ",
		Password: "secretpass1",
		AboutMe:  "hello",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID != 42 {
		t.Errorf("expected id 42, got %d", created.ID)
	}
	if created.AboutMe != "hello" {
		t.Errorf("expected about text to be kept, got %q", created.AboutMe)
	}
}

func TestUserService_Register_ValidationError(t *testing.T) {
	svc, _, _, _ := setupUserService(t)

	testCases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "a@b.com", "password123"},
		{"long username", strings.Repeat("a", 33), "a@b.com", "password123"},
		{"invalid username chars", "john doe", "a@b.com", "password123"},
		{"username starts with dash", "-john", "a@b.com", "password123"},
		{"username ends with underscore", "john_", "a@b.com", "password123"},
		{"missing email", "john", "", "password123"},
		{"malformed email", "john", "not-an-email", "password123"},
		{"short password", "john", "a@b.com", "pass123"},
		{"long password", "john", "a@b.com", strings.Repeat("p", 73)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), service.RegisterInput{
				Username: tc.username,
				Email:    tc.email,
				Password: tc.password,
			})

			if err == nil {
				t.Fatal("expected validation error")
			}
			if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "VALIDATION_FAILED" {
				t.Errorf("expected VALIDATION_FAILED error, got %v", err)
			}
		})
	}
}

func TestUserService_Register_UsernameAlreadyExists(t *testing.T) {
	svc, mockRepo, _, _ := setupUserService(t)

	mockRepo.createFunc = func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
		return userdomain.User{}, commonerrors.ErrUsernameAlreadyExists
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "john",
		Email:    "john@example.com",
		Password: "secretpass1",
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "USERNAME_TAKEN" {
		t.Errorf("expected USERNAME_TAKEN error, got %v", err)
	}
}

func TestUserService_Register_EmailAlreadyExists(t *testing.T) {
	svc, mockRepo, _, _ := setupUserService(t)

	mockRepo.createFunc = func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
		return userdomain.User{}, commonerrors.ErrEmailAlreadyExists
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "john",
		Email:    "john@example.com",
		Password: "secretpass1",
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "EMAIL_TAKEN" {
		t.Errorf("expected EMAIL_TAKEN error, got %v", err)
	}
}

func TestUserService_Register_HashError(t *testing.T) {
	svc, _, mockHasher, _ := setupUserService(t)

	mockHasher.hashFunc = func(p string) (string, error) {
		return "", errors.New("hash error")
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "john",
		Email:    "john@example.com",
		Password: "secretpass1",
	})

	if err == nil {
		t.Fatal("expected error")
	}
}
