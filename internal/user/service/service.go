package service

import (
	"context"
	"errors"
	"strings"

	"github.com/trandrew/microblog/internal/common/clock"
	commoncrypto "github.com/trandrew/microblog/internal/common/crypto"
	commonerrors "github.com/trandrew/microblog/internal/common/errors"
	"github.com/trandrew/microblog/internal/common/logger"
	"github.com/trandrew/microblog/internal/observability/metrics"
	"github.com/trandrew/microblog/internal/user/domain"
	userrepo "github.com/trandrew/microblog/internal/user/repository"
)

// Service is the user directory: identity records, credential
// verification, profile edits and last-seen tracking.
type Service struct {
	repo   userrepo.Repository
	hasher commoncrypto.PasswordHasher
	clock  clock.Clock
	log    *logger.Logger
}

type Deps struct {
	Repo   userrepo.Repository
	Hasher commoncrypto.PasswordHasher
	Clock  clock.Clock
	Log    *logger.Logger
}

func NewService(deps Deps) *Service {
	return &Service{
		repo:   deps.Repo,
		hasher: deps.Hasher,
		clock:  deps.Clock,
		log:    deps.Log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	AboutMe  string
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	input.Email = strings.TrimSpace(input.Email)

	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := validateRegisterInput(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return domain.User{}, err
	}

	user := domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		AboutMe:      input.AboutMe,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, commonerrors.ErrUsernameAlreadyExists):
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: username already exists")
			return domain.User{}, ErrUsernameTaken
		case errors.Is(err, commonerrors.ErrEmailAlreadyExists):
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_email_exists",
			}).Warn("register failed: email already registered")
			return domain.User{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return domain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.UsersRegisteredTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": created.Username,
		"user_id":  int64(created.ID),
		"action":   "register_success",
	}).Info("register success")

	return created, nil
}

// VerifyCredentials reports whether the password matches the stored hash.
// An unknown username is a plain false, not an error, so callers cannot
// distinguish it from a wrong password.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_user").Inc()
			return false, nil
		}
		return false, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("wrong_password").Inc()
		return false, nil
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return true, nil
}

// Authenticate is the login entry point: it resolves the user and folds
// every credential failure into ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "login_attempt",
	}).Info("login attempt")

	ok, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return domain.User{}, err
	}
	if !ok {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_invalid_credentials",
		}).Warn("login failed: invalid credentials")
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  int64(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return user, nil
}

type UpdateProfileInput struct {
	Username *string
	AboutMe  *string
}

func (s *Service) UpdateProfile(ctx context.Context, id domain.ID, input UpdateProfileInput) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.AboutMe != nil {
		user.AboutMe = *input.AboutMe
	}

	if err := validateProfile(user.Username, user.AboutMe); err != nil {
		return domain.User{}, err
	}

	if err := s.repo.UpdateProfile(ctx, id, user.Username, user.AboutMe); err != nil {
		if errors.Is(err, commonerrors.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": int64(id),
				"action":  "profile_username_exists",
			}).Warn("profile update failed: username already exists")
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": int64(id),
		"action":  "profile_updated",
	}).Info("profile updated")

	return user, nil
}

// TouchLastSeen advances last_seen to now, once per authenticated
// interaction. Monotonicity is enforced in the store.
func (s *Service) TouchLastSeen(ctx context.Context, id domain.ID) error {
	if err := s.repo.UpdateLastSeen(ctx, id, s.clock.Now()); err != nil {
		return err
	}
	metrics.LastSeenUpdatesTotal.Inc()
	return nil
}

func (s *Service) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}
