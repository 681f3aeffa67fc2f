package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trandrew/microblog/internal/common/clock"
	commoncrypto "github.com/trandrew/microblog/internal/common/crypto"
	"github.com/trandrew/microblog/internal/common/logger"
	"github.com/trandrew/microblog/internal/observability/metrics"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
	userrepo "github.com/trandrew/microblog/internal/user/repository"
	userservice "github.com/trandrew/microblog/internal/user/service"
)

const resetClaim = "reset_password"

// PasswordResetService issues and resolves password-reset tokens. A token
// is a time-limited HS256 JWT naming the user; delivery of the token to
// the user (email) is the caller's concern.
type PasswordResetService struct {
	users       userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	secret      []byte
	ttl         time.Duration
	clock       clock.Clock
	log         *logger.Logger
}

type Deps struct {
	Users       userrepo.Repository
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

type Config struct {
	SecretKey string
	TokenTTL  time.Duration
}

func NewPasswordResetService(deps Deps, cfg Config) *PasswordResetService {
	return &PasswordResetService{
		users:       deps.Users,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		secret:      []byte(cfg.SecretKey),
		ttl:         cfg.TokenTTL,
		clock:       deps.Clock,
		log:         deps.Log,
	}
}

func (s *PasswordResetService) IssueToken(ctx context.Context, user userdomain.User) (string, error) {
	jti, err := s.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	claims := jwt.MapClaims{
		resetClaim: int64(user.ID),
		"jti":      jti,
		"exp":      now.Add(s.ttl).Unix(),
		"iat":      now.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	metrics.ResetTokensIssued.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": int64(user.ID),
		"action":  "reset_token_issued",
	}).Info("password reset token issued")

	return token, nil
}

// RequestReset looks up the account by email and issues a token for it.
// The not-found case surfaces as ErrUserNotFound so the boundary layer can
// decide whether to hide it from the requester.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return s.IssueToken(ctx, user)
}

// ResolveToken verifies the token and returns the user it names. Expired,
// tampered and malformed tokens all resolve to the same invalid-token
// error; callers treat it as an absent result.
func (s *PasswordResetService) ResolveToken(ctx context.Context, token string) (userdomain.User, error) {
	userID, err := s.parseToken(token)
	if err != nil {
		metrics.ResetTokensRejected.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"action": "reset_token_rejected",
		}).Warnf("password reset token rejected: %v", err)
		return userdomain.User{}, ErrInvalidResetToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.ResetTokensRejected.Inc()
			return userdomain.User{}, ErrInvalidResetToken
		}
		return userdomain.User{}, err
	}

	metrics.ResetTokensResolved.Inc()
	return user, nil
}

// ResetPassword resolves the token and rewrites the credential hash inside
// one transaction.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.ResolveToken(ctx, token)
	if err != nil {
		return err
	}

	if err := userservice.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": int64(user.ID),
			"action":  "reset_hash_failed",
		}).Errorf("password reset failed: hash error: %v", err)
		return err
	}

	err = s.users.TxManager().WithTx(ctx, func(txCtx context.Context, tx userrepo.Tx) error {
		if _, err := tx.FindByIDForUpdate(txCtx, user.ID); err != nil {
			return err
		}
		return tx.UpdatePassword(txCtx, user.ID, hash)
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": int64(user.ID),
			"action":  "reset_password_failed",
		}).Errorf("password reset failed: %v", err)
		return err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": int64(user.ID),
		"action":  "reset_password_success",
	}).Info("password reset success")

	return nil
}

func (s *PasswordResetService) parseToken(token string) (userdomain.ID, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return 0, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims type")
	}

	raw, ok := mapClaims[resetClaim].(float64)
	if !ok {
		return 0, errors.New("missing reset claim")
	}

	return userdomain.ID(int64(raw)), nil
}
