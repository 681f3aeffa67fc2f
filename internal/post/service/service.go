package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/trandrew/microblog/internal/common/clock"
	"github.com/trandrew/microblog/internal/common/constants"
	commonerrors "github.com/trandrew/microblog/internal/common/errors"
	"github.com/trandrew/microblog/internal/common/logger"
	"github.com/trandrew/microblog/internal/observability/metrics"
	"github.com/trandrew/microblog/internal/post/domain"
	postrepo "github.com/trandrew/microblog/internal/post/repository"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
)

var (
	ErrEmptyBody   = commonerrors.ErrEmptyPostBody
	ErrBodyTooLong = commonerrors.ErrPostBodyTooLong
)

type Service struct {
	repo  postrepo.Repository
	clock clock.Clock
	log   *logger.Logger
}

func NewService(repo postrepo.Repository, clock clock.Clock, log *logger.Logger) *Service {
	return &Service{repo: repo, clock: clock, log: log}
}

type CreateInput struct {
	AuthorID userdomain.ID
	Body     string
	// CreatedAt overrides the post timestamp when non-zero. Normal
	// callers leave it empty; tests use it to control ordering.
	CreatedAt time.Time
}

func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Post, error) {
	if strings.TrimSpace(input.Body) == "" {
		return domain.Post{}, ErrEmptyBody
	}
	if utf8.RuneCountInString(input.Body) > constants.PostBodyMaxLength {
		return domain.Post{}, ErrBodyTooLong
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.clock.Now()
	}

	post := domain.Post{
		AuthorID:  input.AuthorID,
		Body:      input.Body,
		CreatedAt: createdAt,
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author_id": int64(input.AuthorID),
			"action":    "post_create_failed",
		}).Errorf("post create failed: %v", err)
		return domain.Post{}, err
	}

	metrics.PostsCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"author_id": int64(created.AuthorID),
		"post_id":   int64(created.ID),
		"action":    "post_created",
	}).Info("post created")

	return created, nil
}
