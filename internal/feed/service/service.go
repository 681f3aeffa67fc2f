package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trandrew/microblog/internal/common/constants"
	"github.com/trandrew/microblog/internal/common/logger"
	"github.com/trandrew/microblog/internal/observability/metrics"
	"github.com/trandrew/microblog/internal/post/domain"
	postrepo "github.com/trandrew/microblog/internal/post/repository"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
)

// Service composes the three feed variants over the post store. All of
// them share the (created_at DESC, id DESC) total order and the paginated
// window contract; the store runs each variant as a single query.
type Service struct {
	posts           postrepo.Repository
	defaultPageSize int
	log             *logger.Logger
}

func NewService(posts postrepo.Repository, defaultPageSize int, log *logger.Logger) *Service {
	if defaultPageSize < 1 {
		defaultPageSize = constants.DefaultPostsPerPage
	}
	return &Service{
		posts:           posts,
		defaultPageSize: defaultPageSize,
		log:             log,
	}
}

// Home is the personalized timeline: the user's own posts plus posts of
// everyone the user follows.
func (s *Service) Home(ctx context.Context, userID userdomain.ID, req domain.PageRequest) (domain.Page, error) {
	timer := prometheus.NewTimer(metrics.FeedQueryDurationSeconds.WithLabelValues("home"))
	defer timer.ObserveDuration()

	return s.posts.ListFeed(ctx, userID, s.normalize(req))
}

// Explore is the global feed: every post, newest first.
func (s *Service) Explore(ctx context.Context, req domain.PageRequest) (domain.Page, error) {
	timer := prometheus.NewTimer(metrics.FeedQueryDurationSeconds.WithLabelValues("explore"))
	defer timer.ObserveDuration()

	return s.posts.ListAll(ctx, s.normalize(req))
}

// ByAuthor restricts the feed to a single author.
func (s *Service) ByAuthor(ctx context.Context, authorID userdomain.ID, req domain.PageRequest) (domain.Page, error) {
	timer := prometheus.NewTimer(metrics.FeedQueryDurationSeconds.WithLabelValues("author"))
	defer timer.ObserveDuration()

	return s.posts.ListByAuthor(ctx, authorID, s.normalize(req))
}

func (s *Service) normalize(req domain.PageRequest) domain.PageRequest {
	req = req.Normalized(s.defaultPageSize)
	if req.PageSize > constants.MaxPostsPerPage {
		req.PageSize = constants.MaxPostsPerPage
	}
	return req
}
