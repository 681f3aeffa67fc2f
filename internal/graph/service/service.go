package service

import (
	"context"

	commonerrors "github.com/trandrew/microblog/internal/common/errors"
	"github.com/trandrew/microblog/internal/common/logger"
	graphrepo "github.com/trandrew/microblog/internal/graph/repository"
	"github.com/trandrew/microblog/internal/observability/metrics"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
)

var ErrSelfFollow = commonerrors.ErrSelfFollow

// Service owns the follow graph semantics: self-edges are invalid,
// repeated follows and absent unfollows are no-ops.
type Service struct {
	repo graphrepo.Repository
	log  *logger.Logger
}

func NewService(repo graphrepo.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Follow(ctx context.Context, follower, followed userdomain.ID) error {
	if follower == followed {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": int64(follower),
			"action":  "self_follow_rejected",
		}).Warn("follow rejected: cannot follow yourself")
		return ErrSelfFollow
	}

	created, err := s.repo.Follow(ctx, follower, followed)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"follower_id": int64(follower),
			"followed_id": int64(followed),
			"action":      "follow_failed",
		}).Errorf("follow failed: %v", err)
		return err
	}

	if created {
		metrics.FollowsTotal.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"follower_id": int64(follower),
			"followed_id": int64(followed),
			"action":      "follow_created",
		}).Info("follow edge created")
	}

	return nil
}

// Unfollow applies the same self-edge check as Follow; a valid self-edge
// can never exist, so this is belt-and-suspenders, not a separate rule.
func (s *Service) Unfollow(ctx context.Context, follower, followed userdomain.ID) error {
	if follower == followed {
		return ErrSelfFollow
	}

	removed, err := s.repo.Unfollow(ctx, follower, followed)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"follower_id": int64(follower),
			"followed_id": int64(followed),
			"action":      "unfollow_failed",
		}).Errorf("unfollow failed: %v", err)
		return err
	}

	if removed {
		metrics.UnfollowsTotal.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"follower_id": int64(follower),
			"followed_id": int64(followed),
			"action":      "unfollow_removed",
		}).Info("follow edge removed")
	}

	return nil
}

func (s *Service) IsFollowing(ctx context.Context, follower, followed userdomain.ID) (bool, error) {
	return s.repo.IsFollowing(ctx, follower, followed)
}

func (s *Service) FollowerCount(ctx context.Context, user userdomain.ID) (int, error) {
	return s.repo.FollowerCount(ctx, user)
}

func (s *Service) FollowingCount(ctx context.Context, user userdomain.ID) (int, error) {
	return s.repo.FollowingCount(ctx, user)
}
