package graph

import (
	"context"
	"testing"

	commonerrors "github.com/trandrew/microblog/internal/common/errors"
	"github.com/trandrew/microblog/internal/common/logger"
	"github.com/trandrew/microblog/internal/graph/repository"
	"github.com/trandrew/microblog/internal/graph/service"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
)

func setupGraphService(t *testing.T, repo repository.Repository) *service.Service {
	_ = t
	log, _ := logger.New("", "test", "info")
	return service.NewService(repo, log)
}

func TestGraphService_Follow_RejectsSelf(t *testing.T) {
	mockRepo := &mockGraphRepo{
		followFunc: func(ctx context.Context, follower, followed userdomain.ID) (bool, error) {
			t.Error("repository must not be reached for a self edge")
			return false, nil
		},
	}
	svc := setupGraphService(t, mockRepo)

	err := svc.Follow(context.Background(), 1, 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "SELF_FOLLOW" {
		t.Errorf("expected SELF_FOLLOW, got %v", err)
	}
}

func TestGraphService_Unfollow_RejectsSelf(t *testing.T) {
	svc := setupGraphService(t, &mockGraphRepo{})

	err := svc.Unfollow(context.Background(), 2, 2)
	if err == nil {
		t.Fatal("expected error")
	}
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "SELF_FOLLOW" {
		t.Errorf("expected SELF_FOLLOW, got %v", err)
	}
}

func TestGraphService_FollowUnfollow_RoundTrip(t *testing.T) {
	repo := newMemoryGraphRepo()
	svc := setupGraphService(t, repo)
	ctx := context.Background()

	if err := svc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("follow: %v", err)
	}

	following, err := svc.IsFollowing(ctx, 1, 2)
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if !following {
		t.Error("expected edge to exist after follow")
	}

	// The edge is directed.
	reverse, err := svc.IsFollowing(ctx, 2, 1)
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if reverse {
		t.Error("expected no reverse edge")
	}

	if err := svc.Unfollow(ctx, 1, 2); err != nil {
		t.Fatalf("unfollow: %v", err)
	}

	following, err = svc.IsFollowing(ctx, 1, 2)
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if following {
		t.Error("expected edge to be gone after unfollow")
	}
}

func TestGraphService_Follow_Idempotent(t *testing.T) {
	repo := newMemoryGraphRepo()
	svc := setupGraphService(t, repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.Follow(ctx, 1, 2); err != nil {
			t.Fatalf("follow attempt %d: %v", i, err)
		}
	}

	n, err := svc.FollowerCount(ctx, 2)
	if err != nil {
		t.Fatalf("follower count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 follower after repeated follows, got %d", n)
	}
}

func TestGraphService_Unfollow_AbsentEdgeIsNoOp(t *testing.T) {
	repo := newMemoryGraphRepo()
	svc := setupGraphService(t, repo)

	if err := svc.Unfollow(context.Background(), 1, 2); err != nil {
		t.Fatalf("expected no error for absent edge, got %v", err)
	}
}

func TestGraphService_Counts(t *testing.T) {
	repo := newMemoryGraphRepo()
	svc := setupGraphService(t, repo)
	ctx := context.Background()

	// 1 -> 2, 1 -> 3, 3 -> 2
	for _, edge := range [][2]userdomain.ID{{1, 2}, {1, 3}, {3, 2}} {
		if err := svc.Follow(ctx, edge[0], edge[1]); err != nil {
			t.Fatalf("follow %v: %v", edge, err)
		}
	}

	testCases := []struct {
		user      userdomain.ID
		followers int
		following int
	}{
		{1, 0, 2},
		{2, 2, 0},
		{3, 1, 1},
	}

	for _, tc := range testCases {
		followers, err := svc.FollowerCount(ctx, tc.user)
		if err != nil {
			t.Fatalf("follower count for %d: %v", tc.user, err)
		}
		following, err := svc.FollowingCount(ctx, tc.user)
		if err != nil {
			t.Fatalf("following count for %d: %v", tc.user, err)
		}
		if followers != tc.followers || following != tc.following {
			t.Errorf("user %d: expected %d/%d, got %d/%d",
				tc.user, tc.followers, tc.following, followers, following)
		}
	}
}
