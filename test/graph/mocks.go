package graph

import (
	"context"
	"sync"

	userdomain "github.com/trandrew/microblog/internal/user/domain"
)

type mockGraphRepo struct {
	followFunc         func(ctx context.Context, follower, followed userdomain.ID) (bool, error)
	unfollowFunc       func(ctx context.Context, follower, followed userdomain.ID) (bool, error)
	isFollowingFunc    func(ctx context.Context, follower, followed userdomain.ID) (bool, error)
	followerCountFunc  func(ctx context.Context, user userdomain.ID) (int, error)
	followingCountFunc func(ctx context.Context, user userdomain.ID) (int, error)
}

func (m *mockGraphRepo) Follow(ctx context.Context, follower, followed userdomain.ID) (bool, error) {
	if m.followFunc != nil {
		return m.followFunc(ctx, follower, followed)
	}
	return true, nil
}

func (m *mockGraphRepo) Unfollow(ctx context.Context, follower, followed userdomain.ID) (bool, error) {
	if m.unfollowFunc != nil {
		return m.unfollowFunc(ctx, follower, followed)
	}
	return true, nil
}

func (m *mockGraphRepo) IsFollowing(ctx context.Context, follower, followed userdomain.ID) (bool, error) {
	if m.isFollowingFunc != nil {
		return m.isFollowingFunc(ctx, follower, followed)
	}
	return false, nil
}

func (m *mockGraphRepo) FollowerCount(ctx context.Context, user userdomain.ID) (int, error) {
	if m.followerCountFunc != nil {
		return m.followerCountFunc(ctx, user)
	}
	return 0, nil
}

func (m *mockGraphRepo) FollowingCount(ctx context.Context, user userdomain.ID) (int, error) {
	if m.followingCountFunc != nil {
		return m.followingCountFunc(ctx, user)
	}
	return 0, nil
}

// memoryGraphRepo keeps the edge set in memory so tests can exercise the
// follow and unfollow semantics end to end.
type memoryGraphRepo struct {
	mu    sync.Mutex
	edges map[[2]userdomain.ID]struct{}
}

func newMemoryGraphRepo() *memoryGraphRepo {
	return &memoryGraphRepo{edges: make(map[[2]userdomain.ID]struct{})}
}

func (r *memoryGraphRepo) Follow(ctx context.Context, follower, followed userdomain.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]userdomain.ID{follower, followed}
	if _, ok := r.edges[key]; ok {
		return false, nil
	}
	r.edges[key] = struct{}{}
	return true, nil
}

func (r *memoryGraphRepo) Unfollow(ctx context.Context, follower, followed userdomain.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]userdomain.ID{follower, followed}
	if _, ok := r.edges[key]; !ok {
		return false, nil
	}
	delete(r.edges, key)
	return true, nil
}

func (r *memoryGraphRepo) IsFollowing(ctx context.Context, follower, followed userdomain.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.edges[[2]userdomain.ID{follower, followed}]
	return ok, nil
}

func (r *memoryGraphRepo) FollowerCount(ctx context.Context, user userdomain.ID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for key := range r.edges {
		if key[1] == user {
			n++
		}
	}
	return n, nil
}

func (r *memoryGraphRepo) FollowingCount(ctx context.Context, user userdomain.ID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for key := range r.edges {
		if key[0] == user {
			n++
		}
	}
	return n, nil
}
