package user

import (
	"context"
	"time"

	userdomain "github.com/trandrew/microblog/internal/user/domain"
	userrepo "github.com/trandrew/microblog/internal/user/repository"
)

type mockUserRepo struct {
	createFunc              func(ctx context.Context, user userdomain.User) (userdomain.User, error)
	findByIDFunc            func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	findByUsernameFunc      func(ctx context.Context, username string) (userdomain.User, error)
	findByEmailFunc         func(ctx context.Context, email string) (userdomain.User, error)
	updateProfileFunc       func(ctx context.Context, id userdomain.ID, username, aboutMe string) error
	updateLastSeenFunc      func(ctx context.Context, id userdomain.ID, seenAt time.Time) error
	updateLastSeenBatchFunc func(ctx context.Context, ids []userdomain.ID, seenAt time.Time) error
	deleteFunc              func(ctx context.Context, id userdomain.ID) error
	txManagerFunc           func() userrepo.TxManager
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = 1
	return user, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id userdomain.ID, username, aboutMe string) error {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, id, username, aboutMe)
	}
	return nil
}

func (m *mockUserRepo) UpdateLastSeen(ctx context.Context, id userdomain.ID, seenAt time.Time) error {
	if m.updateLastSeenFunc != nil {
		return m.updateLastSeenFunc(ctx, id, seenAt)
	}
	return nil
}

func (m *mockUserRepo) UpdateLastSeenBatch(ctx context.Context, ids []userdomain.ID, seenAt time.Time) error {
	if m.updateLastSeenBatchFunc != nil {
		return m.updateLastSeenBatchFunc(ctx, ids, seenAt)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id userdomain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepo) TxManager() userrepo.TxManager {
	if m.txManagerFunc != nil {
		return m.txManagerFunc()
	}
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}
