package post

import (
	"context"

	postdomain "github.com/trandrew/microblog/internal/post/domain"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
)

type mockPostRepo struct {
	createFunc       func(ctx context.Context, post postdomain.Post) (postdomain.Post, error)
	listByAuthorFunc func(ctx context.Context, authorID userdomain.ID, req postdomain.PageRequest) (postdomain.Page, error)
	listAllFunc      func(ctx context.Context, req postdomain.PageRequest) (postdomain.Page, error)
	listFeedFunc     func(ctx context.Context, userID userdomain.ID, req postdomain.PageRequest) (postdomain.Page, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post postdomain.Post) (postdomain.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	post.ID = 1
	return post, nil
}

func (m *mockPostRepo) ListByAuthor(ctx context.Context, authorID userdomain.ID, req postdomain.PageRequest) (postdomain.Page, error) {
	if m.listByAuthorFunc != nil {
		return m.listByAuthorFunc(ctx, authorID, req)
	}
	return postdomain.Page{}, nil
}

func (m *mockPostRepo) ListAll(ctx context.Context, req postdomain.PageRequest) (postdomain.Page, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx, req)
	}
	return postdomain.Page{}, nil
}

func (m *mockPostRepo) ListFeed(ctx context.Context, userID userdomain.ID, req postdomain.PageRequest) (postdomain.Page, error) {
	if m.listFeedFunc != nil {
		return m.listFeedFunc(ctx, userID, req)
	}
	return postdomain.Page{}, nil
}
