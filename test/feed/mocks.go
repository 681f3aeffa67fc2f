package feed

import (
	"context"
	"sort"

	postdomain "github.com/trandrew/microblog/internal/post/domain"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
)

// memoryPostRepo mirrors the store contract: every listing applies the
// (created_at DESC, id DESC) total order and the fetch-one-extra window.
type memoryPostRepo struct {
	posts   []postdomain.Post
	follows map[userdomain.ID]map[userdomain.ID]bool
	nextID  postdomain.ID
}

func newMemoryPostRepo() *memoryPostRepo {
	return &memoryPostRepo{
		follows: make(map[userdomain.ID]map[userdomain.ID]bool),
		nextID:  1,
	}
}

func (r *memoryPostRepo) follow(follower, followed userdomain.ID) {
	if r.follows[follower] == nil {
		r.follows[follower] = make(map[userdomain.ID]bool)
	}
	r.follows[follower][followed] = true
}

func (r *memoryPostRepo) Create(ctx context.Context, post postdomain.Post) (postdomain.Post, error) {
	post.ID = r.nextID
	r.nextID++
	r.posts = append(r.posts, post)
	return post, nil
}

func (r *memoryPostRepo) ListByAuthor(ctx context.Context, authorID userdomain.ID, req postdomain.PageRequest) (postdomain.Page, error) {
	return r.list(req, func(p postdomain.Post) bool {
		return p.AuthorID == authorID
	}), nil
}

func (r *memoryPostRepo) ListAll(ctx context.Context, req postdomain.PageRequest) (postdomain.Page, error) {
	return r.list(req, func(p postdomain.Post) bool {
		return true
	}), nil
}

func (r *memoryPostRepo) ListFeed(ctx context.Context, userID userdomain.ID, req postdomain.PageRequest) (postdomain.Page, error) {
	return r.list(req, func(p postdomain.Post) bool {
		return p.AuthorID == userID || r.follows[userID][p.AuthorID]
	}), nil
}

func (r *memoryPostRepo) list(req postdomain.PageRequest, keep func(postdomain.Post) bool) postdomain.Page {
	matched := make([]postdomain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if keep(p) {
			matched = append(matched, p)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	offset := req.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + req.FetchLimit()
	if end > len(matched) {
		end = len(matched)
	}

	return postdomain.NewPage(matched[offset:end], req)
}
