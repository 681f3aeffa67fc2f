package feed

import (
	"context"
	"testing"
	"time"

	"github.com/trandrew/microblog/internal/common/logger"
	"github.com/trandrew/microblog/internal/feed/service"
	postdomain "github.com/trandrew/microblog/internal/post/domain"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
)

const (
	john  userdomain.ID = 1
	susan userdomain.ID = 2
	mary  userdomain.ID = 3
	david userdomain.ID = 4
)

func setupFeedService(t *testing.T, repo *memoryPostRepo) *service.Service {
	_ = t
	log, _ := logger.New("", "test", "info")
	return service.NewService(repo, 10, log)
}

func at(minute int) time.Time {
	return time.Date(2024, 1, 1, 12, minute, 0, 0, time.UTC)
}

func addPost(t *testing.T, repo *memoryPostRepo, author userdomain.ID, body string, createdAt time.Time) postdomain.Post {
	post, err := repo.Create(context.Background(), postdomain.Post{
		AuthorID:  author,
		Body:      body,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

// Four users, a post each, and a small follow graph. Every user's feed
// contains their own posts plus their followees' posts, newest first.
func setupScenario(t *testing.T) *memoryPostRepo {
	repo := newMemoryPostRepo()

	addPost(t, repo, john, "post from john", at(1))
	addPost(t, repo, susan, "post from susan", at(4))
	addPost(t, repo, mary, "post from mary", at(3))
	addPost(t, repo, david, "post from david", at(2))

	repo.follow(john, susan)
	repo.follow(john, david)
	repo.follow(susan, mary)
	repo.follow(mary, david)

	return repo
}

func bodies(page postdomain.Page) []string {
	out := make([]string, 0, len(page.Items))
	for _, p := range page.Items {
		out = append(out, p.Body)
	}
	return out
}

func assertBodies(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFeedService_Home(t *testing.T) {
	repo := setupScenario(t)
	svc := setupFeedService(t, repo)
	ctx := context.Background()

	testCases := []struct {
		name string
		user userdomain.ID
		want []string
	}{
		{"john", john, []string{"post from susan", "post from david", "post from john"}},
		{"susan", susan, []string{"post from susan", "post from mary"}},
		{"mary", mary, []string{"post from mary", "post from david"}},
		{"david", david, []string{"post from david"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := svc.Home(ctx, tc.user, postdomain.PageRequest{})
			if err != nil {
				t.Fatalf("home feed: %v", err)
			}
			assertBodies(t, bodies(page), tc.want)
		})
	}
}

func TestFeedService_Explore(t *testing.T) {
	repo := setupScenario(t)
	svc := setupFeedService(t, repo)

	page, err := svc.Explore(context.Background(), postdomain.PageRequest{})
	if err != nil {
		t.Fatalf("explore feed: %v", err)
	}
	assertBodies(t, bodies(page), []string{
		"post from susan",
		"post from mary",
		"post from david",
		"post from john",
	})
}

func TestFeedService_ByAuthor(t *testing.T) {
	repo := setupScenario(t)
	svc := setupFeedService(t, repo)

	page, err := svc.ByAuthor(context.Background(), john, postdomain.PageRequest{})
	if err != nil {
		t.Fatalf("author feed: %v", err)
	}
	assertBodies(t, bodies(page), []string{"post from john"})
}

// Posts sharing a timestamp fall back to id order, newest insert first.
func TestFeedService_TimestampTieBreak(t *testing.T) {
	repo := newMemoryPostRepo()
	same := at(5)
	addPost(t, repo, john, "first insert", same)
	addPost(t, repo, john, "second insert", same)
	svc := setupFeedService(t, repo)

	page, err := svc.ByAuthor(context.Background(), john, postdomain.PageRequest{})
	if err != nil {
		t.Fatalf("author feed: %v", err)
	}
	assertBodies(t, bodies(page), []string{"second insert", "first insert"})
}

func TestFeedService_Pagination(t *testing.T) {
	repo := newMemoryPostRepo()
	for i := 0; i < 7; i++ {
		addPost(t, repo, john, "p", at(i))
	}
	svc := setupFeedService(t, repo)
	ctx := context.Background()

	testCases := []struct {
		page    int
		items   int
		hasNext bool
		hasPrev bool
	}{
		{1, 3, true, false},
		{2, 3, true, true},
		{3, 1, false, true},
		{4, 0, false, true},
	}

	for _, tc := range testCases {
		page, err := svc.Explore(ctx, postdomain.PageRequest{Page: tc.page, PageSize: 3})
		if err != nil {
			t.Fatalf("page %d: %v", tc.page, err)
		}
		if len(page.Items) != tc.items {
			t.Errorf("page %d: expected %d items, got %d", tc.page, tc.items, len(page.Items))
		}
		if page.HasNext != tc.hasNext {
			t.Errorf("page %d: expected HasNext=%v, got %v", tc.page, tc.hasNext, page.HasNext)
		}
		if page.HasPrev != tc.hasPrev {
			t.Errorf("page %d: expected HasPrev=%v, got %v", tc.page, tc.hasPrev, page.HasPrev)
		}
	}
}

// Walking pages until HasNext turns false visits every post exactly once.
func TestFeedService_PaginationIsExhaustive(t *testing.T) {
	repo := newMemoryPostRepo()
	for i := 0; i < 23; i++ {
		addPost(t, repo, john, "p", at(i%10))
	}
	svc := setupFeedService(t, repo)
	ctx := context.Background()

	seen := make(map[postdomain.ID]bool)
	for pageNum := 1; ; pageNum++ {
		page, err := svc.Explore(ctx, postdomain.PageRequest{Page: pageNum, PageSize: 5})
		if err != nil {
			t.Fatalf("page %d: %v", pageNum, err)
		}
		for _, p := range page.Items {
			if seen[p.ID] {
				t.Fatalf("post %d appeared twice", p.ID)
			}
			seen[p.ID] = true
		}
		if !page.HasNext {
			break
		}
	}

	if len(seen) != 23 {
		t.Errorf("expected 23 distinct posts across pages, got %d", len(seen))
	}
}

func TestFeedService_DefaultAndMaxPageSize(t *testing.T) {
	repo := newMemoryPostRepo()
	for i := 0; i < 120; i++ {
		addPost(t, repo, john, "p", at(i%10))
	}
	svc := setupFeedService(t, repo)
	ctx := context.Background()

	page, err := svc.Explore(ctx, postdomain.PageRequest{})
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	if len(page.Items) != 10 {
		t.Errorf("expected default page size 10, got %d items", len(page.Items))
	}

	page, err = svc.Explore(ctx, postdomain.PageRequest{PageSize: 1000})
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	if len(page.Items) != 100 {
		t.Errorf("expected page size capped at 100, got %d items", len(page.Items))
	}
}
