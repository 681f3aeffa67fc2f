package post

import (
	"testing"

	postdomain "github.com/trandrew/microblog/internal/post/domain"
)

func TestPageRequest_Normalized(t *testing.T) {
	testCases := []struct {
		name     string
		in       postdomain.PageRequest
		page     int
		pageSize int
	}{
		{"defaults applied", postdomain.PageRequest{}, 1, 10},
		{"zero page", postdomain.PageRequest{Page: 0, PageSize: 5}, 1, 5},
		{"negative page", postdomain.PageRequest{Page: -3, PageSize: 5}, 1, 5},
		{"negative size", postdomain.PageRequest{Page: 2, PageSize: -1}, 2, 10},
		{"valid untouched", postdomain.PageRequest{Page: 4, PageSize: 25}, 4, 25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalized(10)
			if got.Page != tc.page || got.PageSize != tc.pageSize {
				t.Errorf("expected page %d size %d, got page %d size %d",
					tc.page, tc.pageSize, got.Page, got.PageSize)
			}
		})
	}
}

func TestPageRequest_OffsetAndFetchLimit(t *testing.T) {
	req := postdomain.PageRequest{Page: 3, PageSize: 10}
	if req.Offset() != 20 {
		t.Errorf("expected offset 20, got %d", req.Offset())
	}
	if req.FetchLimit() != 11 {
		t.Errorf("expected fetch limit 11, got %d", req.FetchLimit())
	}
}

func makePosts(n int) []postdomain.Post {
	posts := make([]postdomain.Post, n)
	for i := range posts {
		posts[i] = postdomain.Post{ID: postdomain.ID(i + 1), Body: "p"}
	}
	return posts
}

func TestNewPage_ExtraRowBecomesHasNext(t *testing.T) {
	req := postdomain.PageRequest{Page: 1, PageSize: 3}

	page := postdomain.NewPage(makePosts(4), req)
	if len(page.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(page.Items))
	}
	if !page.HasNext {
		t.Error("expected HasNext when an extra row came back")
	}
	if page.HasPrev {
		t.Error("expected no HasPrev on page 1")
	}
}

func TestNewPage_ExactPageSize(t *testing.T) {
	req := postdomain.PageRequest{Page: 2, PageSize: 3}

	page := postdomain.NewPage(makePosts(3), req)
	if len(page.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(page.Items))
	}
	if page.HasNext {
		t.Error("expected no HasNext when no extra row came back")
	}
	if !page.HasPrev {
		t.Error("expected HasPrev on page 2")
	}
}

func TestNewPage_OutOfRangeIsEmpty(t *testing.T) {
	req := postdomain.PageRequest{Page: 9, PageSize: 10}

	page := postdomain.NewPage(nil, req)
	if len(page.Items) != 0 {
		t.Errorf("expected empty page, got %d items", len(page.Items))
	}
	if page.HasNext {
		t.Error("expected no HasNext on an empty page")
	}
	if !page.HasPrev {
		t.Error("expected HasPrev on a page past the end")
	}
	if page.Page != 9 {
		t.Errorf("expected requested page to be echoed, got %d", page.Page)
	}
}
