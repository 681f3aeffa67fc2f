package domain

// PageRequest is the shared pagination contract: page is 1-indexed,
// page size is a positive row count. Invalid values are normalized,
// never rejected, and an out-of-range page yields an empty Page.
type PageRequest struct {
	Page     int
	PageSize int
}

func (r PageRequest) Normalized(defaultSize int) PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = defaultSize
	}
	return r
}

func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// FetchLimit is one past the page size, so the query itself answers
// whether a next page exists.
func (r PageRequest) FetchLimit() int {
	return r.PageSize + 1
}

type Page struct {
	Items    []Post
	Page     int
	PageSize int
	HasNext  bool
	HasPrev  bool
}

// NewPage builds a Page from rows fetched with FetchLimit. The extra row,
// when present, is dropped and recorded as HasNext.
func NewPage(items []Post, req PageRequest) Page {
	hasNext := len(items) > req.PageSize
	if hasNext {
		items = items[:req.PageSize]
	}
	return Page{
		Items:    items,
		Page:     req.Page,
		PageSize: req.PageSize,
		HasNext:  hasNext,
		HasPrev:  req.Page > 1,
	}
}
