package client

import (
	"strings"

	"github.com/thoughtcloud/thoughtcloud/internal/model"
)

// PostIndex holds the full fetched post collection and derives the
// paginated, search-filtered view. Pure local state: no network, no
// persistence.
//
// Changing the query or the page size resets the page to 1. SetPage itself
// does not clamp; Displayed simply returns an empty slice beyond the last
// page, and render layers disable navigation out of bounds.
type PostIndex struct {
	all      []model.PostView
	page     int
	pageSize int
	query    string
}

func NewPostIndex() *PostIndex {
	return &PostIndex{page: 1, pageSize: 10}
}

// SetAll replaces the full collection, e.g. after a fetch-all or a mutation
// echo.
func (idx *PostIndex) SetAll(posts []model.PostView) {
	idx.all = posts
}

func (idx *PostIndex) SetQuery(query string) {
	idx.query = query
	idx.page = 1
}

func (idx *PostIndex) SetPageSize(n int) {
	if n < 1 {
		return
	}
	idx.pageSize = n
	idx.page = 1
}

func (idx *PostIndex) SetPage(page int) {
	idx.page = page
}

func (idx *PostIndex) Page() int     { return idx.page }
func (idx *PostIndex) PageSize() int { return idx.pageSize }
func (idx *PostIndex) Query() string { return idx.query }
func (idx *PostIndex) Total() int    { return len(idx.Filtered()) }

// Filtered returns the posts matching the query: case-insensitive substring
// match over title, content and author username. An empty query matches
// everything.
func (idx *PostIndex) Filtered() []model.PostView {
	if idx.query == "" {
		return idx.all
	}

	query := strings.ToLower(idx.query)
	matched := []model.PostView{}
	for _, post := range idx.all {
		if strings.Contains(strings.ToLower(post.Title), query) ||
			strings.Contains(strings.ToLower(post.Content), query) ||
			strings.Contains(strings.ToLower(post.Author.Username), query) {
			matched = append(matched, post)
		}
	}
	return matched
}

// TotalPages is ceil(len(filtered)/pageSize); 0 when nothing matches.
func (idx *PostIndex) TotalPages() int {
	return (len(idx.Filtered()) + idx.pageSize - 1) / idx.pageSize
}

// Displayed returns the 1-indexed page slice of the filtered collection.
func (idx *PostIndex) Displayed() []model.PostView {
	filtered := idx.Filtered()

	start := (idx.page - 1) * idx.pageSize
	if start < 0 || start >= len(filtered) {
		return []model.PostView{}
	}

	end := start + idx.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}
