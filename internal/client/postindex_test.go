package client

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thoughtcloud/thoughtcloud/internal/model"
)

func indexWith(posts ...model.PostView) *PostIndex {
	idx := NewPostIndex()
	idx.SetAll(posts)
	return idx
}

func numberedPosts(n int) []model.PostView {
	posts := make([]model.PostView, 0, n)
	for i := 1; i <= n; i++ {
		posts = append(posts, model.PostView{
			ID:    int64(i),
			Title: fmt.Sprintf("post %d", i),
		})
	}
	return posts
}

func TestFilterMatchesTitleContentAndAuthor(t *testing.T) {
	idx := indexWith(
		model.PostView{ID: 1, Title: "Go"},
		model.PostView{ID: 2, Title: "Rust", Content: "systems"},
		model.PostView{ID: 3, Title: "X", Author: model.PostAuthor{Username: "rustacean"}},
	)

	idx.SetQuery("rust")

	filtered := idx.Filtered()
	require.Len(t, filtered, 2)
	assert.Equal(t, int64(2), filtered[0].ID)
	assert.Equal(t, int64(3), filtered[1].ID)
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	idx := indexWith(numberedPosts(3)...)
	assert.Len(t, idx.Filtered(), 3)
}

func TestPaginationMath(t *testing.T) {
	idx := indexWith(numberedPosts(12)...)
	idx.SetPageSize(5)

	assert.Equal(t, 3, idx.TotalPages())

	idx.SetPage(3)
	assert.Len(t, idx.Displayed(), 2)
}

func TestDisplayedSlicesOneIndexedPages(t *testing.T) {
	idx := indexWith(numberedPosts(12)...)
	idx.SetPageSize(5)
	idx.SetPage(2)

	displayed := idx.Displayed()
	require.Len(t, displayed, 5)
	assert.Equal(t, int64(6), displayed[0].ID)
	assert.Equal(t, int64(10), displayed[4].ID)
}

func TestQueryResetsPage(t *testing.T) {
	idx := indexWith(numberedPosts(12)...)
	idx.SetPageSize(5)
	idx.SetPage(3)

	idx.SetQuery("post")
	assert.Equal(t, 1, idx.Page())
}

func TestPageSizeResetsPageAndIsIdempotent(t *testing.T) {
	idx := indexWith(numberedPosts(12)...)
	idx.SetPage(3)

	idx.SetPageSize(5)
	assert.Equal(t, 1, idx.Page())
	first := idx.Displayed()

	idx.SetPageSize(5)
	assert.Equal(t, first, idx.Displayed())
}

func TestPageSizeIgnoresNonPositive(t *testing.T) {
	idx := indexWith(numberedPosts(3)...)
	idx.SetPageSize(0)
	assert.Equal(t, 10, idx.PageSize())
}

func TestTotalPagesZeroWhenEmpty(t *testing.T) {
	idx := NewPostIndex()
	assert.Equal(t, 0, idx.TotalPages())

	idx.SetAll(numberedPosts(3))
	idx.SetQuery("no such post")
	assert.Equal(t, 0, idx.TotalPages())
}

func TestDisplayedOutOfRangeIsEmpty(t *testing.T) {
	idx := indexWith(numberedPosts(3)...)

	// SetPage deliberately does not clamp.
	idx.SetPage(99)
	assert.Equal(t, 99, idx.Page())
	assert.Empty(t, idx.Displayed())

	idx.SetPage(0)
	assert.Empty(t, idx.Displayed())
}
