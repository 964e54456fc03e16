package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quilltui/quill/internal/social"
)

func samplePosts() []social.Post {
	return []social.Post{
		{ID: 1, Title: "banana bread", Body: "recipe", Created: "2024-01-03T00:00:00Z"},
		{ID: 2, Title: "Apple pie", Body: "dessert time", Created: "2024-01-01T00:00:00Z"},
		{ID: 3, Title: "cherry jam", Body: "preserving fruit", Created: "2024-01-02T00:00:00Z"},
	}
}

func ids(posts []social.Post) []int {
	out := make([]int, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestController_SortByTitleIsCaseInsensitiveAndIdempotent(t *testing.T) {
	var c Controller
	c.SetPosts(samplePosts())

	c.SortBy(SortTitle)
	want := []int{2, 1, 3} // Apple, banana, cherry
	require.Equal(t, want, ids(c.Posts()))

	c.SortBy(SortTitle)
	assert.Equal(t, want, ids(c.Posts()), "second sort must not reorder")
}

func TestController_SortByTitleIsStable(t *testing.T) {
	var c Controller
	c.SetPosts([]social.Post{
		{ID: 1, Title: "Same"},
		{ID: 2, Title: "same"},
		{ID: 3, Title: "SAME"},
	})
	c.SortBy(SortTitle)
	assert.Equal(t, []int{1, 2, 3}, ids(c.Posts()), "equal titles keep prior order")
}

func TestController_SortByDateNewestOldestAreReverses(t *testing.T) {
	var c Controller
	c.SetPosts(samplePosts())

	c.SortBy(SortNewest)
	require.Equal(t, []int{1, 3, 2}, ids(c.Posts()))

	c.SortBy(SortOldest)
	require.Equal(t, []int{2, 3, 1}, ids(c.Posts()))
}

func TestController_FilterMatchesTitleOrBody(t *testing.T) {
	var c Controller
	c.SetPosts(samplePosts())

	assert.Equal(t, []int{2}, ids(c.Filter("PIE")), "title match is case-insensitive")
	assert.Equal(t, []int{3}, ids(c.Filter("fruit")), "body text also matches")
	assert.Empty(t, c.Filter("zzz"))
}

func TestController_FilterExcludesOnlyNonMatches(t *testing.T) {
	var c Controller
	c.SetPosts(samplePosts())

	visible := c.Filter("re")
	seen := map[int]bool{}
	for _, p := range visible {
		seen[p.ID] = true
	}
	for _, p := range samplePosts() {
		matches := p.ID == 1 || p.ID == 3 // "bread"/"recipe", "preserving"
		assert.Equal(t, matches, seen[p.ID], "post %d", p.ID)
	}
}

func TestController_EmptyFilterReturnsHeldOrder(t *testing.T) {
	var c Controller
	c.SetPosts(samplePosts())
	c.SortBy(SortNewest)
	before := ids(c.Posts())

	assert.Equal(t, before, ids(c.Filter("")))
	assert.Equal(t, before, ids(c.Filter("   ")), "whitespace counts as empty")
}

func TestController_SetPostsResetsFilter(t *testing.T) {
	var c Controller
	c.SetPosts(samplePosts())
	c.Filter("pie")
	require.Equal(t, "pie", c.FilterText())

	c.SetPosts(samplePosts())
	assert.Empty(t, c.FilterText())
	assert.Len(t, c.Visible(), 3)
}

func TestController_FilterDoesNotMutateHeld(t *testing.T) {
	var c Controller
	c.SetPosts(samplePosts())
	c.Filter("pie")
	assert.Equal(t, 3, c.Len(), "held collection survives filtering")
}
