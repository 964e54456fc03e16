package collection

import (
	"sort"
	"strings"

	"github.com/quilltui/quill/internal/social"
)

// SortKey selects the ordering applied to the held collection.
type SortKey string

const (
	SortTitle  SortKey = "title"
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
)

// Controller holds the latest fetched posts and derives the sequence to
// render under sort and filter. Each feature view owns its own instance.
type Controller struct {
	posts      []social.Post
	filterText string
}

// SetPosts replaces the held collection and resets any active filter text.
func (c *Controller) SetPosts(posts []social.Post) {
	c.posts = posts
	c.filterText = ""
}

// Posts returns the held collection. Sorts mutate it in place, so callers
// observe the current order.
func (c *Controller) Posts() []social.Post {
	return c.posts
}

// Len reports the size of the held collection before filtering.
func (c *Controller) Len() int {
	return len(c.posts)
}

// SortBy reorders the held collection in place. Title sorting is
// case-insensitive ascending and stable; equal titles keep their prior order.
func (c *Controller) SortBy(key SortKey) {
	switch key {
	case SortTitle:
		sort.SliceStable(c.posts, func(i, j int) bool {
			return strings.ToLower(c.posts[i].Title) < strings.ToLower(c.posts[j].Title)
		})
	case SortNewest:
		sort.SliceStable(c.posts, func(i, j int) bool {
			return c.posts[i].ParsedCreated().After(c.posts[j].ParsedCreated())
		})
	case SortOldest:
		sort.SliceStable(c.posts, func(i, j int) bool {
			return c.posts[i].ParsedCreated().Before(c.posts[j].ParsedCreated())
		})
	}
}

// Filter records text and returns the subsequence whose title or body
// contains it case-insensitively. The held collection is not mutated; empty
// text returns it whole.
func (c *Controller) Filter(text string) []social.Post {
	c.filterText = text
	return c.Visible()
}

// FilterText returns the active filter text.
func (c *Controller) FilterText() string {
	return c.filterText
}

// Visible returns the collection under the active filter, in held order.
func (c *Controller) Visible() []social.Post {
	needle := strings.ToLower(strings.TrimSpace(c.filterText))
	if needle == "" {
		return c.posts
	}
	var out []social.Post
	for _, p := range c.posts {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Body), needle) {
			out = append(out, p)
		}
	}
	return out
}
