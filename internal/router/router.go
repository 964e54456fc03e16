// Package router maps location paths to the view they activate.
// It is pure dispatch: unmatched paths log and leave the caller where it is.
package router

import (
	"strconv"
	"strings"

	"github.com/quilltui/quill/internal/logging"
)

// View names a feature screen.
type View int

const (
	ViewAuth View = iota
	ViewFeed
	ViewPost
	ViewProfile
)

// Route is the result of a dispatch: the view to activate plus any
// parameter parsed out of the path.
type Route struct {
	View   View
	PostID int
}

var exact = map[string]View{
	"/":        ViewAuth,
	"/auth":    ViewAuth,
	"/feed":    ViewFeed,
	"/profile": ViewProfile,
}

// Resolve maps a path to its route. The second return is false for paths
// outside the table; callers treat that as a no-op.
func Resolve(path string) (Route, bool) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Route{View: ViewAuth}, true
	}
	if len(trimmed) > 1 {
		trimmed = strings.TrimSuffix(trimmed, "/")
	}

	if view, ok := exact[trimmed]; ok {
		return Route{View: view}, true
	}

	if rest, ok := strings.CutPrefix(trimmed, "/feed/post/"); ok {
		id, err := strconv.Atoi(rest)
		if err == nil && id > 0 {
			return Route{View: ViewPost, PostID: id}, true
		}
	}

	logging.L().Error().Str("path", path).Msg("unknown path")
	return Route{}, false
}
