package ui

import (
	"strings"
	"time"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// firstLine collapses a post body to a single display line.
func firstLine(value string) string {
	value = strings.TrimSpace(value)
	if idx := strings.IndexAny(value, "\r\n"); idx >= 0 {
		value = value[:idx]
	}
	return value
}

// formatDate renders a wire timestamp for display; the raw value passes
// through when it does not parse.
func formatDate(t time.Time, raw string) string {
	if t.IsZero() {
		return raw
	}
	return t.Format("2 January 2006")
}

// joinTags renders a tag list, skipping blanks.
func joinTags(tags []string) string {
	var keep []string
	for _, tag := range tags {
		if strings.TrimSpace(tag) != "" {
			keep = append(keep, "#"+strings.TrimSpace(tag))
		}
	}
	return strings.Join(keep, " ")
}

// splitTags parses comma-separated tag input.
func splitTags(value string) []string {
	parts := strings.Split(value, ",")
	tags := []string{}
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
