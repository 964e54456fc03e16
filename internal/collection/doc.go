// Package collection derives the rendered post sequence under sort and
// filter.
//
// A Controller holds the latest fetched posts for one view. Sorts reorder
// the held collection in place (title sorting is case-insensitive and
// stable); filtering is a non-destructive projection, so clearing the
// filter restores the full collection in its current order. Replacing the
// collection resets any active filter.
package collection
