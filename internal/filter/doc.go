// Package filter applies a user's genre preferences to movie lists.
//
// Raw stored preferences pass through a Sanitizer once, producing immutable
// Preferences. A Context built from those Preferences filters any number of
// movie lists, reports filtering status for display, and builds query
// parameters that push the same filtering to the movie metadata provider.
//
// Nothing in this package returns an error. Malformed preference data degrades
// to "no restriction" and is logged.
package filter
