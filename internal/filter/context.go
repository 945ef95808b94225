package filter

import (
	"strconv"
	"strings"
)

// Discover query parameter names understood by TMDB.
const (
	ParamWithGenres    = "with_genres"
	ParamWithoutGenres = "without_genres"
)

// Context is an immutable view over one preferences snapshot. Build a new
// Context whenever the underlying preferences change.
//
// A nil *Context is valid and behaves as if filtering were disabled, which is
// what anonymous callers get.
type Context struct {
	prefs *Preferences
}

// NewContext captures a copy of p.
func NewContext(p *Preferences) *Context {
	return &Context{prefs: p.clone()}
}

// NewContextFromRaw sanitizes raw with s and wraps the result.
func NewContextFromRaw(s *Sanitizer, raw *RawPreferences) *Context {
	return NewContext(s.Sanitize(raw))
}

// Active reports whether this context filters anything.
func (c *Context) Active() bool {
	return c != nil && c.prefs.Active()
}

// Status returns the display status.
func (c *Context) Status() Status {
	if c == nil {
		return StatusOf(nil)
	}
	return StatusOf(c.prefs)
}

// Indicator returns nil when filtering is inactive.
func (c *Context) Indicator(originalCount, filteredCount int) *Indicator {
	status := c.Status()
	if !status.IsActive {
		return nil
	}
	return &Indicator{
		IsActive:      true,
		Message:       status.Message,
		OriginalCount: originalCount,
		FilteredCount: filteredCount,
		HiddenCount:   originalCount - filteredCount,
		Summary:       status.Summary,
	}
}

// DiscoverParams returns with_genres/without_genres query parameters carrying
// the same filtering. Empty lists and inactive contexts contribute no keys.
func (c *Context) DiscoverParams() map[string]string {
	params := make(map[string]string, 2)
	if !c.Active() {
		return params
	}
	if len(c.prefs.PreferredGenres) > 0 {
		params[ParamWithGenres] = joinIDs(c.prefs.PreferredGenres)
	}
	if len(c.prefs.ExcludedGenres) > 0 {
		params[ParamWithoutGenres] = joinIDs(c.prefs.ExcludedGenres)
	}
	return params
}

// FilterMovies applies c to movies. See Apply.
func FilterMovies[M GenreTagged](c *Context, movies []M) Result[M] {
	if c == nil {
		return Apply[M](movies, nil)
	}
	return Apply(movies, c.prefs)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
