package filter

import "github.com/reeltrack/reeltrack-server/internal/genre"

// GenreTagged is any movie record that exposes its genre ids.
type GenreTagged interface {
	GenreIDs() []int
}

// Record is a loosely-typed movie record, such as a decoded JSON object.
// Genre ids are read from "genre_ids", falling back to "genreIds".
type Record map[string]any

// GenreIDs implements GenreTagged. Missing or ill-typed fields yield nil.
func (r Record) GenreIDs() []int {
	for _, key := range []string{"genre_ids", "genreIds"} {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		ids, err := ParseGenreIDs(v)
		if err != nil {
			return nil
		}
		return ids
	}
	return nil
}

// Result is the outcome of filtering one movie list.
type Result[M any] struct {
	FilteredMovies []M      `json:"filtered_movies"`
	IsFiltered     bool     `json:"is_filtered"`
	OriginalCount  int      `json:"original_count"`
	FilteredCount  int      `json:"filtered_count"`
	FilterSummary  *Summary `json:"filter_summary"`
}

// Apply filters movies by p, preserving input order.
//
// When p is nil or disabled the input slice itself is returned untouched.
// Otherwise a new slice is built and the input is not modified.
func Apply[M GenreTagged](movies []M, p *Preferences) Result[M] {
	if !p.Active() {
		return Result[M]{
			FilteredMovies: movies,
			OriginalCount:  len(movies),
			FilteredCount:  len(movies),
		}
	}

	kept := make([]M, 0, len(movies))
	for _, m := range movies {
		if Keep(m.GenreIDs(), p) {
			kept = append(kept, m)
		}
	}

	return Result[M]{
		FilteredMovies: kept,
		IsFiltered:     true,
		OriginalCount:  len(movies),
		FilteredCount:  len(kept),
		FilterSummary:  Summarize(p),
	}
}

// Summary describes the active filter configuration for display.
// Counts are raw list lengths; names include only ids the catalog knows.
type Summary struct {
	IsActive       bool     `json:"is_active"`
	PreferredCount int      `json:"preferred_count"`
	ExcludedCount  int      `json:"excluded_count"`
	PreferredNames []string `json:"preferred_names"`
	ExcludedNames  []string `json:"excluded_names"`
}

// Summarize returns nil when filtering is inactive.
func Summarize(p *Preferences) *Summary {
	if !p.Active() {
		return nil
	}
	return &Summary{
		IsActive:       true,
		PreferredCount: len(p.PreferredGenres),
		ExcludedCount:  len(p.ExcludedGenres),
		PreferredNames: genre.Names(p.PreferredGenres),
		ExcludedNames:  genre.Names(p.ExcludedGenres),
	}
}
