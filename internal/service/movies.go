package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/reeltrack/reeltrack-server/internal/filter"
	"github.com/reeltrack/reeltrack-server/internal/genre"
	"github.com/reeltrack/reeltrack-server/internal/tmdb"
)

// MovieService serves catalog listings filtered by the caller's genre
// preferences.
type MovieService struct {
	catalog     MovieCatalog
	preferences *PreferencesService
	logger      *slog.Logger
}

// NewMovieService creates a movie service. A nil catalog makes every
// listing fail with an unavailable error.
func NewMovieService(catalog MovieCatalog, preferences *PreferencesService, logger *slog.Logger) *MovieService {
	return &MovieService{
		catalog:     catalog,
		preferences: preferences,
		logger:      logger,
	}
}

// MovieList is one filtered page of a catalog listing.
type MovieList struct {
	Movies        []tmdb.Movie      `json:"movies"`
	Page          int               `json:"page"`
	TotalPages    int               `json:"total_pages"`
	TotalResults  int               `json:"total_results"`
	IsFiltered    bool              `json:"is_filtered"`
	OriginalCount int               `json:"original_count"`
	FilteredCount int               `json:"filtered_count"`
	FilterSummary *filter.Summary   `json:"filter_summary"`
	Status        filter.Status     `json:"status"`
	Indicator     *filter.Indicator `json:"indicator"`
}

// MovieDetails is a movie's details with its similar titles filtered.
type MovieDetails struct {
	*tmdb.MovieDetails
	SimilarFilter *filter.Indicator `json:"similar_filter,omitempty"`
}

// ListOptions are the common listing parameters. UserID may be empty for
// anonymous callers.
type ListOptions struct {
	UserID string
	Page   int
}

// Popular lists popular movies.
func (s *MovieService) Popular(ctx context.Context, opts ListOptions) (*MovieList, error) {
	return s.list(ctx, opts.UserID, func(c MovieCatalog) (*tmdb.Page, error) {
		return c.Popular(ctx, opts.Page)
	})
}

// TopRated lists top rated movies, limited to year when non-zero.
func (s *MovieService) TopRated(ctx context.Context, opts ListOptions, year int) (*MovieList, error) {
	return s.list(ctx, opts.UserID, func(c MovieCatalog) (*tmdb.Page, error) {
		return c.TopRated(ctx, opts.Page, year)
	})
}

// Upcoming lists upcoming releases.
func (s *MovieService) Upcoming(ctx context.Context, opts ListOptions) (*MovieList, error) {
	return s.list(ctx, opts.UserID, func(c MovieCatalog) (*tmdb.Page, error) {
		return c.Upcoming(ctx, opts.Page)
	})
}

// NowPlaying lists movies in theaters.
func (s *MovieService) NowPlaying(ctx context.Context, opts ListOptions) (*MovieList, error) {
	return s.list(ctx, opts.UserID, func(c MovieCatalog) (*tmdb.Page, error) {
		return c.NowPlaying(ctx, opts.Page)
	})
}

// Trending lists trending movies for the day or week window.
func (s *MovieService) Trending(ctx context.Context, opts ListOptions, window string) (*MovieList, error) {
	return s.list(ctx, opts.UserID, func(c MovieCatalog) (*tmdb.Page, error) {
		return c.Trending(ctx, window, opts.Page)
	})
}

// Search finds movies by title.
func (s *MovieService) Search(ctx context.Context, opts ListOptions, query string) (*MovieList, error) {
	return s.list(ctx, opts.UserID, func(c MovieCatalog) (*tmdb.Page, error) {
		return c.Search(ctx, query, opts.Page)
	})
}

// Discover runs a discover query with the caller's genre preferences passed
// upstream as with_genres/without_genres. The page is filtered locally as
// well, so counts and the indicator stay consistent with the other lists.
func (s *MovieService) Discover(ctx context.Context, opts ListOptions, sortBy string) (*MovieList, error) {
	fc := s.preferences.FilterContext(ctx, opts.UserID)
	return s.listWith(fc, func(c MovieCatalog) (*tmdb.Page, error) {
		return c.Discover(ctx, tmdb.DiscoverOptions{
			Page:   opts.Page,
			SortBy: strings.TrimSpace(sortBy),
			Params: fc.DiscoverParams(),
		})
	})
}

// Similar lists movies similar to movieID.
func (s *MovieService) Similar(ctx context.Context, opts ListOptions, movieID int) (*MovieList, error) {
	return s.list(ctx, opts.UserID, func(c MovieCatalog) (*tmdb.Page, error) {
		return c.Similar(ctx, movieID, opts.Page)
	})
}

// Recommendations lists recommendations for movieID.
func (s *MovieService) Recommendations(ctx context.Context, opts ListOptions, movieID int) (*MovieList, error) {
	return s.list(ctx, opts.UserID, func(c MovieCatalog) (*tmdb.Page, error) {
		return c.Recommendations(ctx, movieID, opts.Page)
	})
}

// Details returns a movie. The movie itself is never hidden; only its
// appended similar titles are filtered.
func (s *MovieService) Details(ctx context.Context, userID string, movieID int) (*MovieDetails, error) {
	if s.catalog == nil {
		return nil, errCatalogDisabled
	}

	details, err := s.catalog.Details(ctx, movieID)
	if err != nil {
		return nil, s.catalogFailure(err)
	}

	out := &MovieDetails{MovieDetails: details}
	if details.Similar != nil {
		fc := s.preferences.FilterContext(ctx, userID)
		result := filter.FilterMovies(fc, details.Similar.Results)
		details.Similar.Results = result.FilteredMovies
		out.SimilarFilter = fc.Indicator(result.OriginalCount, result.FilteredCount)
	}
	return out, nil
}

// CatalogAvailable reports whether a movie catalog is configured.
func (s *MovieService) CatalogAvailable() bool {
	return s.catalog != nil
}

// Genres returns the genre catalog. A non-empty query narrows it to the
// genres the text resolves to, by name or alias ("sci-fi", "romcom").
func (s *MovieService) Genres(query string) []genre.Genre {
	if strings.TrimSpace(query) == "" {
		return genre.All()
	}
	ids := genre.Resolve(query)
	out := make([]genre.Genre, 0, len(ids))
	for _, id := range ids {
		out = append(out, genre.Genre{ID: id, Name: genre.Name(id)})
	}
	return out
}

func (s *MovieService) list(ctx context.Context, userID string, fetch func(MovieCatalog) (*tmdb.Page, error)) (*MovieList, error) {
	return s.listWith(s.preferences.FilterContext(ctx, userID), fetch)
}

func (s *MovieService) listWith(fc *filter.Context, fetch func(MovieCatalog) (*tmdb.Page, error)) (*MovieList, error) {
	if s.catalog == nil {
		return nil, errCatalogDisabled
	}

	page, err := fetch(s.catalog)
	if err != nil {
		return nil, s.catalogFailure(err)
	}

	result := filter.FilterMovies(fc, page.Results)
	return &MovieList{
		Movies:        result.FilteredMovies,
		Page:          page.Page,
		TotalPages:    page.TotalPages,
		TotalResults:  page.TotalResults,
		IsFiltered:    result.IsFiltered,
		OriginalCount: result.OriginalCount,
		FilteredCount: result.FilteredCount,
		FilterSummary: result.FilterSummary,
		Status:        fc.Status(),
		Indicator:     fc.Indicator(result.OriginalCount, result.FilteredCount),
	}, nil
}

func (s *MovieService) catalogFailure(err error) error {
	mapped := catalogError(err)
	if s.logger != nil && mapped != err {
		s.logger.Warn("Catalog request failed", "error", err)
	}
	return mapped
}
