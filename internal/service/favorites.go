package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/reeltrack/reeltrack-server/internal/domain"
	domainerrors "github.com/reeltrack/reeltrack-server/internal/errors"
	"github.com/reeltrack/reeltrack-server/internal/filter"
	"github.com/reeltrack/reeltrack-server/internal/id"
	"github.com/reeltrack/reeltrack-server/internal/store"
	"github.com/reeltrack/reeltrack-server/internal/validation"
)

// FavoritesService manages a user's favorite movies.
type FavoritesService struct {
	store       store.Store
	catalog     MovieCatalog
	preferences *PreferencesService
	validator   *validation.Validator
	logger      *slog.Logger
}

// NewFavoritesService creates a favorites service. catalog may be nil, in
// which case favorites can only be added with inline movie data.
func NewFavoritesService(
	store store.Store,
	catalog MovieCatalog,
	preferences *PreferencesService,
	validator *validation.Validator,
	logger *slog.Logger,
) *FavoritesService {
	return &FavoritesService{
		store:       store,
		catalog:     catalog,
		preferences: preferences,
		validator:   validator,
		logger:      logger,
	}
}

// MovieData describes a movie the client already has, so it can be cached
// without a catalog lookup.
type MovieData struct {
	Title        string  `json:"title" validate:"required,max=500"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty" validate:"gte=0,lte=10"`
	VoteCount    int     `json:"vote_count,omitempty" validate:"gte=0"`
	Popularity   float64 `json:"popularity,omitempty" validate:"gte=0"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// AddFavoriteRequest adds a movie by TMDB id.
type AddFavoriteRequest struct {
	MovieID   int        `json:"movie_id" validate:"required,gt=0"`
	MovieData *MovieData `json:"movie_data,omitempty"`
}

// FavoritesList is a user's favorites, optionally filtered by their
// genre preferences.
type FavoritesList struct {
	Favorites     []domain.FavoriteMovie `json:"favorites"`
	Count         int                    `json:"count"`
	IsFiltered    bool                   `json:"is_filtered"`
	OriginalCount int                    `json:"original_count"`
	FilteredCount int                    `json:"filtered_count"`
	FilterSummary *filter.Summary        `json:"filter_summary"`
	Indicator     *filter.Indicator      `json:"indicator"`
}

// FavoriteCheck reports whether a movie is a favorite.
type FavoriteCheck struct {
	IsFavorite bool             `json:"is_favorite"`
	Favorite   *domain.Favorite `json:"data"`
}

// RemovedFavorite identifies the removed movie.
type RemovedFavorite struct {
	MovieID    int    `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
}

// List returns the user's favorites, newest first. With filtered set, the
// user's genre preferences are applied.
func (s *FavoritesService) List(ctx context.Context, userID string, filtered bool) (*FavoritesList, error) {
	favorites, err := s.store.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	if !filtered {
		return &FavoritesList{
			Favorites:     favorites,
			Count:         len(favorites),
			OriginalCount: len(favorites),
			FilteredCount: len(favorites),
		}, nil
	}

	fc := s.preferences.FilterContext(ctx, userID)
	result := filter.FilterMovies(fc, favorites)
	return &FavoritesList{
		Favorites:     result.FilteredMovies,
		Count:         result.FilteredCount,
		IsFiltered:    result.IsFiltered,
		OriginalCount: result.OriginalCount,
		FilteredCount: result.FilteredCount,
		FilterSummary: result.FilterSummary,
		Indicator:     fc.Indicator(result.OriginalCount, result.FilteredCount),
	}, nil
}

// Add favorites a movie. The movie is cached from req.MovieData when given,
// otherwise fetched from the catalog.
func (s *FavoritesService) Add(ctx context.Context, userID string, req AddFavoriteRequest) (*domain.FavoriteMovie, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	movie, err := s.ensureMovie(ctx, req.MovieID, req.MovieData)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetFavorite(ctx, userID, movie.TMDBID); err == nil {
		return nil, domainerrors.AlreadyExists("movie already in favorites")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check favorite: %w", err)
	}

	favID, err := id.Generate(id.PrefixFavorite)
	if err != nil {
		return nil, fmt.Errorf("generate favorite ID: %w", err)
	}

	fav := &domain.Favorite{
		ID:        favID,
		UserID:    userID,
		TMDBID:    movie.TMDBID,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateFavorite(ctx, fav); err != nil {
		if errors.Is(err, store.ErrFavoriteExists) {
			return nil, domainerrors.AlreadyExists("movie already in favorites")
		}
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Favorite added", "user_id", userID, "tmdb_id", movie.TMDBID)
	}

	return &domain.FavoriteMovie{
		Movie:       *movie,
		FavoriteID:  fav.ID,
		FavoritedAt: fav.CreatedAt,
	}, nil
}

// ensureMovie returns the cached movie, caching it first if needed.
func (s *FavoritesService) ensureMovie(ctx context.Context, tmdbID int, data *MovieData) (*domain.Movie, error) {
	movie, err := s.store.GetMovie(ctx, tmdbID)
	if err == nil {
		return movie, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("get movie: %w", err)
	}

	switch {
	case data != nil:
		movie = movieFromData(tmdbID, data)
	case s.catalog != nil:
		details, err := s.catalog.Details(ctx, tmdbID)
		if err != nil {
			return nil, catalogError(err)
		}
		movie = &domain.Movie{
			TMDBID:       details.ID,
			Title:        details.Title,
			Overview:     details.Overview,
			PosterPath:   details.PosterPath,
			BackdropPath: details.BackdropPath,
			ReleaseDate:  details.ReleaseDate,
			VoteAverage:  details.VoteAverage,
			VoteCount:    details.VoteCount,
			Popularity:   details.Popularity,
			Genres:       details.GenreIDs(),
		}
	default:
		return nil, domainerrors.NotFound("movie not found")
	}

	now := time.Now()
	movie.CreatedAt = now
	movie.UpdatedAt = now
	if movie.Genres == nil {
		movie.Genres = []int{}
	}
	if err := s.store.UpsertMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("cache movie: %w", err)
	}
	return movie, nil
}

func movieFromData(tmdbID int, data *MovieData) *domain.Movie {
	return &domain.Movie{
		TMDBID:       tmdbID,
		Title:        data.Title,
		Overview:     data.Overview,
		PosterPath:   data.PosterPath,
		BackdropPath: data.BackdropPath,
		ReleaseDate:  data.ReleaseDate,
		VoteAverage:  data.VoteAverage,
		VoteCount:    data.VoteCount,
		Popularity:   data.Popularity,
		Genres:       data.GenreIDs,
	}
}

// Remove unfavorites a movie.
func (s *FavoritesService) Remove(ctx context.Context, userID string, tmdbID int) (*RemovedFavorite, error) {
	movie, err := s.store.GetMovie(ctx, tmdbID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("movie not found")
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}

	if err := s.store.DeleteFavorite(ctx, userID, tmdbID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("movie not found in favorites")
		}
		return nil, fmt.Errorf("delete favorite: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Favorite removed", "user_id", userID, "tmdb_id", tmdbID)
	}

	return &RemovedFavorite{MovieID: tmdbID, MovieTitle: movie.Title}, nil
}

// Check reports whether tmdbID is among the user's favorites.
func (s *FavoritesService) Check(ctx context.Context, userID string, tmdbID int) (*FavoriteCheck, error) {
	fav, err := s.store.GetFavorite(ctx, userID, tmdbID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &FavoriteCheck{}, nil
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}
	return &FavoriteCheck{IsFavorite: true, Favorite: fav}, nil
}

// Clear removes all of the user's favorites and returns how many there were.
func (s *FavoritesService) Clear(ctx context.Context, userID string) (int, error) {
	n, err := s.store.DeleteAllFavorites(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear favorites: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Favorites cleared", "user_id", userID, "count", n)
	}
	return n, nil
}
