package service

import (
	"context"
	"errors"

	domainerrors "github.com/reeltrack/reeltrack-server/internal/errors"
	"github.com/reeltrack/reeltrack-server/internal/tmdb"
)

// MovieCatalog is the upstream movie metadata source. *tmdb.Client
// implements it.
type MovieCatalog interface {
	Popular(ctx context.Context, page int) (*tmdb.Page, error)
	TopRated(ctx context.Context, page, year int) (*tmdb.Page, error)
	Upcoming(ctx context.Context, page int) (*tmdb.Page, error)
	NowPlaying(ctx context.Context, page int) (*tmdb.Page, error)
	Trending(ctx context.Context, window string, page int) (*tmdb.Page, error)
	Search(ctx context.Context, query string, page int) (*tmdb.Page, error)
	Discover(ctx context.Context, opts tmdb.DiscoverOptions) (*tmdb.Page, error)
	Details(ctx context.Context, movieID int) (*tmdb.MovieDetails, error)
	Similar(ctx context.Context, movieID, page int) (*tmdb.Page, error)
	Recommendations(ctx context.Context, movieID, page int) (*tmdb.Page, error)
}

var _ MovieCatalog = (*tmdb.Client)(nil)

// errCatalogDisabled is returned when no TMDB API key is configured.
var errCatalogDisabled = domainerrors.Unavailable("movie catalog is not configured")

// catalogError maps TMDB client failures to domain errors.
func catalogError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, tmdb.ErrNotFound):
		return domainerrors.NotFound("movie not found")
	case errors.Is(err, tmdb.ErrInvalidTimeWindow):
		return domainerrors.Validation("time window must be day or week")
	case errors.Is(err, tmdb.ErrUnavailable):
		return domainerrors.Unavailable("movie catalog temporarily unavailable").WithCause(err)
	default:
		return domainerrors.Upstream("movie catalog request failed", err)
	}
}
