package providers

import (
	"net/http"

	"github.com/samber/do/v2"

	"github.com/reeltrack/reeltrack-server/internal/config"
	"github.com/reeltrack/reeltrack-server/internal/logger"
	"github.com/reeltrack/reeltrack-server/internal/service"
	"github.com/reeltrack/reeltrack-server/internal/tmdb"
)

// CatalogHandle holds the movie catalog. Catalog is nil when no TMDB API
// key is configured, and the movie endpoints then report unavailable.
type CatalogHandle struct {
	Catalog service.MovieCatalog
}

// ProvideMovieCatalog provides the TMDB client.
func ProvideMovieCatalog(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.TMDB.Enabled() {
		log.Warn("TMDB API key not configured, movie catalog disabled")
		return &CatalogHandle{}, nil
	}

	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithHTTPClient(&http.Client{Timeout: cfg.TMDB.Timeout}),
		tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		tmdb.WithRateLimit(cfg.TMDB.RequestsPerSecond, cfg.TMDB.Burst),
		tmdb.WithDiscoverDefaults(tmdb.DiscoverDefaults{
			MinVoteCount:     cfg.TMDB.MinVoteCount,
			MinRating:        cfg.TMDB.MinRating,
			StrictDateFilter: cfg.TMDB.StrictDateFilter,
		}),
		tmdb.WithLogger(log.Component("tmdb")),
	)
	if err != nil {
		return nil, err
	}

	log.Info("TMDB client ready",
		"base_url", cfg.TMDB.BaseURL,
		"language", cfg.TMDB.Language,
		"requests_per_second", cfg.TMDB.RequestsPerSecond,
	)

	return &CatalogHandle{Catalog: client}, nil
}
