// Package di provides dependency injection configuration for the ReelTrack server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/reeltrack/reeltrack-server/internal/auth"
	"github.com/reeltrack/reeltrack-server/internal/config"
	"github.com/reeltrack/reeltrack-server/internal/di/providers"
	"github.com/reeltrack/reeltrack-server/internal/logger"
	"github.com/reeltrack/reeltrack-server/internal/service"
	"github.com/reeltrack/reeltrack-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Upstream catalog
	do.Provide(injector, providers.ProvideMovieCatalog)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvidePreferencesService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideFavoritesService)
	do.Provide(injector, providers.ProvideMovieService)

	// Workers
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the HTTP server is
// listening in the background.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.CatalogHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	// Business services
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*service.PreferencesService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.FavoritesService](injector)
	_ = do.MustInvoke[*service.MovieService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SessionCleanupJob](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
