package providers

import (
	"github.com/samber/do/v2"

	"github.com/reeltrack/reeltrack-server/internal/auth"
	"github.com/reeltrack/reeltrack-server/internal/config"
	"github.com/reeltrack/reeltrack-server/internal/logger"
	"github.com/reeltrack/reeltrack-server/internal/service"
	"github.com/reeltrack/reeltrack-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideSessionService provides the session service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log.Component("sessions")), nil
}

// ProvidePreferencesService provides the preferences service.
func ProvidePreferencesService(i do.Injector) (*service.PreferencesService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPreferencesService(storeHandle.Store, nil, validator, log.Component("preferences")), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	preferencesService := do.MustInvoke[*service.PreferencesService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(
		storeHandle.Store,
		tokenService,
		sessionService,
		preferencesService,
		validator,
		cfg.Auth.OpenRegistration,
		log.Component("auth"),
	), nil
}

// ProvideFavoritesService provides the favorites service.
func ProvideFavoritesService(i do.Injector) (*service.FavoritesService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogHandle := do.MustInvoke[*CatalogHandle](i)
	preferencesService := do.MustInvoke[*service.PreferencesService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFavoritesService(storeHandle.Store, catalogHandle.Catalog, preferencesService, validator, log.Component("favorites")), nil
}

// ProvideMovieService provides the filtered movie listing service.
func ProvideMovieService(i do.Injector) (*service.MovieService, error) {
	catalogHandle := do.MustInvoke[*CatalogHandle](i)
	preferencesService := do.MustInvoke[*service.PreferencesService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMovieService(catalogHandle.Catalog, preferencesService, log.Component("movies")), nil
}
