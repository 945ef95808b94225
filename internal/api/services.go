package api

import "github.com/reeltrack/reeltrack-server/internal/service"

// Services groups all business logic services used by the API server.
type Services struct {
	Auth        *service.AuthService
	Preferences *service.PreferencesService
	Favorites   *service.FavoritesService
	Movies      *service.MovieService
}
