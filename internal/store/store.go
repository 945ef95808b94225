// Package store defines the persistence interface for the ReelTrack server.
package store

import (
	"context"
	"time"

	"github.com/reeltrack/reeltrack-server/internal/domain"
)

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}

// SessionStore persists refresh-token sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// PreferencesStore persists per-user settings.
type PreferencesStore interface {
	GetPreferences(ctx context.Context, userID string) (*domain.UserPreferences, error)
	UpsertPreferences(ctx context.Context, prefs *domain.UserPreferences) error
}

// MovieStore caches movie records keyed by TMDB id.
type MovieStore interface {
	GetMovie(ctx context.Context, tmdbID int) (*domain.Movie, error)
	UpsertMovie(ctx context.Context, movie *domain.Movie) error
}

// FavoriteStore links users to cached movies.
type FavoriteStore interface {
	CreateFavorite(ctx context.Context, fav *domain.Favorite) error
	GetFavorite(ctx context.Context, userID string, tmdbID int) (*domain.Favorite, error)
	DeleteFavorite(ctx context.Context, userID string, tmdbID int) error
	DeleteAllFavorites(ctx context.Context, userID string) (int, error)
	// ListFavorites returns the user's favorites joined with their movies,
	// newest first.
	ListFavorites(ctx context.Context, userID string) ([]domain.FavoriteMovie, error)
}

// Store is everything the services need from persistence.
type Store interface {
	UserStore
	SessionStore
	PreferencesStore
	MovieStore
	FavoriteStore

	Ping(ctx context.Context) error
	Close() error
}
