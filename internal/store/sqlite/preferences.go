package sqlite

import (
	"context"
	"database/sql"

	"github.com/reeltrack/reeltrack-server/internal/domain"
	"github.com/reeltrack/reeltrack-server/internal/store"
)

const preferencesColumns = `user_id, email_notifications, movie_recommendations, language, theme,
	advanced_filtering_enabled, preferred_genres, excluded_genres, created_at, updated_at`

func scanPreferences(row scanner) (*domain.UserPreferences, error) {
	var (
		p                    domain.UserPreferences
		emailNotifications   int
		movieRecommendations int
		advancedFiltering    int
		preferred            sql.NullString
		excluded             sql.NullString
		createdAt            string
		updatedAt            string
	)

	err := row.Scan(&p.UserID, &emailNotifications, &movieRecommendations, &p.Language, &p.Theme,
		&advancedFiltering, &preferred, &excluded, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.EmailNotifications = emailNotifications != 0
	p.MovieRecommendations = movieRecommendations != 0
	p.AdvancedFilteringEnabled = advancedFiltering != 0

	// Genre columns are returned verbatim; the filter sanitizer validates them.
	if preferred.Valid {
		p.PreferredGenres = &preferred.String
	}
	if excluded.Valid {
		p.ExcludedGenres = &excluded.String
	}

	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPreferences returns store.ErrNotFound when the user has no record yet.
func (s *Store) GetPreferences(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+preferencesColumns+` FROM user_preferences WHERE user_id = ?`, userID)
	p, err := scanPreferences(row)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// UpsertPreferences inserts or replaces the user's record. created_at is kept
// from the first insert.
func (s *Store) UpsertPreferences(ctx context.Context, p *domain.UserPreferences) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_preferences (`+preferencesColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			email_notifications = excluded.email_notifications,
			movie_recommendations = excluded.movie_recommendations,
			language = excluded.language,
			theme = excluded.theme,
			advanced_filtering_enabled = excluded.advanced_filtering_enabled,
			preferred_genres = excluded.preferred_genres,
			excluded_genres = excluded.excluded_genres,
			updated_at = excluded.updated_at`,
		p.UserID,
		boolToInt(p.EmailNotifications),
		boolToInt(p.MovieRecommendations),
		p.Language,
		p.Theme,
		boolToInt(p.AdvancedFilteringEnabled),
		nullableString(p.PreferredGenres),
		nullableString(p.ExcludedGenres),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if isForeignKeyViolation(err) {
		return store.ErrNotFound
	}
	return err
}
