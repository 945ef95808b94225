package sqlite

import (
	"context"

	"github.com/reeltrack/reeltrack-server/internal/domain"
	"github.com/reeltrack/reeltrack-server/internal/store"
)

// CreateFavorite links a user to an already cached movie.
// Returns store.ErrFavoriteExists for duplicates and store.ErrNotFound when
// the user or movie row is missing.
func (s *Store) CreateFavorite(ctx context.Context, fav *domain.Favorite) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO favorites (id, user_id, tmdb_id, created_at) VALUES (?, ?, ?, ?)`,
		fav.ID, fav.UserID, fav.TMDBID, formatTime(fav.CreatedAt))
	switch {
	case isUniqueViolation(err):
		return store.ErrFavoriteExists
	case isForeignKeyViolation(err):
		return store.ErrNotFound
	}
	return err
}

// GetFavorite returns store.ErrNotFound when the movie is not favorited.
func (s *Store) GetFavorite(ctx context.Context, userID string, tmdbID int) (*domain.Favorite, error) {
	var (
		fav       domain.Favorite
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, tmdb_id, created_at FROM favorites WHERE user_id = ? AND tmdb_id = ?`,
		userID, tmdbID,
	).Scan(&fav.ID, &fav.UserID, &fav.TMDBID, &createdAt)
	if err != nil {
		return nil, notFound(err)
	}
	if fav.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &fav, nil
}

// DeleteFavorite removes one favorite.
func (s *Store) DeleteFavorite(ctx context.Context, userID string, tmdbID int) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND tmdb_id = ?`, userID, tmdbID)
	if err != nil {
		return err
	}
	return expectRow(result)
}

// DeleteAllFavorites removes every favorite of the user and returns how many
// were removed.
func (s *Store) DeleteAllFavorites(ctx context.Context, userID string) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

// ListFavorites returns favorites joined with their movies, newest first.
func (s *Store) ListFavorites(ctx context.Context, userID string) ([]domain.FavoriteMovie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.created_at,
			m.tmdb_id, m.title, m.overview, m.poster_path, m.backdrop_path, m.release_date,
			m.vote_average, m.vote_count, m.popularity, m.genre_ids, m.created_at, m.updated_at
		FROM favorites f
		JOIN movies m ON m.tmdb_id = f.tmdb_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, f.rowid DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []domain.FavoriteMovie{}
	for rows.Next() {
		var (
			favoriteID  string
			favoritedAt string
		)
		m, err := scanMovie(prefixScanner{rows: rows, prefix: []any{&favoriteID, &favoritedAt}})
		if err != nil {
			return nil, err
		}
		fm := domain.FavoriteMovie{Movie: *m, FavoriteID: favoriteID}
		if fm.FavoritedAt, err = parseTime(favoritedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, fm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return favorites, nil
}

// prefixScanner lets scanMovie read a row that has extra leading columns.
type prefixScanner struct {
	rows   scanner
	prefix []any
}

func (p prefixScanner) Scan(dest ...any) error {
	return p.rows.Scan(append(p.prefix, dest...)...)
}
