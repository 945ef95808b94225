package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/reeltrack/reeltrack-server/internal/domain"
)

const movieColumns = `tmdb_id, title, overview, poster_path, backdrop_path, release_date,
	vote_average, vote_count, popularity, genre_ids, created_at, updated_at`

func scanMovie(row scanner) (*domain.Movie, error) {
	var (
		m           domain.Movie
		poster      sql.NullString
		backdrop    sql.NullString
		releaseDate sql.NullString
		genreIDs    string
		createdAt   string
		updatedAt   string
	)

	err := row.Scan(&m.TMDBID, &m.Title, &m.Overview, &poster, &backdrop, &releaseDate,
		&m.VoteAverage, &m.VoteCount, &m.Popularity, &genreIDs, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	m.PosterPath = poster.String
	m.BackdropPath = backdrop.String
	m.ReleaseDate = releaseDate.String

	if err := json.Unmarshal([]byte(genreIDs), &m.Genres); err != nil {
		return nil, fmt.Errorf("decode genre_ids for movie %d: %w", m.TMDBID, err)
	}
	if m.Genres == nil {
		m.Genres = []int{}
	}

	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func encodeGenres(ids []int) (string, error) {
	if ids == nil {
		ids = []int{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetMovie returns store.ErrNotFound for movies that were never cached.
func (s *Store) GetMovie(ctx context.Context, tmdbID int) (*domain.Movie, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE tmdb_id = ?`, tmdbID)
	m, err := scanMovie(row)
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// UpsertMovie inserts the movie or refreshes its metadata.
func (s *Store) UpsertMovie(ctx context.Context, m *domain.Movie) error {
	genres, err := encodeGenres(m.Genres)
	if err != nil {
		return fmt.Errorf("encode genre_ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO movies (`+movieColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tmdb_id) DO UPDATE SET
			title = excluded.title,
			overview = excluded.overview,
			poster_path = excluded.poster_path,
			backdrop_path = excluded.backdrop_path,
			release_date = excluded.release_date,
			vote_average = excluded.vote_average,
			vote_count = excluded.vote_count,
			popularity = excluded.popularity,
			genre_ids = excluded.genre_ids,
			updated_at = excluded.updated_at`,
		m.TMDBID,
		m.Title,
		m.Overview,
		nullString(m.PosterPath),
		nullString(m.BackdropPath),
		nullString(m.ReleaseDate),
		m.VoteAverage,
		m.VoteCount,
		m.Popularity,
		genres,
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
	)
	return err
}
