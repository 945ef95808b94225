package domain

import "time"

// Movie is the locally cached copy of a TMDB movie, keyed by its TMDB id.
// Only movies somebody favorited are stored.
type Movie struct {
	TMDBID       int       `json:"tmdb_id"`
	Title        string    `json:"title"`
	Overview     string    `json:"overview,omitempty"`
	PosterPath   string    `json:"poster_path,omitempty"`
	BackdropPath string    `json:"backdrop_path,omitempty"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	VoteAverage  float64   `json:"vote_average"`
	VoteCount    int       `json:"vote_count"`
	Popularity   float64   `json:"popularity"`
	Genres       []int     `json:"genre_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GenreIDs lets stored movies pass through the preference filter.
func (m Movie) GenreIDs() []int {
	return m.Genres
}

// Favorite links a user to a cached movie.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TMDBID    int       `json:"tmdb_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteMovie is a favorite joined with its movie, as listed to the user.
type FavoriteMovie struct {
	Movie
	FavoriteID  string    `json:"favorite_id"`
	FavoritedAt time.Time `json:"favorited_at"`
}
