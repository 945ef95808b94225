package tmdb

// Movie is a list entry as TMDB returns it from list, search and discover
// endpoints.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video"`
	Genres           []int   `json:"genre_ids"`

	// Absolute CDN URLs, filled in by the client.
	PosterURL   string `json:"poster_url,omitempty"`
	BackdropURL string `json:"backdrop_url,omitempty"`
}

// GenreIDs returns the movie's genre ids.
func (m Movie) GenreIDs() []int {
	return m.Genres
}

// Page is one page of a paginated movie list.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Genre is an entry of a movie's detailed genres.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is a credited actor.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

// CrewMember is a credited crew member.
type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Credits lists cast and crew.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is a trailer, teaser or clip.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// VideoList wraps appended videos.
type VideoList struct {
	Results []Video `json:"results"`
}

// MovieDetails is the full movie record with appended credits, videos and
// similar titles.
type MovieDetails struct {
	Movie
	GenreList []Genre    `json:"genres"`
	Runtime   int        `json:"runtime"`
	Tagline   string     `json:"tagline,omitempty"`
	Status    string     `json:"status,omitempty"`
	Budget    int64      `json:"budget"`
	Revenue   int64      `json:"revenue"`
	ImdbID    string     `json:"imdb_id,omitempty"`
	Homepage  string     `json:"homepage,omitempty"`
	Credits   *Credits   `json:"credits,omitempty"`
	Videos    *VideoList `json:"videos,omitempty"`
	Similar   *Page      `json:"similar,omitempty"`
}

// GenreIDs returns the ids of the detailed genres. The details endpoint sends
// genre objects instead of genre_ids.
func (d MovieDetails) GenreIDs() []int {
	if len(d.Movie.Genres) > 0 {
		return d.Movie.Genres
	}
	ids := make([]int, 0, len(d.GenreList))
	for _, g := range d.GenreList {
		ids = append(ids, g.ID)
	}
	return ids
}

// errorResponse is the body TMDB sends with non-2xx statuses.
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
