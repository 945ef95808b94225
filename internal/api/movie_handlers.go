package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reeltrack/reeltrack-server/internal/service"
)

func (s *Server) registerMovieRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPopularMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/popular",
		Summary:     "Popular movies",
		Description: "Lists popular movies, filtered by the caller's genre preferences when signed in",
		Tags:        []string{"Movies"},
	}, s.handlePopularMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTopRatedMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/top-rated",
		Summary:     "Top rated movies",
		Description: "Lists top rated movies, optionally limited to a release year",
		Tags:        []string{"Movies"},
	}, s.handleTopRatedMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUpcomingMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/upcoming",
		Summary:     "Upcoming movies",
		Description: "Lists upcoming releases",
		Tags:        []string{"Movies"},
	}, s.handleUpcomingMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "listNowPlayingMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/now-playing",
		Summary:     "Now playing",
		Description: "Lists movies currently in theaters",
		Tags:        []string{"Movies"},
	}, s.handleNowPlayingMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTrendingMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/trending/{window}",
		Summary:     "Trending movies",
		Description: "Lists movies trending over the day or week",
		Tags:        []string{"Movies"},
	}, s.handleTrendingMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/search",
		Summary:     "Search movies",
		Description: "Searches movies by title. A blank query returns an empty page.",
		Tags:        []string{"Movies"},
	}, s.handleSearchMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "discoverMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/discover",
		Summary:     "Discover movies",
		Description: "Runs a discover query with the caller's preferred and excluded genres applied upstream",
		Tags:        []string{"Movies"},
	}, s.handleDiscoverMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMovie",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{id}",
		Summary:     "Get movie",
		Description: "Returns movie details with credits, videos and filtered similar titles",
		Tags:        []string{"Movies"},
	}, s.handleGetMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSimilarMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{id}/similar",
		Summary:     "Similar movies",
		Description: "Lists movies similar to a movie",
		Tags:        []string{"Movies"},
	}, s.handleSimilarMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMovieRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{id}/recommendations",
		Summary:     "Movie recommendations",
		Description: "Lists recommendations based on a movie",
		Tags:        []string{"Movies"},
	}, s.handleMovieRecommendations)
}

// === DTOs ===

// PageInput selects a result page.
type PageInput struct {
	Page int `query:"page" default:"1" minimum:"1" maximum:"500" doc:"Result page"`
}

// TopRatedInput contains parameters for top rated movies.
type TopRatedInput struct {
	PageInput
	Year int `query:"year" doc:"Release year; omit for all time"`
}

// TrendingInput contains parameters for trending movies.
type TrendingInput struct {
	PageInput
	Window string `path:"window" enum:"day,week" doc:"Trending window"`
}

// SearchInput contains parameters for movie search.
type SearchInput struct {
	PageInput
	Query string `query:"query" maxLength:"200" doc:"Title search text"`
}

// DiscoverInput contains parameters for discover.
type DiscoverInput struct {
	PageInput
	SortBy string `query:"sort_by" default:"popularity.desc" doc:"TMDB sort order, e.g. vote_average.desc"`
}

// MovieIDInput identifies a movie.
type MovieIDInput struct {
	ID int `path:"id" minimum:"1" doc:"TMDB movie id"`
}

// MoviePageInput identifies a movie and a result page.
type MoviePageInput struct {
	PageInput
	ID int `path:"id" minimum:"1" doc:"TMDB movie id"`
}

// MovieListOutput wraps a filtered movie page for Huma.
type MovieListOutput struct {
	Body *service.MovieList
}

// MovieDetailsOutput wraps movie details for Huma.
type MovieDetailsOutput struct {
	Body *service.MovieDetails
}

// === Handlers ===

func listOptions(ctx context.Context, page int) service.ListOptions {
	return service.ListOptions{UserID: optionalUserID(ctx), Page: page}
}

func movieListOutput(list *service.MovieList, err error) (*MovieListOutput, error) {
	if err != nil {
		return nil, err
	}
	return &MovieListOutput{Body: list}, nil
}

func (s *Server) handlePopularMovies(ctx context.Context, input *PageInput) (*MovieListOutput, error) {
	return movieListOutput(s.services.Movies.Popular(ctx, listOptions(ctx, input.Page)))
}

func (s *Server) handleTopRatedMovies(ctx context.Context, input *TopRatedInput) (*MovieListOutput, error) {
	return movieListOutput(s.services.Movies.TopRated(ctx, listOptions(ctx, input.Page), input.Year))
}

func (s *Server) handleUpcomingMovies(ctx context.Context, input *PageInput) (*MovieListOutput, error) {
	return movieListOutput(s.services.Movies.Upcoming(ctx, listOptions(ctx, input.Page)))
}

func (s *Server) handleNowPlayingMovies(ctx context.Context, input *PageInput) (*MovieListOutput, error) {
	return movieListOutput(s.services.Movies.NowPlaying(ctx, listOptions(ctx, input.Page)))
}

func (s *Server) handleTrendingMovies(ctx context.Context, input *TrendingInput) (*MovieListOutput, error) {
	return movieListOutput(s.services.Movies.Trending(ctx, listOptions(ctx, input.Page), input.Window))
}

func (s *Server) handleSearchMovies(ctx context.Context, input *SearchInput) (*MovieListOutput, error) {
	return movieListOutput(s.services.Movies.Search(ctx, listOptions(ctx, input.Page), input.Query))
}

func (s *Server) handleDiscoverMovies(ctx context.Context, input *DiscoverInput) (*MovieListOutput, error) {
	return movieListOutput(s.services.Movies.Discover(ctx, listOptions(ctx, input.Page), input.SortBy))
}

func (s *Server) handleSimilarMovies(ctx context.Context, input *MoviePageInput) (*MovieListOutput, error) {
	return movieListOutput(s.services.Movies.Similar(ctx, listOptions(ctx, input.Page), input.ID))
}

func (s *Server) handleMovieRecommendations(ctx context.Context, input *MoviePageInput) (*MovieListOutput, error) {
	return movieListOutput(s.services.Movies.Recommendations(ctx, listOptions(ctx, input.Page), input.ID))
}

func (s *Server) handleGetMovie(ctx context.Context, input *MovieIDInput) (*MovieDetailsOutput, error) {
	details, err := s.services.Movies.Details(ctx, optionalUserID(ctx), input.ID)
	if err != nil {
		return nil, err
	}
	return &MovieDetailsOutput{Body: details}, nil
}
