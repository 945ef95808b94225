package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerGenreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "List genres",
		Description: "Returns the movie genre catalog used by preference filtering",
		Tags:        []string{"Genres"},
	}, s.handleListGenres)
}

// ListGenresInput optionally resolves free-form genre text.
type ListGenresInput struct {
	Query string `query:"q" maxLength:"100" doc:"Genre name or alias to resolve, e.g. sci-fi"`
}

// GenreResponse is a single catalog genre.
type GenreResponse struct {
	ID   int    `json:"id" doc:"TMDB genre id"`
	Name string `json:"name" doc:"Genre name"`
}

// ListGenresResponse contains the genre catalog.
type ListGenresResponse struct {
	Genres []GenreResponse `json:"genres" doc:"Matching genres, all of them when no query is given"`
}

// ListGenresOutput wraps the genre list for Huma.
type ListGenresOutput struct {
	Body ListGenresResponse
}

func (s *Server) handleListGenres(_ context.Context, input *ListGenresInput) (*ListGenresOutput, error) {
	all := s.services.Movies.Genres(input.Query)
	resp := make([]GenreResponse, len(all))
	for i, g := range all {
		resp[i] = GenreResponse{ID: g.ID, Name: g.Name}
	}
	return &ListGenresOutput{Body: ListGenresResponse{Genres: resp}}, nil
}
