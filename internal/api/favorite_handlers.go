package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reeltrack/reeltrack-server/internal/domain"
	"github.com/reeltrack/reeltrack-server/internal/service"
)

func (s *Server) registerFavoriteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns the user's favorite movies, newest first. With filtered=true the genre preferences apply.",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addFavorite",
		Method:        http.MethodPost,
		Path:          "/api/v1/favorites",
		Summary:       "Add favorite",
		Description:   "Favorites a movie. Movie data is taken from the request or fetched from TMDB.",
		Tags:          []string{"Favorites"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearFavorites",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites",
		Summary:     "Clear favorites",
		Description: "Removes every favorite of the user",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleClearFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID: "checkFavorite",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites/{movieId}",
		Summary:     "Check favorite",
		Description: "Reports whether a movie is in the user's favorites",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCheckFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFavorite",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites/{movieId}",
		Summary:     "Remove favorite",
		Description: "Removes a movie from the user's favorites",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveFavorite)
}

// === DTOs ===

// ListFavoritesInput contains parameters for listing favorites.
type ListFavoritesInput struct {
	Filtered bool `query:"filtered" doc:"Apply genre preferences"`
}

// FavoritesOutput wraps the favorites list for Huma.
type FavoritesOutput struct {
	Body *service.FavoritesList
}

// AddFavoriteInput wraps the add request for Huma.
type AddFavoriteInput struct {
	Body service.AddFavoriteRequest
}

// FavoriteOutput wraps a favorited movie for Huma.
type FavoriteOutput struct {
	Body *domain.FavoriteMovie
}

// FavoriteMovieInput identifies a favorited movie.
type FavoriteMovieInput struct {
	MovieID int `path:"movieId" minimum:"1" doc:"TMDB movie id"`
}

// FavoriteCheckOutput wraps the favorite check for Huma.
type FavoriteCheckOutput struct {
	Body *service.FavoriteCheck
}

// RemovedFavoriteOutput wraps the removed favorite for Huma.
type RemovedFavoriteOutput struct {
	Body *service.RemovedFavorite
}

// ClearFavoritesResponse reports how many favorites were removed.
type ClearFavoritesResponse struct {
	RemovedCount int `json:"removed_count" doc:"Number of favorites removed"`
}

// ClearFavoritesOutput wraps the clear response for Huma.
type ClearFavoritesOutput struct {
	Body ClearFavoritesResponse
}

// === Handlers ===

func (s *Server) handleListFavorites(ctx context.Context, input *ListFavoritesInput) (*FavoritesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.services.Favorites.List(ctx, userID, input.Filtered)
	if err != nil {
		return nil, err
	}

	return &FavoritesOutput{Body: list}, nil
}

func (s *Server) handleAddFavorite(ctx context.Context, input *AddFavoriteInput) (*FavoriteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	fav, err := s.services.Favorites.Add(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &FavoriteOutput{Body: fav}, nil
}

func (s *Server) handleClearFavorites(ctx context.Context, _ *struct{}) (*ClearFavoritesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.services.Favorites.Clear(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ClearFavoritesOutput{Body: ClearFavoritesResponse{RemovedCount: count}}, nil
}

func (s *Server) handleCheckFavorite(ctx context.Context, input *FavoriteMovieInput) (*FavoriteCheckOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	check, err := s.services.Favorites.Check(ctx, userID, input.MovieID)
	if err != nil {
		return nil, err
	}

	return &FavoriteCheckOutput{Body: check}, nil
}

func (s *Server) handleRemoveFavorite(ctx context.Context, input *FavoriteMovieInput) (*RemovedFavoriteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	removed, err := s.services.Favorites.Remove(ctx, userID, input.MovieID)
	if err != nil {
		return nil, err
	}

	return &RemovedFavoriteOutput{Body: removed}, nil
}
