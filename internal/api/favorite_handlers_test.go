package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeltrack/reeltrack-server/internal/domain"
	"github.com/reeltrack/reeltrack-server/internal/service"
)

func addFavorite(t *testing.T, ts *testServer, token string, body map[string]any) *domain.FavoriteMovie {
	t.Helper()
	resp := ts.api.Post("/api/v1/favorites", body, bearer(token))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decodeEnvelope[*domain.FavoriteMovie](t, resp.Body.Bytes()).Data
}

func TestFavorites_Lifecycle(t *testing.T) {
	ts := setupTestServer(t, false)
	token, _ := ts.registerUser(t, "fav@example.com")

	fav := addFavorite(t, ts, token, map[string]any{
		"movie_id": 603,
		"movie_data": map[string]any{
			"title":        "The Matrix",
			"release_date": "1999-03-30",
			"vote_average": 8.2,
			"genre_ids":    []int{28, 878},
		},
	})
	assert.Equal(t, 603, fav.TMDBID)
	assert.Equal(t, "The Matrix", fav.Title)
	assert.Equal(t, []int{28, 878}, fav.Genres)
	assert.NotEmpty(t, fav.FavoriteID)

	// Adding again conflicts.
	resp := ts.api.Post("/api/v1/favorites", map[string]any{"movie_id": 603}, bearer(token))
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "ALREADY_EXISTS", decodeError(t, resp.Body.Bytes()).Code)

	resp = ts.api.Get("/api/v1/favorites/603", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	check := decodeEnvelope[*service.FavoriteCheck](t, resp.Body.Bytes()).Data
	assert.True(t, check.IsFavorite)
	require.NotNil(t, check.Favorite)
	assert.Equal(t, fav.FavoriteID, check.Favorite.ID)

	resp = ts.api.Get("/api/v1/favorites", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeEnvelope[*service.FavoritesList](t, resp.Body.Bytes()).Data
	require.Len(t, list.Favorites, 1)
	assert.Equal(t, 1, list.Count)

	resp = ts.api.Delete("/api/v1/favorites/603", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	removed := decodeEnvelope[*service.RemovedFavorite](t, resp.Body.Bytes()).Data
	assert.Equal(t, 603, removed.MovieID)
	assert.Equal(t, "The Matrix", removed.MovieTitle)

	// Removing twice is a not found.
	resp = ts.api.Delete("/api/v1/favorites/603", bearer(token))
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/favorites/603", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	check = decodeEnvelope[*service.FavoriteCheck](t, resp.Body.Bytes()).Data
	assert.False(t, check.IsFavorite)
	assert.Nil(t, check.Favorite)
}

func TestFavorites_FilteredList(t *testing.T) {
	ts := setupTestServer(t, false)
	token, _ := ts.registerUser(t, "filtered@example.com")

	addFavorite(t, ts, token, map[string]any{
		"movie_id":   1,
		"movie_data": map[string]any{"title": "Action Movie", "genre_ids": []int{28}},
	})
	addFavorite(t, ts, token, map[string]any{
		"movie_id":   2,
		"movie_data": map[string]any{"title": "Horror Movie", "genre_ids": []int{27}},
	})
	ts.enableFiltering(t, token, nil, []int{27})

	resp := ts.api.Get("/api/v1/favorites", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	all := decodeEnvelope[*service.FavoritesList](t, resp.Body.Bytes()).Data
	require.Len(t, all.Favorites, 2)
	assert.False(t, all.IsFiltered)
	// Newest first.
	assert.Equal(t, "Horror Movie", all.Favorites[0].Title)

	resp = ts.api.Get("/api/v1/favorites?filtered=true", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	filtered := decodeEnvelope[*service.FavoritesList](t, resp.Body.Bytes()).Data
	require.Len(t, filtered.Favorites, 1)
	assert.Equal(t, "Action Movie", filtered.Favorites[0].Title)
	assert.True(t, filtered.IsFiltered)
	assert.Equal(t, 2, filtered.OriginalCount)
	assert.Equal(t, 1, filtered.FilteredCount)
	require.NotNil(t, filtered.Indicator)
	assert.Equal(t, 1, filtered.Indicator.HiddenCount)
}

func TestFavorites_AddFetchesFromCatalog(t *testing.T) {
	ts := setupTestServer(t, true)
	token, _ := ts.registerUser(t, "catalog@example.com")

	fav := addFavorite(t, ts, token, map[string]any{"movie_id": 550})
	assert.Equal(t, "Fight Club", fav.Title)
	assert.Equal(t, []int{18, 53}, fav.Genres)

	resp := ts.api.Post("/api/v1/favorites", map[string]any{"movie_id": 404404}, bearer(token))
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestFavorites_AddWithoutDataOrCatalog(t *testing.T) {
	ts := setupTestServer(t, false)
	token, _ := ts.registerUser(t, "nodata@example.com")

	resp := ts.api.Post("/api/v1/favorites", map[string]any{"movie_id": 42}, bearer(token))
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body.Bytes()).Code)
}

func TestFavorites_Clear(t *testing.T) {
	ts := setupTestServer(t, false)
	token, _ := ts.registerUser(t, "clear@example.com")

	for _, id := range []int{10, 11, 12} {
		addFavorite(t, ts, token, map[string]any{
			"movie_id":   id,
			"movie_data": map[string]any{"title": "Movie"},
		})
	}

	resp := ts.api.Delete("/api/v1/favorites", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 3, decodeEnvelope[ClearFavoritesResponse](t, resp.Body.Bytes()).Data.RemovedCount)

	resp = ts.api.Get("/api/v1/favorites", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeEnvelope[*service.FavoritesList](t, resp.Body.Bytes()).Data
	assert.Empty(t, list.Favorites)
	assert.NotNil(t, list.Favorites)
}

func TestFavorites_IsolatedPerUser(t *testing.T) {
	ts := setupTestServer(t, false)
	alice, _ := ts.registerUser(t, "alice@example.com")
	bob, _ := ts.registerUser(t, "bob@example.com")

	addFavorite(t, ts, alice, map[string]any{
		"movie_id":   7,
		"movie_data": map[string]any{"title": "Shared Movie"},
	})

	resp := ts.api.Get("/api/v1/favorites", bearer(bob))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeEnvelope[*service.FavoritesList](t, resp.Body.Bytes()).Data.Favorites)

	// The movie is already cached, so bob can favorite it without data.
	fav := addFavorite(t, ts, bob, map[string]any{"movie_id": 7})
	assert.Equal(t, "Shared Movie", fav.Title)
}

func TestFavorites_RequireAuth(t *testing.T) {
	ts := setupTestServer(t, false)

	resp := ts.api.Get("/api/v1/favorites")
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Post("/api/v1/favorites", map[string]any{"movie_id": 1})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}
