package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeltrack/reeltrack-server/internal/service"
)

func movieTitles(list *service.MovieList) []string {
	titles := make([]string, len(list.Movies))
	for i, m := range list.Movies {
		titles[i] = m.Title
	}
	return titles
}

func TestListMovies_AnonymousUnfiltered(t *testing.T) {
	ts := setupTestServer(t, true)

	paths := []string{
		"/api/v1/movies/popular",
		"/api/v1/movies/top-rated",
		"/api/v1/movies/upcoming",
		"/api/v1/movies/now-playing",
		"/api/v1/movies/trending/week",
		"/api/v1/movies/search?query=movie",
		"/api/v1/movies/discover",
		"/api/v1/movies/550/similar",
		"/api/v1/movies/550/recommendations",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp := ts.api.Get(path)
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

			envelope := decodeEnvelope[*service.MovieList](t, resp.Body.Bytes())
			list := envelope.Data
			require.NotNil(t, list)
			assert.Len(t, list.Movies, 4)
			assert.False(t, list.IsFiltered)
			assert.Equal(t, 4, list.OriginalCount)
			assert.Equal(t, 4, list.FilteredCount)
			assert.Nil(t, list.FilterSummary)
			assert.Nil(t, list.Indicator)
			assert.Equal(t, "No filters applied", list.Status.Message)
		})
	}
}

func TestListMovies_AppliesUserFilter(t *testing.T) {
	ts := setupTestServer(t, true)
	token, _ := ts.registerUser(t, "filter@example.com")
	ts.enableFiltering(t, token, []int{28}, []int{27})

	resp := ts.api.Get("/api/v1/movies/popular?page=1", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	list := decodeEnvelope[*service.MovieList](t, resp.Body.Bytes()).Data
	// Exclusion wins over preference, so the action horror is hidden too.
	assert.Equal(t, []string{"Action Movie"}, movieTitles(list))
	assert.True(t, list.IsFiltered)
	assert.Equal(t, 4, list.OriginalCount)
	assert.Equal(t, 1, list.FilteredCount)
	require.NotNil(t, list.FilterSummary)
	assert.Equal(t, []string{"Action"}, list.FilterSummary.PreferredNames)
	require.NotNil(t, list.Indicator)
	assert.Equal(t, 3, list.Indicator.HiddenCount)
	assert.True(t, list.Status.IsActive)
}

func TestListMovies_DisabledFilterKeepsEverything(t *testing.T) {
	ts := setupTestServer(t, true)
	token, _ := ts.registerUser(t, "disabled@example.com")

	resp := ts.api.Put("/api/v1/preferences", map[string]any{
		"advanced_filtering_enabled": false,
		"excluded_genres":            []int{27},
	}, bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/movies/popular", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeEnvelope[*service.MovieList](t, resp.Body.Bytes()).Data
	assert.Len(t, list.Movies, 4)
	assert.False(t, list.IsFiltered)
}

func TestDiscover_SendsGenrePreferencesUpstream(t *testing.T) {
	ts := setupTestServer(t, true)
	token, _ := ts.registerUser(t, "discover@example.com")
	ts.enableFiltering(t, token, []int{28, 12}, []int{27})

	resp := ts.api.Get("/api/v1/movies/discover?sort_by=vote_average.desc&page=2", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	upstream := ts.lastTMDB.Load()
	require.NotNil(t, upstream)
	assert.Equal(t, "/discover/movie", upstream.Path)
	assert.Equal(t, "28,12", upstream.Query().Get("with_genres"))
	assert.Equal(t, "27", upstream.Query().Get("without_genres"))
	assert.Equal(t, "vote_average.desc", upstream.Query().Get("sort_by"))
	assert.Equal(t, "2", upstream.Query().Get("page"))
}

func TestTopRated_YearUsesDiscover(t *testing.T) {
	ts := setupTestServer(t, true)

	resp := ts.api.Get("/api/v1/movies/top-rated?year=1999")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	upstream := ts.lastTMDB.Load()
	require.NotNil(t, upstream)
	assert.Equal(t, "/discover/movie", upstream.Path)
	assert.Equal(t, "1999", upstream.Query().Get("primary_release_year"))
}

func TestTrending_InvalidWindow(t *testing.T) {
	ts := setupTestServer(t, true)

	resp := ts.api.Get("/api/v1/movies/trending/month")
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "VALIDATION", decodeError(t, resp.Body.Bytes()).Code)
}

func TestGetMovie(t *testing.T) {
	ts := setupTestServer(t, true)
	token, _ := ts.registerUser(t, "details@example.com")
	ts.enableFiltering(t, token, nil, []int{27})

	t.Run("similar titles are filtered", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/movies/550", bearer(token))
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		details := decodeEnvelope[*service.MovieDetails](t, resp.Body.Bytes()).Data
		require.NotNil(t, details.MovieDetails)
		assert.Equal(t, "Fight Club", details.Title)
		assert.Equal(t, []int{18, 53}, details.GenreIDs())
		require.NotNil(t, details.Similar)
		require.Len(t, details.Similar.Results, 1)
		assert.Equal(t, "Drama Movie", details.Similar.Results[0].Title)
		require.NotNil(t, details.SimilarFilter)
		assert.Equal(t, 1, details.SimilarFilter.HiddenCount)
	})

	t.Run("unknown movie", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/movies/404404", bearer(token))
		require.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body.Bytes()).Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/movies/0")
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestMovies_CatalogNotConfigured(t *testing.T) {
	ts := setupTestServer(t, false)

	resp := ts.api.Get("/api/v1/movies/popular")
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "UNAVAILABLE", decodeError(t, resp.Body.Bytes()).Code)

	resp = ts.api.Get("/api/v1/movies/550")
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
}
