package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reeltrack/reeltrack-server/internal/auth"
	"github.com/reeltrack/reeltrack-server/internal/store/sqlite"
	"github.com/reeltrack/reeltrack-server/internal/tmdb"
	"github.com/reeltrack/reeltrack-server/internal/validation"
)

type testEnv struct {
	store       *sqlite.Store
	tokens      *auth.TokenService
	catalog     *fakeCatalog
	sessions    *SessionService
	preferences *PreferencesService
	auth        *AuthService
	favorites   *FavoritesService
	movies      *MovieService
}

// setupTestEnv wires every service against a temp database and a fake
// catalog.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	key := make([]byte, auth.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	tokens, err := auth.NewTokenService(key, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	v := validation.New()
	catalog := newFakeCatalog()

	env := &testEnv{store: st, tokens: tokens, catalog: catalog}
	env.sessions = NewSessionService(st, tokens, logger)
	env.preferences = NewPreferencesService(st, nil, v, logger)
	env.auth = NewAuthService(st, tokens, env.sessions, env.preferences, v, true, logger)
	env.favorites = NewFavoritesService(st, catalog, env.preferences, v, logger)
	env.movies = NewMovieService(catalog, env.preferences, logger)
	return env
}

// registerUser creates an account and returns its id.
func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "correct horse battery",
		Name:     "Test User",
	}, ClientInfo{IPAddress: "127.0.0.1", UserAgent: "go-test"})
	require.NoError(t, err)
	return resp.User.ID
}

// enableFiltering stores filtering preferences for userID.
func (e *testEnv) enableFiltering(t *testing.T, userID string, preferred, excluded []int) {
	t.Helper()
	enabled := true
	_, err := e.preferences.Update(context.Background(), userID, UpdatePreferencesRequest{
		AdvancedFilteringEnabled: &enabled,
		PreferredGenres:          preferred,
		ExcludedGenres:           excluded,
	})
	require.NoError(t, err)
}

// fakeCatalog serves canned pages and records the last discover query.
type fakeCatalog struct {
	mu           sync.Mutex
	page         *tmdb.Page
	details      map[int]*tmdb.MovieDetails
	err          error
	lastDiscover tmdb.DiscoverOptions
	lastYear     int
	lastWindow   string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		page:    &tmdb.Page{Page: 1, Results: []tmdb.Movie{}},
		details: map[int]*tmdb.MovieDetails{},
	}
}

func (f *fakeCatalog) setMovies(movies ...tmdb.Movie) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.page = &tmdb.Page{Page: 1, Results: movies, TotalPages: 1, TotalResults: len(movies)}
}

func (f *fakeCatalog) result() (*tmdb.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	cp := *f.page
	cp.Results = append([]tmdb.Movie(nil), f.page.Results...)
	return &cp, nil
}

func (f *fakeCatalog) Popular(context.Context, int) (*tmdb.Page, error)    { return f.result() }
func (f *fakeCatalog) Upcoming(context.Context, int) (*tmdb.Page, error)   { return f.result() }
func (f *fakeCatalog) NowPlaying(context.Context, int) (*tmdb.Page, error) { return f.result() }

func (f *fakeCatalog) TopRated(_ context.Context, _ int, year int) (*tmdb.Page, error) {
	f.mu.Lock()
	f.lastYear = year
	f.mu.Unlock()
	return f.result()
}

func (f *fakeCatalog) Trending(_ context.Context, window string, _ int) (*tmdb.Page, error) {
	if window != tmdb.WindowDay && window != tmdb.WindowWeek {
		return nil, tmdb.ErrInvalidTimeWindow
	}
	f.mu.Lock()
	f.lastWindow = window
	f.mu.Unlock()
	return f.result()
}

func (f *fakeCatalog) Search(context.Context, string, int) (*tmdb.Page, error) { return f.result() }

func (f *fakeCatalog) Discover(_ context.Context, opts tmdb.DiscoverOptions) (*tmdb.Page, error) {
	f.mu.Lock()
	f.lastDiscover = opts
	f.mu.Unlock()
	return f.result()
}

func (f *fakeCatalog) Details(_ context.Context, movieID int) (*tmdb.MovieDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.details[movieID]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	return d, nil
}

func (f *fakeCatalog) Similar(context.Context, int, int) (*tmdb.Page, error)         { return f.result() }
func (f *fakeCatalog) Recommendations(context.Context, int, int) (*tmdb.Page, error) { return f.result() }

func movie(id int, title string, genres ...int) tmdb.Movie {
	return tmdb.Movie{ID: id, Title: title, Genres: genres}
}
