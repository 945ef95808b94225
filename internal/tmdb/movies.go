package tmdb

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidTimeWindow is returned by Trending for windows other than day
// and week.
var ErrInvalidTimeWindow = errors.New("tmdb: time window must be day or week")

// Trending time windows.
const (
	WindowDay  = "day"
	WindowWeek = "week"
)

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return params
}

func (c *Client) list(ctx context.Context, path string, params url.Values) (*Page, error) {
	var page Page
	if err := c.get(ctx, path, params, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		page.Results = []Movie{}
	}
	c.decoratePage(&page)
	return &page, nil
}

// Image sizes used for list entries.
const (
	posterSize   = "w500"
	backdropSize = "w1280"
)

func (c *Client) decorate(m *Movie) {
	m.PosterURL = c.ImageURL(m.PosterPath, posterSize)
	m.BackdropURL = c.ImageURL(m.BackdropPath, backdropSize)
}

func (c *Client) decoratePage(p *Page) {
	for i := range p.Results {
		c.decorate(&p.Results[i])
	}
}

// Popular returns a page of popular movies.
func (c *Client) Popular(ctx context.Context, page int) (*Page, error) {
	return c.list(ctx, "/movie/popular", pageParams(page))
}

// TopRated returns a page of top rated movies. A non-zero year switches to
// discover sorted by rating with the configured vote thresholds, so the list
// stays rating-ordered while limited to that year.
func (c *Client) TopRated(ctx context.Context, page, year int) (*Page, error) {
	if year == 0 {
		return c.list(ctx, "/movie/top_rated", pageParams(page))
	}

	params := pageParams(page)
	params.Set("sort_by", "vote_average.desc")
	params.Set("vote_count.gte", strconv.Itoa(c.discover.MinVoteCount))
	params.Set("vote_average.gte", strconv.FormatFloat(c.discover.MinRating, 'f', -1, 64))
	if c.discover.StrictDateFilter {
		params.Set("release_date.gte", strconv.Itoa(year)+"-01-01")
		params.Set("release_date.lte", strconv.Itoa(year)+"-12-31")
	} else {
		params.Set("primary_release_year", strconv.Itoa(year))
	}

	c.logger.Debug("top rated with year filter", "year", year, "strict", c.discover.StrictDateFilter)
	return c.list(ctx, "/discover/movie", params)
}

// Upcoming returns a page of upcoming releases.
func (c *Client) Upcoming(ctx context.Context, page int) (*Page, error) {
	return c.list(ctx, "/movie/upcoming", pageParams(page))
}

// NowPlaying returns a page of movies currently in theaters.
func (c *Client) NowPlaying(ctx context.Context, page int) (*Page, error) {
	return c.list(ctx, "/movie/now_playing", pageParams(page))
}

// Trending returns trending movies for the day or week window.
func (c *Client) Trending(ctx context.Context, window string, page int) (*Page, error) {
	switch window {
	case WindowDay, WindowWeek:
	default:
		return nil, ErrInvalidTimeWindow
	}
	return c.list(ctx, "/trending/movie/"+window, pageParams(page))
}

// Search finds movies by title. A blank query returns an empty page without
// calling TMDB.
func (c *Client) Search(ctx context.Context, query string, page int) (*Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &Page{Page: 1, Results: []Movie{}}, nil
	}
	params := pageParams(page)
	params.Set("query", query)
	return c.list(ctx, "/search/movie", params)
}

// Details returns a movie with credits, videos and similar titles appended.
func (c *Client) Details(ctx context.Context, movieID int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos,similar")

	var details MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.Itoa(movieID), params, &details); err != nil {
		return nil, err
	}
	if details.Movie.Genres == nil {
		details.Movie.Genres = details.GenreIDs()
	}
	c.decorate(&details.Movie)
	if details.Similar != nil {
		c.decoratePage(details.Similar)
	}
	return &details, nil
}

// Similar returns movies similar to movieID.
func (c *Client) Similar(ctx context.Context, movieID, page int) (*Page, error) {
	return c.list(ctx, "/movie/"+strconv.Itoa(movieID)+"/similar", pageParams(page))
}

// Recommendations returns TMDB's recommendations for movieID.
func (c *Client) Recommendations(ctx context.Context, movieID, page int) (*Page, error) {
	return c.list(ctx, "/movie/"+strconv.Itoa(movieID)+"/recommendations", pageParams(page))
}

// DiscoverOptions are the parameters of a discover query. Params carries
// arbitrary TMDB filters such as with_genres and without_genres.
type DiscoverOptions struct {
	Page   int
	SortBy string
	Params map[string]string
}

// Discover runs a discover query.
func (c *Client) Discover(ctx context.Context, opts DiscoverOptions) (*Page, error) {
	params := pageParams(opts.Page)
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	params.Set("sort_by", sortBy)

	for k, v := range opts.Params {
		if k == "api_key" || k == "page" || k == "sort_by" || v == "" {
			continue
		}
		params.Set(k, v)
	}
	return c.list(ctx, "/discover/movie", params)
}
