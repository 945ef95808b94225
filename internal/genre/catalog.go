// Package genre provides the static TMDB movie genre catalog with name and alias lookups.
package genre

import (
	"slices"

	"golang.org/x/text/cases"
)

// UnknownName is returned by Name for ids that are not in the catalog.
const UnknownName = "Unknown"

// Genre is a single entry in the movie genre taxonomy.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// movieGenres is the official TMDB movie genre list.
var movieGenres = []Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

// Catalog is an immutable id/name index over a genre list.
type Catalog struct {
	genres []Genre
	byID   map[int]string
	byName map[string]int
	fold   cases.Caser
}

// NewCatalog indexes the given genres. Later duplicates of an id are ignored.
func NewCatalog(genres []Genre) *Catalog {
	c := &Catalog{
		genres: make([]Genre, 0, len(genres)),
		byID:   make(map[int]string, len(genres)),
		byName: make(map[string]int, len(genres)),
		fold:   cases.Fold(),
	}
	for _, g := range genres {
		if _, dup := c.byID[g.ID]; dup {
			continue
		}
		c.genres = append(c.genres, g)
		c.byID[g.ID] = g.Name
		c.byName[c.fold.String(g.Name)] = g.ID
	}
	return c
}

// Default is the catalog of TMDB movie genres, loaded at process start.
var Default = NewCatalog(movieGenres)

// Name returns the catalog name for id, or UnknownName.
func (c *Catalog) Name(id int) string {
	if name, ok := c.byID[id]; ok {
		return name
	}
	return UnknownName
}

// Names maps ids to names, dropping ids the catalog does not know.
// The result is never nil.
func (c *Catalog) Names(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name := c.Name(id); name != UnknownName {
			names = append(names, name)
		}
	}
	return names
}

// ID performs a case-insensitive reverse lookup by genre name.
func (c *Catalog) ID(name string) (int, bool) {
	id, ok := c.byName[c.fold.String(name)]
	return id, ok
}

// Known reports whether id exists in the catalog.
func (c *Catalog) Known(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns a copy of the catalog entries in catalog order.
func (c *Catalog) All() []Genre {
	return slices.Clone(c.genres)
}

// Name returns the default catalog name for id.
func Name(id int) string { return Default.Name(id) }

// Names maps ids through the default catalog.
func Names(ids []int) []string { return Default.Names(ids) }

// ID looks up a genre id by name in the default catalog.
func ID(name string) (int, bool) { return Default.ID(name) }

// Known reports whether id is in the default catalog.
func Known(id int) bool { return Default.Known(id) }

// All returns the default catalog entries.
func All() []Genre { return Default.All() }
