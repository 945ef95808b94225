package genre

import "strings"

// CanonicalAliases maps common spellings to catalog genre ids.
// Keys are slugs (see Slugify).
var CanonicalAliases = map[string][]int{
	"sci-fi":           {878},
	"scifi":            {878},
	"sf":               {878},
	"science-fiction":  {878},
	"doc":              {99},
	"docs":             {99},
	"documentaries":    {99},
	"tv":               {10770},
	"tv-movie":         {10770},
	"made-for-tv":      {10770},
	"musical":          {10402},
	"musicals":         {10402},
	"kids":             {10751, 16},
	"children":         {10751},
	"historical":       {36},
	"period":           {36},
	"romcom":           {10749, 35},
	"rom-com":          {10749, 35},
	"action-adventure": {28, 12},
	"sci-fi-fantasy":   {878, 14},
	"crime-thriller":   {80, 53},
	"suspense":         {53},
	"scary":            {27},
	"cowboy":           {37},
	"military":         {10752},
	"whodunit":         {9648},
	"animated":         {16},
	"cartoon":          {16},
	"funny":            {35},
}

// Resolve turns free-form genre text into catalog ids.
// An exact (case-insensitive) name match wins; otherwise the slugified text is
// looked up in CanonicalAliases. Returns nil when nothing matches.
func (c *Catalog) Resolve(text string) []int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if id, ok := c.ID(text); ok {
		return []int{id}
	}
	ids, ok := CanonicalAliases[Slugify(text)]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if c.Known(id) {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Resolve resolves text against the default catalog.
func Resolve(text string) []int { return Default.Resolve(text) }
