package genre

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidatePreferences checks a preferred/excluded pair against the catalog and
// returns one message per problem found. An empty result means the pair is valid.
//
// Reported problems: unknown preferred ids, unknown excluded ids, and ids that
// appear in both lists.
func (c *Catalog) ValidatePreferences(preferred, excluded []int) []string {
	var problems []string

	if unknown := c.unknown(preferred); len(unknown) > 0 {
		problems = append(problems, "Invalid preferred genre IDs: "+joinInts(unknown))
	}
	if unknown := c.unknown(excluded); len(unknown) > 0 {
		problems = append(problems, "Invalid excluded genre IDs: "+joinInts(unknown))
	}

	excludedSet := make(map[int]struct{}, len(excluded))
	for _, id := range excluded {
		excludedSet[id] = struct{}{}
	}
	var overlap []int
	seen := make(map[int]struct{})
	for _, id := range preferred {
		if _, ok := excludedSet[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		overlap = append(overlap, id)
	}
	if len(overlap) > 0 {
		names := make([]string, len(overlap))
		for i, id := range overlap {
			names[i] = c.Name(id)
		}
		problems = append(problems, fmt.Sprintf("Genres cannot be both preferred and excluded: %s", strings.Join(names, ", ")))
	}

	return problems
}

// ValidatePreferences validates against the default catalog.
func ValidatePreferences(preferred, excluded []int) []string {
	return Default.ValidatePreferences(preferred, excluded)
}

// KnownOnly returns the ids the catalog knows, keeping their order.
func (c *Catalog) KnownOnly(ids []int) []int {
	return slices.DeleteFunc(slices.Clone(ids), func(id int) bool {
		return !c.Known(id)
	})
}

func (c *Catalog) unknown(ids []int) []int {
	var out []int
	for _, id := range ids {
		if !c.Known(id) {
			out = append(out, id)
		}
	}
	return out
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
