package filter

// MatchesPreferred reports whether a movie satisfies the preferred genres.
// An empty preferred list matches everything; a movie without genres never
// matches a non-empty preference.
func MatchesPreferred(movieGenres, preferred []int) bool {
	if len(preferred) == 0 {
		return true
	}
	return intersects(movieGenres, preferred)
}

// ShouldExclude reports whether a movie carries any excluded genre.
func ShouldExclude(movieGenres, excluded []int) bool {
	if len(excluded) == 0 || len(movieGenres) == 0 {
		return false
	}
	return intersects(movieGenres, excluded)
}

// Keep is the combined per-movie decision. Exclusion is checked first, so a
// genre listed as both preferred and excluded always drops the movie.
func Keep(movieGenres []int, p *Preferences) bool {
	if p == nil {
		return true
	}
	if ShouldExclude(movieGenres, p.ExcludedGenres) {
		return false
	}
	if len(p.PreferredGenres) > 0 {
		return MatchesPreferred(movieGenres, p.PreferredGenres)
	}
	return true
}

func intersects(a, b []int) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
