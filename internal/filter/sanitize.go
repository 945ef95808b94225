package filter

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/goccy/go-json"
)

// RawPreferences is a preference record as read from the preference store.
//
// PreferredGenres and ExcludedGenres hold whatever the store produced: nil,
// a JSON-encoded list (string, *string or []byte), or an already-decoded list
// ([]int, []int64 or []any).
type RawPreferences struct {
	AdvancedFilteringEnabled bool
	PreferredGenres          any
	ExcludedGenres           any
}

// Preferences is the canonical, validated form of a user's filtering
// configuration. Genre lists are never nil after sanitizing.
type Preferences struct {
	AdvancedFilteringEnabled bool  `json:"advanced_filtering_enabled"`
	PreferredGenres          []int `json:"preferred_genres"`
	ExcludedGenres           []int `json:"excluded_genres"`
}

// Active reports whether filtering is switched on. Safe on nil.
func (p *Preferences) Active() bool {
	return p != nil && p.AdvancedFilteringEnabled
}

func (p *Preferences) clone() *Preferences {
	if p == nil {
		return nil
	}
	return &Preferences{
		AdvancedFilteringEnabled: p.AdvancedFilteringEnabled,
		PreferredGenres:          cloneIDs(p.PreferredGenres),
		ExcludedGenres:           cloneIDs(p.ExcludedGenres),
	}
}

func cloneIDs(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return slices.Clone(ids)
}

// Sanitizer normalizes RawPreferences. The zero value logs to slog.Default.
type Sanitizer struct {
	logger *slog.Logger
}

// NewSanitizer returns a Sanitizer that reports malformed fields to logger.
func NewSanitizer(logger *slog.Logger) *Sanitizer {
	return &Sanitizer{logger: logger}
}

// Sanitize converts raw into canonical Preferences. A nil raw yields nil.
// A genre field that cannot be read as a list of integers becomes empty.
func (s *Sanitizer) Sanitize(raw *RawPreferences) *Preferences {
	if raw == nil {
		return nil
	}
	return &Preferences{
		AdvancedFilteringEnabled: raw.AdvancedFilteringEnabled,
		PreferredGenres:          s.genreList("preferred_genres", raw.PreferredGenres),
		ExcludedGenres:           s.genreList("excluded_genres", raw.ExcludedGenres),
	}
}

// Sanitize normalizes raw using a default Sanitizer.
func Sanitize(raw *RawPreferences) *Preferences {
	var s Sanitizer
	return s.Sanitize(raw)
}

func (s *Sanitizer) genreList(field string, v any) []int {
	ids, err := ParseGenreIDs(v)
	if err != nil {
		s.log().Warn("ignoring malformed genre preference",
			"field", field,
			"error", err,
		)
		return []int{}
	}
	return ids
}

func (s *Sanitizer) log() *slog.Logger {
	if s == nil || s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

// ParseGenreIDs reads a genre id list in any of the shapes RawPreferences
// accepts. Absent or empty input yields an empty list and no error.
func ParseGenreIDs(v any) ([]int, error) {
	switch val := v.(type) {
	case nil:
		return []int{}, nil
	case string:
		return decodeIDs([]byte(val))
	case *string:
		if val == nil {
			return []int{}, nil
		}
		return decodeIDs([]byte(*val))
	case []byte:
		return decodeIDs(val)
	case []int:
		return cloneIDs(val), nil
	case []int64:
		ids := make([]int, len(val))
		for i, n := range val {
			ids[i] = int(n)
		}
		return ids, nil
	case []any:
		return idsFromValues(val)
	default:
		return nil, fmt.Errorf("unsupported genre list type %T", v)
	}
}

func decodeIDs(data []byte) ([]int, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []int{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode genre list: %w", err)
	}

	switch list := decoded.(type) {
	case nil:
		return []int{}, nil
	case []any:
		return idsFromValues(list)
	default:
		return nil, fmt.Errorf("genre list is a %T, not an array", decoded)
	}
}

func idsFromValues(values []any) ([]int, error) {
	ids := make([]int, 0, len(values))
	for i, v := range values {
		id, ok := asInt(v)
		if !ok {
			return nil, fmt.Errorf("element %d (%v) is not an integer", i, v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}
