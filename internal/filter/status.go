package filter

import (
	"fmt"
	"strings"
)

// InactiveMessage is the status message shown when no filtering applies.
const InactiveMessage = "No filters applied"

// Status is the display state of a user's filtering.
type Status struct {
	IsActive bool     `json:"is_active"`
	Message  string   `json:"message"`
	Summary  *Summary `json:"summary"`
}

// StatusOf builds the display status for p.
//
// Active messages read "Filtering active", followed by
// ": 2 preferred genres, 1 excluded genre" style counts when any are set.
func StatusOf(p *Preferences) Status {
	summary := Summarize(p)
	if summary == nil {
		return Status{Message: InactiveMessage}
	}

	var parts []string
	if summary.PreferredCount > 0 {
		parts = append(parts, countPhrase(summary.PreferredCount, "preferred"))
	}
	if summary.ExcludedCount > 0 {
		parts = append(parts, countPhrase(summary.ExcludedCount, "excluded"))
	}

	msg := "Filtering active"
	if len(parts) > 0 {
		msg += ": " + strings.Join(parts, ", ")
	}

	return Status{IsActive: true, Message: msg, Summary: summary}
}

func countPhrase(n int, kind string) string {
	noun := "genre"
	if n > 1 {
		noun = "genres"
	}
	return fmt.Sprintf("%d %s %s", n, kind, noun)
}

// Indicator is the record a UI shows when some results were hidden by filtering.
type Indicator struct {
	IsActive      bool     `json:"is_active"`
	Message       string   `json:"message"`
	OriginalCount int      `json:"original_count"`
	FilteredCount int      `json:"filtered_count"`
	HiddenCount   int      `json:"hidden_count"`
	Summary       *Summary `json:"summary"`
}
