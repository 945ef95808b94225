package domain

import (
	"time"

	"github.com/reeltrack/reeltrack-server/internal/filter"
)

// Supported preference values.
const (
	LanguageEnglish = "en"
	LanguageSpanish = "es"
	LanguageFrench  = "fr"
	LanguageGerman  = "de"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Languages lists the interface languages a user may pick.
var Languages = []string{LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageGerman}

// Themes lists the UI themes a user may pick.
var Themes = []string{ThemeLight, ThemeDark}

// UserPreferences is the stored per-user settings record.
//
// PreferredGenres and ExcludedGenres hold the genre id lists exactly as
// persisted: JSON array text, or nil when never set. They are read through a
// filter.Sanitizer, never trusted directly.
type UserPreferences struct {
	UserID                   string    `json:"user_id"`
	EmailNotifications       bool      `json:"email_notifications"`
	MovieRecommendations     bool      `json:"movie_recommendations"`
	Language                 string    `json:"language"`
	Theme                    string    `json:"theme"`
	AdvancedFilteringEnabled bool      `json:"advanced_filtering_enabled"`
	PreferredGenres          *string   `json:"preferred_genres"`
	ExcludedGenres           *string   `json:"excluded_genres"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// NewUserPreferences returns the defaults applied to new accounts.
func NewUserPreferences(userID string) *UserPreferences {
	now := time.Now()
	return &UserPreferences{
		UserID:               userID,
		EmailNotifications:   true,
		MovieRecommendations: true,
		Language:             LanguageEnglish,
		Theme:                ThemeDark,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Raw exposes the filtering fields for sanitizing. Safe on nil.
func (p *UserPreferences) Raw() *filter.RawPreferences {
	if p == nil {
		return nil
	}
	raw := &filter.RawPreferences{AdvancedFilteringEnabled: p.AdvancedFilteringEnabled}
	// Assign only non-nil pointers so an unset column reaches the sanitizer as nil.
	if p.PreferredGenres != nil {
		raw.PreferredGenres = *p.PreferredGenres
	}
	if p.ExcludedGenres != nil {
		raw.ExcludedGenres = *p.ExcludedGenres
	}
	return raw
}
