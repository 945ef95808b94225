package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"github.com/reeltrack/reeltrack-server/internal/domain"
	domainerrors "github.com/reeltrack/reeltrack-server/internal/errors"
	"github.com/reeltrack/reeltrack-server/internal/filter"
	"github.com/reeltrack/reeltrack-server/internal/genre"
	"github.com/reeltrack/reeltrack-server/internal/store"
	"github.com/reeltrack/reeltrack-server/internal/validation"
)

// PreferencesService reads and writes user preferences and builds the
// filter context used by movie listings.
type PreferencesService struct {
	store     store.PreferencesStore
	sanitizer *filter.Sanitizer
	catalog   *genre.Catalog
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPreferencesService creates a preferences service.
func NewPreferencesService(
	store store.PreferencesStore,
	catalog *genre.Catalog,
	validator *validation.Validator,
	logger *slog.Logger,
) *PreferencesService {
	if catalog == nil {
		catalog = genre.Default
	}
	return &PreferencesService{
		store:     store,
		sanitizer: filter.NewSanitizer(logger),
		catalog:   catalog,
		validator: validator,
		logger:    logger,
	}
}

// UpdatePreferencesRequest is a partial update; nil fields keep their
// current value. Genre lists may be given as JSON arrays or as strings
// holding a JSON array.
type UpdatePreferencesRequest struct {
	EmailNotifications       *bool   `json:"email_notifications,omitempty"`
	MovieRecommendations     *bool   `json:"movie_recommendations,omitempty"`
	Language                 *string `json:"language,omitempty" validate:"omitempty,oneof=en es fr de"`
	Theme                    *string `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	AdvancedFilteringEnabled *bool   `json:"advanced_filtering_enabled,omitempty"`
	PreferredGenres          any     `json:"preferred_genres,omitempty"`
	ExcludedGenres           any     `json:"excluded_genres,omitempty"`
}

// Get returns the user's preferences, creating the defaults on first access.
func (s *PreferencesService) Get(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	prefs, err := s.store.GetPreferences(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	prefs = domain.NewUserPreferences(userID)
	if err := s.store.UpsertPreferences(ctx, prefs); err != nil {
		return nil, fmt.Errorf("create default preferences: %w", err)
	}
	return prefs, nil
}

// Update applies req to the user's preferences.
//
// Genre lists must be arrays of integers. A supplied list must only name
// known genres. Stored ids the catalog no longer knows are left alone, but
// the merged lists must not overlap.
func (s *PreferencesService) Update(ctx context.Context, userID string, req UpdatePreferencesRequest) (*domain.UserPreferences, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	preferred, err := parseGenreField("preferred_genres", req.PreferredGenres)
	if err != nil {
		return nil, err
	}
	excluded, err := parseGenreField("excluded_genres", req.ExcludedGenres)
	if err != nil {
		return nil, err
	}

	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.EmailNotifications != nil {
		prefs.EmailNotifications = *req.EmailNotifications
	}
	if req.MovieRecommendations != nil {
		prefs.MovieRecommendations = *req.MovieRecommendations
	}
	if req.Language != nil {
		prefs.Language = *req.Language
	}
	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}
	if req.AdvancedFilteringEnabled != nil {
		prefs.AdvancedFilteringEnabled = *req.AdvancedFilteringEnabled
	}

	if preferred != nil || excluded != nil {
		current := s.sanitizer.Sanitize(prefs.Raw())
		checkPreferred, checkExcluded := preferred, excluded
		if checkPreferred == nil {
			checkPreferred = s.catalog.KnownOnly(current.PreferredGenres)
		}
		if checkExcluded == nil {
			checkExcluded = s.catalog.KnownOnly(current.ExcludedGenres)
		}
		if problems := s.catalog.ValidatePreferences(checkPreferred, checkExcluded); len(problems) > 0 {
			return nil, domainerrors.ValidationWithDetails("invalid genre preferences", problems)
		}
		if req.PreferredGenres != nil {
			prefs.PreferredGenres = encodeGenreIDs(preferred)
		}
		if req.ExcludedGenres != nil {
			prefs.ExcludedGenres = encodeGenreIDs(excluded)
		}
	}

	prefs.UpdatedAt = time.Now()
	if err := s.store.UpsertPreferences(ctx, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Preferences updated",
			"user_id", userID,
			"advanced_filtering", prefs.AdvancedFilteringEnabled,
		)
	}
	return prefs, nil
}

// FilterContext returns the filter context for userID. Anonymous callers
// (empty userID) and users without stored preferences get a nil context,
// which filters nothing. A failing preference read also degrades to no
// filtering so listings keep working.
func (s *PreferencesService) FilterContext(ctx context.Context, userID string) *filter.Context {
	if userID == "" {
		return nil
	}

	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) && s.logger != nil {
			s.logger.Warn("Failed to load preferences for filtering", "user_id", userID, "error", err)
		}
		return nil
	}
	return filter.NewContextFromRaw(s.sanitizer, prefs.Raw())
}

// Canonical returns the sanitized filtering fields of prefs.
func (s *PreferencesService) Canonical(prefs *domain.UserPreferences) *filter.Preferences {
	return s.sanitizer.Sanitize(prefs.Raw())
}

// Status returns the filter display status for userID.
func (s *PreferencesService) Status(ctx context.Context, userID string) filter.Status {
	return s.FilterContext(ctx, userID).Status()
}

// parseGenreField returns nil when v was not supplied.
func parseGenreField(field string, v any) ([]int, error) {
	if v == nil {
		return nil, nil
	}
	ids, err := filter.ParseGenreIDs(v)
	if err != nil {
		return nil, domainerrors.ValidationWithDetails(
			"invalid genre list",
			map[string]string{field: "must be an array of integer genre ids"},
		).WithCause(err)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

func encodeGenreIDs(ids []int) *string {
	if ids == nil {
		ids = []int{}
	}
	// Marshalling an []int cannot fail.
	b, _ := json.Marshal(ids)
	s := string(b)
	return &s
}
