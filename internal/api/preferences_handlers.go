package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reeltrack/reeltrack-server/internal/domain"
	"github.com/reeltrack/reeltrack-server/internal/filter"
	"github.com/reeltrack/reeltrack-server/internal/service"
)

func (s *Server) registerPreferencesRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getPreferences",
		Method:      http.MethodGet,
		Path:        "/api/v1/preferences",
		Summary:     "Get preferences",
		Description: "Returns the user's preferences, creating the defaults on first access",
		Tags:        []string{"Preferences"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetPreferences)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePreferences",
		Method:      http.MethodPut,
		Path:        "/api/v1/preferences",
		Summary:     "Update preferences",
		Description: "Partially updates preferences. Omitted fields keep their value.",
		Tags:        []string{"Preferences"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePreferences)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFilterStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/filter/status",
		Summary:     "Get filter status",
		Description: "Describes the genre filter applied to the caller's movie listings",
		Tags:        []string{"Preferences"},
	}, s.handleGetFilterStatus)
}

// === DTOs ===

// PreferencesResponse contains preferences in API responses. Genre lists are
// always arrays.
type PreferencesResponse struct {
	EmailNotifications       bool      `json:"email_notifications" doc:"Receive email notifications"`
	MovieRecommendations     bool      `json:"movie_recommendations" doc:"Receive movie recommendations"`
	Language                 string    `json:"language" doc:"Interface language" enum:"en,es,fr,de"`
	Theme                    string    `json:"theme" doc:"UI theme" enum:"light,dark"`
	AdvancedFilteringEnabled bool      `json:"advanced_filtering_enabled" doc:"Apply genre filtering to movie listings"`
	PreferredGenres          []int     `json:"preferred_genres" doc:"Genre ids to keep"`
	ExcludedGenres           []int     `json:"excluded_genres" doc:"Genre ids to hide"`
	UpdatedAt                time.Time `json:"updated_at" doc:"Last update time"`
}

// PreferencesOutput wraps the preferences response for Huma.
type PreferencesOutput struct {
	Body PreferencesResponse
}

// UpdatePreferencesRequest is the request body for updating preferences.
type UpdatePreferencesRequest struct {
	EmailNotifications       *bool   `json:"email_notifications,omitempty" doc:"Receive email notifications"`
	MovieRecommendations     *bool   `json:"movie_recommendations,omitempty" doc:"Receive movie recommendations"`
	Language                 *string `json:"language,omitempty" doc:"Interface language (en, es, fr, de)"`
	Theme                    *string `json:"theme,omitempty" doc:"UI theme (light, dark)"`
	AdvancedFilteringEnabled *bool   `json:"advanced_filtering_enabled,omitempty" doc:"Apply genre filtering to movie listings"`
	PreferredGenres          any     `json:"preferred_genres,omitempty" doc:"Array of genre ids, or a string holding one"`
	ExcludedGenres           any     `json:"excluded_genres,omitempty" doc:"Array of genre ids, or a string holding one"`
}

// UpdatePreferencesInput wraps the update request for Huma.
type UpdatePreferencesInput struct {
	Body UpdatePreferencesRequest
}

// FilterStatusOutput wraps the filter status for Huma.
type FilterStatusOutput struct {
	Body filter.Status
}

// === Handlers ===

func (s *Server) handleGetPreferences(ctx context.Context, _ *struct{}) (*PreferencesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	prefs, err := s.services.Preferences.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PreferencesOutput{Body: s.mapPreferences(prefs)}, nil
}

func (s *Server) handleUpdatePreferences(ctx context.Context, input *UpdatePreferencesInput) (*PreferencesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	prefs, err := s.services.Preferences.Update(ctx, userID, service.UpdatePreferencesRequest{
		EmailNotifications:       input.Body.EmailNotifications,
		MovieRecommendations:     input.Body.MovieRecommendations,
		Language:                 input.Body.Language,
		Theme:                    input.Body.Theme,
		AdvancedFilteringEnabled: input.Body.AdvancedFilteringEnabled,
		PreferredGenres:          input.Body.PreferredGenres,
		ExcludedGenres:           input.Body.ExcludedGenres,
	})
	if err != nil {
		return nil, err
	}

	return &PreferencesOutput{Body: s.mapPreferences(prefs)}, nil
}

func (s *Server) handleGetFilterStatus(ctx context.Context, _ *struct{}) (*FilterStatusOutput, error) {
	status := s.services.Preferences.Status(ctx, optionalUserID(ctx))
	return &FilterStatusOutput{Body: status}, nil
}

func (s *Server) mapPreferences(prefs *domain.UserPreferences) PreferencesResponse {
	canonical := s.services.Preferences.Canonical(prefs)
	return PreferencesResponse{
		EmailNotifications:       prefs.EmailNotifications,
		MovieRecommendations:     prefs.MovieRecommendations,
		Language:                 prefs.Language,
		Theme:                    prefs.Theme,
		AdvancedFilteringEnabled: prefs.AdvancedFilteringEnabled,
		PreferredGenres:          canonical.PreferredGenres,
		ExcludedGenres:           canonical.ExcludedGenres,
		UpdatedAt:                prefs.UpdatedAt,
	}
}
