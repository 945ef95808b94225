package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/reeltrack/reeltrack-server/internal/errors"
	"github.com/reeltrack/reeltrack-server/internal/http/response"
	"github.com/reeltrack/reeltrack-server/internal/store"
)

func marshalToMap(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestEnvelopeTransformer_Success(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "200", map[string]string{"id": "test-123"})
	require.NoError(t, err)

	out := marshalToMap(t, result)
	assert.Equal(t, float64(response.Version), out["v"])
	assert.Equal(t, true, out["success"])
	assert.Equal(t, map[string]any{"id": "test-123"}, out["data"])
	assert.Len(t, out, 3)
}

func TestEnvelopeTransformer_Error(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "404", &APIError{
		status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: "movie not found",
	})
	require.NoError(t, err)

	out := marshalToMap(t, result)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "movie not found", out["error"])
	assert.Equal(t, "NOT_FOUND", out["code"])
	assert.Equal(t, "movie not found", out["message"])
	assert.NotContains(t, out, "details")
}

func TestEnvelopeTransformer_PassesEnvelopesThrough(t *testing.T) {
	env := response.Success("already wrapped")
	result, err := EnvelopeTransformer(nil, "200", env)
	require.NoError(t, err)
	assert.Equal(t, env, result)
}

func TestRegisterErrorHandler(t *testing.T) {
	RegisterErrorHandler()

	tests := []struct {
		name       string
		status     int
		errs       []error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "domain error keeps its status",
			status:     http.StatusInternalServerError,
			errs:       []error{domainerrors.Conflict("already there")},
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "wrapped store error",
			status:     http.StatusInternalServerError,
			errs:       []error{errors.Join(errors.New("lookup"), store.ErrNotFound)},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "unknown error falls back to status",
			status:     http.StatusInternalServerError,
			errs:       []error{errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
		},
		{
			name:       "huma validation",
			status:     http.StatusUnprocessableEntity,
			errs:       []error{&huma.ErrorDetail{Message: "expected number", Location: "query.page"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "VALIDATION",
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "RATE_LIMITED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := huma.NewError(tt.status, "message", tt.errs...)
			assert.Equal(t, tt.wantStatus, err.GetStatus())

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}
