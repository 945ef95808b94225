package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_ReturnsTokensAndUser(t *testing.T) {
	ts := setupTestServer(t, false)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "Ada@Example.com",
		"password": "TestPassword123!",
	}, "User-Agent: reeltrack-test", "X-Forwarded-For: 203.0.113.7, 10.0.0.1")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[AuthResponse](t, resp.Body.Bytes())
	assert.Equal(t, 1, envelope.Version)
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.NotEmpty(t, envelope.Data.RefreshToken)
	assert.NotEmpty(t, envelope.Data.SessionID)
	assert.Equal(t, "Bearer", envelope.Data.TokenType)
	assert.Positive(t, envelope.Data.ExpiresIn)
	assert.Equal(t, "Ada@Example.com", envelope.Data.User.Email)
	assert.Equal(t, "Ada", envelope.Data.User.DisplayName)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	ts := setupTestServer(t, false)
	ts.registerUser(t, "dup@example.com")

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "DUP@example.com",
		"password": "AnotherPassword1",
	})
	require.Equal(t, http.StatusConflict, resp.Code)

	envelope := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, "ALREADY_EXISTS", envelope.Code)
	assert.Equal(t, envelope.Message, envelope.Error)
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	ts := setupTestServer(t, false)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "short@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	envelope := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.NotEmpty(t, envelope.Details)
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t, false)
	ts.registerUser(t, "login@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		resp := ts.api.Post("/api/v1/auth/login", map[string]any{
			"email":    "LOGIN@example.com",
			"password": "TestPassword123!",
		})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		envelope := decodeEnvelope[AuthResponse](t, resp.Body.Bytes())
		assert.NotEmpty(t, envelope.Data.AccessToken)
		assert.NotNil(t, envelope.Data.User.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := ts.api.Post("/api/v1/auth/login", map[string]any{
			"email":    "login@example.com",
			"password": "WrongPassword!",
		})
		require.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, resp.Body.Bytes()).Code)
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		resp := ts.api.Post("/api/v1/auth/login", map[string]any{
			"email":    "nobody@example.com",
			"password": "TestPassword123!",
		})
		require.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, resp.Body.Bytes()).Code)
	})
}

func TestRefresh_RotatesRefreshToken(t *testing.T) {
	ts := setupTestServer(t, false)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "rotate@example.com",
		"password": "TestPassword123!",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	first := decodeEnvelope[AuthResponse](t, resp.Body.Bytes())

	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": first.Data.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	second := decodeEnvelope[AuthResponse](t, resp.Body.Bytes())

	assert.NotEqual(t, first.Data.RefreshToken, second.Data.RefreshToken)
	assert.Equal(t, first.Data.SessionID, second.Data.SessionID)

	// The old refresh token no longer works.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": first.Data.RefreshToken,
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "TOKEN_EXPIRED", decodeError(t, resp.Body.Bytes()).Code)
}

func TestLogout_EndsSession(t *testing.T) {
	ts := setupTestServer(t, false)
	token, _ := ts.registerUser(t, "logout@example.com")

	resp := ts.api.Get("/api/v1/users/me", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/auth/logout", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "Logged out successfully", decodeEnvelope[MessageResponse](t, resp.Body.Bytes()).Data.Message)

	// The access token is still well-formed but its session is gone.
	resp = ts.api.Get("/api/v1/users/me", bearer(token))
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t, false)

	resp := ts.api.Post("/api/v1/auth/logout")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp.Body.Bytes()).Code)
}

func TestGetCurrentUser(t *testing.T) {
	ts := setupTestServer(t, false)
	token, userID := ts.registerUser(t, "me@example.com")

	t.Run("authenticated", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/users/me", bearer(token))
		require.Equal(t, http.StatusOK, resp.Code)

		envelope := decodeEnvelope[UserResponse](t, resp.Body.Bytes())
		assert.Equal(t, userID, envelope.Data.ID)
		assert.Equal(t, "me@example.com", envelope.Data.Email)
		assert.Equal(t, "Test User", envelope.Data.Name)
	})

	t.Run("missing token", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/users/me")
		require.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp.Body.Bytes()).Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/users/me", bearer("v4.local.not-a-token"))
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestAuthRoutes_RateLimited(t *testing.T) {
	ts := setupTestServer(t, false)

	var last int
	for range 15 {
		resp := ts.api.Post("/api/v1/auth/login", map[string]any{
			"email":    "flood@example.com",
			"password": "TestPassword123!",
		}, "X-Real-IP: 198.51.100.9")
		last = resp.Code
		if last == http.StatusTooManyRequests {
			envelope := decodeError(t, resp.Body.Bytes())
			assert.Equal(t, "RATE_LIMITED", envelope.Code)
			break
		}
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	// Other clients and other routes are unaffected.
	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "flood@example.com",
		"password": "TestPassword123!",
	}, "X-Real-IP: 198.51.100.10")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/genres", "X-Real-IP: 198.51.100.9")
	assert.Equal(t, http.StatusOK, resp.Code)
}
