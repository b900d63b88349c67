package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peladahub/pickup-league/internal/domain/user"
	"github.com/peladahub/pickup-league/internal/usecase"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	principals map[string]user.Principal
}

func (v *stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func newStubVerifier() *stubVerifier {
	return &stubVerifier{principals: map[string]user.Principal{
		"admin-token":  {UserID: "u-1", Email: "admin@example.com", Role: "admin"},
		"player-token": {UserID: "u-2", Email: "player@example.com", Role: "player"},
	}}
}

func TestRequireAuth(t *testing.T) {
	verifier := newStubVerifier()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-User", principal.UserID)
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireAuth(verifier, next)

	t.Run("missing header", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/players", nil))
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
		req.Header.Set("Authorization", "Basic abc")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
		req.Header.Set("Authorization", "Bearer nope")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("valid token reaches next handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
		req.Header.Set("Authorization", "bearer player-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusNoContent, recorder.Code)
		require.Equal(t, "u-2", recorder.Header().Get("X-User"))
	})
}

func TestRequireAdmin(t *testing.T) {
	verifier := newStubVerifier()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireAdmin(verifier, next)

	t.Run("player role is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/players", nil)
		req.Header.Set("Authorization", "Bearer player-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusForbidden, recorder.Code)
		require.Contains(t, recorder.Body.String(), "PERMISSION_DENIED")
	})

	t.Run("admin role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/players", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("anonymous is unauthorized, not forbidden", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/players", nil))
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed origin gets headers", func(t *testing.T) {
		handler := CORS([]string{"https://app.example.com"}, next)
		req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
		req.Header.Set("Origin", "https://app.example.com")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, "https://app.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, recorder.Header().Values("Vary"), "Origin")
	})

	t.Run("disallowed origin gets no headers", func(t *testing.T) {
		handler := CORS([]string{"https://app.example.com"}, next)
		req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		require.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows everything", func(t *testing.T) {
		handler := CORS([]string{"*"}, next)
		req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		require.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		handler := CORS([]string{"*"}, next)
		req := httptest.NewRequest(http.MethodOptions, "/v1/players", nil)
		req.Header.Set("Origin", "https://app.example.com")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusNoContent, recorder.Code)
	})
}

func TestShouldTraceRequest(t *testing.T) {
	require.False(t, shouldTraceRequest("/healthz"))
	require.False(t, shouldTraceRequest(" /HEALTHZ "))
	require.False(t, shouldTraceRequest("/readyz"))
	require.True(t, shouldTraceRequest("/v1/players"))
}
