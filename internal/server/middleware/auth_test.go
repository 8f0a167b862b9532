package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTokenValidator struct {
	validTokens map[string]string
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{validTokens: make(map[string]string)}
}

func (v *testTokenValidator) addValidToken(token, sessionID string) {
	v.validTokens[token] = sessionID
}

func (v *testTokenValidator) ValidateToken(tokenString string) (SessionIDGetter, error) {
	sessionID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(sessionID), nil
}

type testClaims string

func (c testClaims) GetSessionID() string {
	return string(c)
}

func serve(t *testing.T, validator TokenValidator, authHeader string) (*httptest.ResponseRecorder, string, bool) {
	t.Helper()
	var (
		called    bool
		sessionID string
	)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		id, err := GetSessionID(r)
		require.NoError(t, err)
		sessionID = id
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	AuthMiddleware(validator)(handler).ServeHTTP(w, req)
	return w, sessionID, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("token-abc", "session-1")

	w, sessionID, called := serve(t, validator, "Bearer token-abc")

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session-1", sessionID)
}

func TestAuthMiddleware_CaseInsensitiveScheme(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("token-abc", "session-1")

	for _, header := range []string{"bearer token-abc", "BeArEr token-abc", "Bearer  token-abc"} {
		w, sessionID, called := serve(t, validator, header)
		assert.True(t, called, header)
		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.Equal(t, "session-1", sessionID, header)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("token-abc", "session-1")
	validator.addValidToken("token-empty", "")

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "missing scheme", header: "token-abc"},
		{name: "scheme only", header: "Bearer"},
		{name: "wrong scheme", header: "Basic token-abc"},
		{name: "extra parts", header: "Bearer token-abc extra"},
		{name: "unknown token", header: "Bearer not.a.token"},
		{name: "claims without session", header: "Bearer token-empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, called := serve(t, validator, tt.header)
			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "unauthorized")
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestGetSessionID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	_, err := GetSessionID(req)
	assert.ErrorIs(t, err, ErrNoSession)

	req = req.WithContext(WithSessionID(req.Context(), "session-2"))
	sessionID, err := GetSessionID(req)
	require.NoError(t, err)
	assert.Equal(t, "session-2", sessionID)

	req = req.WithContext(context.WithValue(req.Context(), sessionIDKey, 42))
	_, err = GetSessionID(req)
	assert.ErrorIs(t, err, ErrNoSession)
}
