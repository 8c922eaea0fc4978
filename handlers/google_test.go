package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleLoginRedirectsToConsent(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/google", "", nil)
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "accounts.google.com")

	var stateSet bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "oauth_state" && c.Value != "" {
			stateSet = true
		}
	}
	assert.True(t, stateSet, "state cookie must be set")
}

func TestGoogleCallbackRejectsBadState(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/google/callback?state=forged&code=x", "", nil)
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login?error=")
}
