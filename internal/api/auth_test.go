package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginInstallsToken(t *testing.T) {
	expiry := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin@evlive.dev",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@evlive.dev", body["email"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
			"message": "Signed in",
			"token":   signed,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	auth := NewAuthClient(client)

	require.NoError(t, auth.Login(context.Background(), "admin@evlive.dev", "admin"))
	assert.Equal(t, signed, client.token)
	assert.True(t, auth.TokenExpiry().Equal(expiry))
}

func TestTokenExpiryWithoutToken(t *testing.T) {
	auth := NewAuthClient(NewClient("http://localhost"))
	assert.True(t, auth.TokenExpiry().IsZero())
}
