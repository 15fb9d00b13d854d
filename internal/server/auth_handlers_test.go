package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("success returns user and token", func(t *testing.T) {
		resp, payload := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
			"name":     "Meera Joshi",
			"username": "meera_j",
			"email":    "meera@example.com",
			"password": "StrongPass12!@",
		}, ""))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NotEmpty(t, payload["token"])

		user, ok := payload["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "meera_j", user["username"])
		// Password hash must never appear in the response
		_, hasPassword := user["password"]
		assert.False(t, hasPassword)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
			"name":     "Someone Else",
			"username": "someone_else",
			"email":    "meera@example.com",
			"password": "StrongPass12!@",
		}, ""))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
			"name":     "Weak Pass",
			"username": "weak_pass",
			"email":    "weak@example.com",
			"password": "short",
		}, ""))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	app, s := newTestApp(t)
	createTestUser(t, s, "login_user", "login@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		resp, payload := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "login@example.com",
			"password": "StrongPass12!@",
		}, ""))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, payload["token"])
	})

	t.Run("wrong password unauthorized", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "login@example.com",
			"password": "WrongPass12!@",
		}, ""))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email unauthorized", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "StrongPass12!@",
		}, ""))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthRequired(t *testing.T) {
	app, s := newTestApp(t)
	_, token := createTestUser(t, s, "auth_user", "auth@example.com")

	t.Run("missing token rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/users/me", nil, ""))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/users/me", nil, "not-a-jwt"))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token accepted", func(t *testing.T) {
		resp, payload := doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/users/me", nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "auth_user", payload["username"])
	})
}
