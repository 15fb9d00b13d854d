package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileHandlers(t *testing.T) {
	app, s := newTestApp(t)
	user, token := createTestUser(t, s, "profile_user", "profile@example.com")

	t.Run("get own profile", func(t *testing.T) {
		resp, payload := doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/users/me", nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "profile_user", payload["username"])
	})

	t.Run("update bio", func(t *testing.T) {
		resp, payload := doRequest(t, app, jsonRequest(t, http.MethodPut, "/api/users/me",
			map[string]any{"bio": "shayar at heart"}, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "shayar at heart", payload["bio"])
	})

	t.Run("get another user by id", func(t *testing.T) {
		other, _ := createTestUser(t, s, "other_user", "other@example.com")
		resp, payload := doRequest(t, app, jsonRequest(t, http.MethodGet,
			fmt.Sprintf("/api/users/%d", other.ID), nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "other_user", payload["username"])
	})

	t.Run("missing user yields 404", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/users/99999", nil, token))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("user posts listing", func(t *testing.T) {
		postID := createPostFor(t, app, token, "my own post")
		resp, payload := doRequest(t, app, jsonRequest(t, http.MethodGet,
			fmt.Sprintf("/api/users/%d/posts", user.ID), nil, token))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := payload["data"].([]any)
		require.Len(t, data, 1)
		post := data[0].(map[string]any)
		assert.Equal(t, float64(postID), post["id"])
	})
}
