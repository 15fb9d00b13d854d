package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"nostagram/internal/models"
	"nostagram/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPostFor(t *testing.T, app *fiber.App, token, content string) int {
	t.Helper()
	resp, payload := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/posts", map[string]any{
		"content": content,
	}, token))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return int(payload["id"].(float64))
}

func TestCreateComment(t *testing.T) {
	app, s := newTestApp(t)
	_, authorToken := createTestUser(t, s, "post_author", "author@example.com")
	_, commenterToken := createTestUser(t, s, "commenter", "commenter@example.com")

	postID := createPostFor(t, app, authorToken, "comment on this")

	t.Run("text comment", func(t *testing.T) {
		resp, payload := doRequest(t, app, jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/posts/%d/comments", postID),
			map[string]any{"content": "kya baat hai"}, commenterToken))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "kya baat hai", payload["content"])
	})

	t.Run("audio preset only comment", func(t *testing.T) {
		count, err := seed.AudioPresets(context.Background(), s.db)
		require.NoError(t, err)
		require.Greater(t, count, 0)

		var preset models.AudioPreset
		require.NoError(t, s.db.First(&preset).Error)

		resp, payload := doRequest(t, app, jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/posts/%d/comments", postID),
			map[string]any{"audio_preset_id": preset.ID}, commenterToken))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, float64(preset.ID), payload["audio_preset_id"])
	})

	t.Run("neither text nor preset rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/posts/%d/comments", postID),
			map[string]any{"content": ""}, commenterToken))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown preset rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/posts/%d/comments", postID),
			map[string]any{"audio_preset_id": 99999}, commenterToken))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing post yields 404", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPost,
			"/api/posts/99999/comments",
			map[string]any{"content": "into the void"}, commenterToken))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetCommentsPagination(t *testing.T) {
	app, s := newTestApp(t)
	_, token := createTestUser(t, s, "thread_author", "thread@example.com")

	postID := createPostFor(t, app, token, "busy thread")

	for i := 1; i <= 7; i++ {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/posts/%d/comments", postID),
			map[string]any{"content": fmt.Sprintf("reply %d", i)}, token))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, firstPage := doRequest(t, app, jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/posts/%d/comments?limit=5", postID), nil, ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := firstPage["data"].([]any)
	require.Len(t, data, 5)
	newest := data[0].(map[string]any)
	assert.Equal(t, "reply 7", newest["content"])
	require.NotNil(t, firstPage["nextCursor"])

	cursor := int(firstPage["nextCursor"].(float64))
	resp, secondPage := doRequest(t, app, jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/posts/%d/comments?limit=5&cursor=%d", postID, cursor), nil, ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, secondPage["data"].([]any), 2)
	assert.Nil(t, secondPage["nextCursor"])
}

func TestUpdateAndDeleteComment(t *testing.T) {
	app, s := newTestApp(t)
	_, ownerToken := createTestUser(t, s, "c_owner", "c_owner@example.com")
	_, strangerToken := createTestUser(t, s, "c_stranger", "c_stranger@example.com")

	postID := createPostFor(t, app, ownerToken, "a post")

	_, created := doRequest(t, app, jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/posts/%d/comments", postID),
		map[string]any{"content": "first draft"}, ownerToken))
	commentID := int(created["id"].(float64))

	t.Run("stranger cannot edit", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPut,
			fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID),
			map[string]any{"content": "hijacked"}, strangerToken))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner edits", func(t *testing.T) {
		resp, payload := doRequest(t, app, jsonRequest(t, http.MethodPut,
			fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID),
			map[string]any{"content": "second draft"}, ownerToken))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "second draft", payload["content"])
	})

	t.Run("owner deletes", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodDelete,
			fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID), nil, ownerToken))
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}
