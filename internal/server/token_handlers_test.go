package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPushToken(t *testing.T) {
	app, s := newTestApp(t)
	user, token := createTestUser(t, s, "push_user", "push@example.com")

	t.Run("registers a device token", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/push/tokens",
			map[string]any{"token": "device-token-1", "device_info": "Pixel 9"}, token))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		tokens, err := s.tokenRepo.ListByUser(context.Background(), user.ID)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, "Pixel 9", tokens[0].DeviceInfo)
	})

	t.Run("re-registering refreshes instead of duplicating", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/push/tokens",
			map[string]any{"token": "device-token-1", "device_info": "Pixel 9 Pro"}, token))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		tokens, err := s.tokenRepo.ListByUser(context.Background(), user.ID)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, "Pixel 9 Pro", tokens[0].DeviceInfo)
	})

	t.Run("blank token rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/push/tokens",
			map[string]any{"token": "  "}, token))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUnregisterPushToken(t *testing.T) {
	app, s := newTestApp(t)
	user, token := createTestUser(t, s, "push_off", "push_off@example.com")

	_, _ = doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/push/tokens",
		map[string]any{"token": "device-token-2"}, token))

	resp, _ := doRequest(t, app, jsonRequest(t, http.MethodDelete, "/api/push/tokens",
		map[string]any{"token": "device-token-2"}, token))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	tokens, err := s.tokenRepo.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}
