package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"nostagram/internal/config"
	"nostagram/internal/database"
	"nostagram/internal/media"
	"nostagram/internal/models"
	"nostagram/internal/push"
	"nostagram/internal/repository"
	"nostagram/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a Server backed by an in-memory SQLite database and no
// Redis. The Prometheus middleware is left nil so repeated test servers do not
// fight over the default registry.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.ConnectSQLite()
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret: "test-secret-key-for-handler-tests",
		Env:       "test",
		MediaDir:  t.TempDir(),
	}

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		postRepo:    repository.NewPostRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		presetRepo:  repository.NewPresetRepository(db),
		tokenRepo:   repository.NewTokenRepository(db),
	}

	sender, err := push.NewFCMSender(context.Background(), "")
	require.NoError(t, err)
	s.dispatcher = push.NewDispatcher(sender, s.tokenRepo, nil)
	s.signer = media.NewSigner("", "", "", "nostagram")

	ogRender := media.NewOGRenderer(cfg.MediaDir)
	s.userService = service.NewUserService(s.userRepo)
	s.postService = service.NewPostService(s.postRepo, s.userRepo, ogRender, s.isAdminByUserID)
	s.commentService = service.NewCommentService(
		s.commentRepo, s.postRepo, s.presetRepo, s.dispatcher, nil, s.isAdminByUserID)
	s.reactionService = service.NewReactionService(
		repository.NewReactionRepository(db), s.postRepo, s.commentRepo, s.userRepo, s.dispatcher, nil)
	s.presetService = service.NewPresetService(s.presetRepo)

	return s
}

func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	s := newTestServer(t)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupRoutes(app)
	return app, s
}

// createTestUser registers a user directly through the service layer and
// returns the user plus a valid bearer token.
func createTestUser(t *testing.T, s *Server, username, email string) (*models.User, string) {
	t.Helper()

	user, err := s.userService.Signup(context.Background(), service.SignupInput{
		Name:     "Test User",
		Username: username,
		Email:    email,
		Password: "StrongPass12!@",
	})
	require.NoError(t, err)

	token, err := s.generateToken(user)
	require.NoError(t, err)
	return user, token
}

func jsonRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var payload map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &payload)
	}
	return resp, payload
}
