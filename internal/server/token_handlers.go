package server

import (
	"strings"

	"nostagram/internal/models"

	"github.com/gofiber/fiber/v2"
)

type pushTokenRequest struct {
	Token      string `json:"token"`
	DeviceInfo string `json:"device_info"`
}

// RegisterPushToken registers or refreshes a device push token for the
// authenticated user.
func (s *Server) RegisterPushToken(c *fiber.Ctx) error {
	var req pushTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token is required"))
	}

	record := &models.FCMToken{
		UserID:     currentUserID(c),
		Token:      req.Token,
		DeviceInfo: req.DeviceInfo,
	}
	if err := s.tokenRepo.Upsert(c.UserContext(), record); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Push token registered",
	})
}

// UnregisterPushToken removes a device push token, typically on logout
func (s *Server) UnregisterPushToken(c *fiber.Ctx) error {
	var req pushTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token is required"))
	}

	if err := s.tokenRepo.Delete(c.UserContext(), currentUserID(c), req.Token); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
