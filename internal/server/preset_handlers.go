package server

import (
	"nostagram/internal/models"
	"nostagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPresetRequest struct {
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
	IsPublic    bool   `json:"is_public"`
}

// GetAudioPresets lists public audio presets, newest first, cursor-paginated.
// Supports ?search= for case-insensitive name search.
func (s *Server) GetAudioPresets(c *fiber.Ctx) error {
	cursor, limit, search := parseListQuery(c)

	page, err := s.presetService.ListPresets(c.UserContext(), cursor, limit, search)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(page)
}

// CreateAudioPreset registers a new audio preset. Admin only.
func (s *Server) CreateAudioPreset(c *fiber.Ctx) error {
	var req createPresetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	preset, err := s.presetService.CreatePreset(c.UserContext(), service.CreatePresetInput{
		DisplayName: req.DisplayName,
		URL:         req.URL,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(preset)
}
