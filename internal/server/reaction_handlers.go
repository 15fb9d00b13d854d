package server

import (
	"nostagram/internal/models"
	"nostagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

type toggleReactionRequest struct {
	Type string `json:"type"`
}

// TogglePostReaction toggles the caller's reaction on a post. The response
// reports whether the reaction was added, removed, or updated to a new type.
func (s *Server) TogglePostReaction(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req toggleReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.reactionService.TogglePostReaction(c.UserContext(), postID, service.ToggleReactionInput{
		UserID: currentUserID(c),
		Type:   models.ReactionType(req.Type),
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(result)
}

// ToggleCommentReaction toggles the caller's reaction on a comment
func (s *Server) ToggleCommentReaction(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req toggleReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.reactionService.ToggleCommentReaction(c.UserContext(), commentID, service.ToggleReactionInput{
		UserID: currentUserID(c),
		Type:   models.ReactionType(req.Type),
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(result)
}
