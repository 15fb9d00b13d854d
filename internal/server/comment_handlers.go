package server

import (
	"nostagram/internal/models"
	"nostagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	Content       string `json:"content"`
	AudioPresetID *uint  `json:"audio_preset_id"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// CreateComment adds a comment to a post. A comment carries text, an audio
// preset, or both.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:        currentUserID(c),
		PostID:        postID,
		Content:       req.Content,
		AudioPresetID: req.AudioPresetID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments lists a post's comments, newest first, cursor-paginated
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	cursor, limit, _ := parseListQuery(c)

	page, err := s.commentService.ListComments(c.UserContext(), postID, cursor, limit)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(page)
}

// UpdateComment edits a comment's text. Only the author may update.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req updateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(comment)
}

// DeleteComment removes a comment. The author or an admin may delete.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if _, err := s.commentService.DeleteComment(c.UserContext(), currentUserID(c), commentID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
