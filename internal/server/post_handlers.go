package server

import (
	"nostagram/internal/models"
	"nostagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Content   string   `json:"content"`
	ImageURLs []string `json:"image_urls"`
}

type updatePostRequest struct {
	Content string `json:"content"`
}

// CreatePost creates a new post for the authenticated user
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID:  currentUserID(c),
		Content:   req.Content,
		ImageURLs: req.ImageURLs,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetFeed returns the public feed, newest first, cursor-paginated. Supports
// ?cursor=, ?limit=, and ?search= for case-insensitive content search.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	cursor, limit, search := parseListQuery(c)

	page, err := s.postService.ListFeed(c.UserContext(), service.ListFeedInput{
		Cursor: cursor,
		Limit:  limit,
		Search: search,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(page)
}

// GetPost returns a single post by ID
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(post)
}

// GetUserPosts returns a user's posts, newest first, cursor-paginated
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	cursor, limit, _ := parseListQuery(c)

	page, err := s.postService.ListByAuthor(c.UserContext(), id, cursor, limit)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(page)
}

// UpdatePost edits a post's content. Only the author may update.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:  currentUserID(c),
		PostID:  id,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(post)
}

// DeletePost removes a post. The author or an admin may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
