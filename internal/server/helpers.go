package server

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"nostagram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that a helper already wrote the error response.
// Handlers must return nil when they see it so the global error handler does
// not write a second body.
var errResponseWritten = errors.New("response already written")

// parseID extracts and validates a numeric route parameter. On failure it
// writes a 400 response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseCursor reads the optional ?cursor= query parameter. Zero and absent
// both mean "first page".
func parseCursor(c *fiber.Ctx) *uint {
	v := c.QueryInt("cursor", 0)
	if v <= 0 {
		return nil
	}
	cursor := uint(v)
	return &cursor
}

// parseListQuery reads cursor, limit, and search query parameters for
// cursor-paginated listings.
func parseListQuery(c *fiber.Ctx) (cursor *uint, limit int, search string) {
	cursor = parseCursor(c)
	limit = c.QueryInt("limit", 0)
	search = strings.TrimSpace(c.Query("search"))
	return cursor, limit, search
}

// humanizeParam turns a route parameter name like "commentId" into
// "comment ID" for error messages.
func humanizeParam(param string) string {
	words := splitCamel(param)
	for i, w := range words {
		if strings.EqualFold(w, "id") {
			words[i] = "ID"
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(s string) []string {
	var words []string
	var current strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) && current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
		current.WriteRune(unicode.ToLower(r))
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

// isAdminByUserID is injected into services that need admin checks without
// depending on the user service.
func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	return s.userRepo.IsAdmin(ctx, userID)
}

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}
