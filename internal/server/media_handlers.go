package server

import (
	"time"

	"nostagram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMediaSignature returns a signed upload payload so clients can upload
// images directly to Cloudinary without the API key secret.
func (s *Server) GetMediaSignature(c *fiber.Ctx) error {
	if !s.signer.Enabled() {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			&models.AppError{Code: "EXTERNAL_SERVICE", Message: "Media uploads are not configured"})
	}

	return c.JSON(s.signer.UploadSignature(time.Now()))
}

// GetMediaURL resolves a Cloudinary public ID into a delivery URL
func (s *Server) GetMediaURL(c *fiber.Ctx) error {
	if !s.signer.Enabled() {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			&models.AppError{Code: "EXTERNAL_SERVICE", Message: "Media uploads are not configured"})
	}

	publicID := c.Params("*")
	if publicID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Media public ID is required"))
	}

	return c.JSON(fiber.Map{
		"url": s.signer.DeliveryURL(publicID),
	})
}
