package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-registry/internal/api/dto"
	"github.com/spec-kit/profile-registry/internal/countries"
)

// CountriesHandler serves the selectable country list.
type CountriesHandler struct {
	client *countries.Client
	logger *zap.Logger
}

// NewCountriesHandler constructs handler.
func NewCountriesHandler(client *countries.Client, logger *zap.Logger) *CountriesHandler {
	return &CountriesHandler{client: client, logger: logger}
}

// List GET /countries. A directory failure is logged and degrades to an
// empty list rather than an error response.
func (h *CountriesHandler) List(c *fiber.Ctx) error {
	names, err := h.client.ListNames(c.UserContext())
	if err != nil {
		h.logger.Error("country directory fetch failed", zap.Error(err))
		names = []string{}
	}
	return c.JSON(fiber.Map{"data": dto.CountriesResponse{Countries: names}})
}
