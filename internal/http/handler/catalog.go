package handler

import (
	"github.com/gofiber/fiber/v2"

	"twoem/internal/service"
)

// ListServices returns the active services catalog. Public.
//
// @Summary List services
// @Tags services
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/services [get]
func ListServices(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}
