package handler

import (
	"github.com/gofiber/fiber/v2"

	"twoem/internal/service"
)

// AdminStats reports aggregate counts for the admin dashboard. Counts
// come straight from the store so they stay exact regardless of
// pagination.
//
// @Summary Aggregate store statistics
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]int
// @Router /api/admin/stats [get]
func AdminStats(fileSvc service.FileService, eulogySvc service.EulogyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := fileSvc.Count(c.UserContext())
		if err != nil {
			return mapServiceError(c, err)
		}
		eulogies, err := eulogySvc.Count(c.UserContext())
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"total_files":    files,
			"valid_eulogies": eulogies,
		})
	}
}
