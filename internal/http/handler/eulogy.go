package handler

import (
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"twoem/internal/http/middleware"
	"twoem/internal/service"
)

type uploadEulogyRequest struct {
	Title        string `json:"title"`
	DeceasedName string `json:"deceased_name"`
	Description  string `json:"description"`
	Content      string `json:"content"`
}

// UploadEulogy stores a PDF eulogy, valid for 72 hours from upload.
//
// @Summary Upload a eulogy
// @Tags eulogies
// @Accept json
// @Produce json
// @Param body body uploadEulogyRequest true "upload"
// @Success 201 {object} model.Eulogy
// @Failure 400 {object} errorPayload
// @Router /api/eulogies [post]
func UploadEulogy(svc service.EulogyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.PrincipalFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		}

		var req uploadEulogyRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.DeceasedName == "" {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "deceased_name is required")
		}

		content, err := base64.StdEncoding.DecodeString(req.Content)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_CONTENT", "content must be base64-encoded")
		}

		e, err := svc.Upload(c.UserContext(), p, service.UploadEulogyInput{
			Title:        req.Title,
			DeceasedName: req.DeceasedName,
			Description:  req.Description,
			Content:      content,
		})
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// ListEulogies returns eulogies that have not yet expired. Public.
//
// @Summary List valid eulogies
// @Tags eulogies
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} service.EulogyListResult
// @Router /api/eulogies [get]
func ListEulogies(svc service.EulogyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := parsePage(c)
		if err != nil {
			return err
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DownloadEulogy streams the PDF while the record is still valid. Public.
//
// @Summary Download a eulogy
// @Tags eulogies
// @Produce octet-stream
// @Param id path string true "eulogy ID"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Failure 410 {object} errorPayload
// @Router /api/eulogies/{id} [get]
func DownloadEulogy(svc service.EulogyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, e, err := svc.Download(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, e.ContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+e.Filename+`"`)
		return c.SendStream(rc, int(e.Size))
	}
}

// DeleteEulogy removes a eulogy before its natural expiry. Wired under
// the admin route group.
//
// @Summary Delete a eulogy
// @Tags admin
// @Param id path string true "eulogy ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/admin/eulogies/{id} [delete]
func DeleteEulogy(svc service.EulogyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.PrincipalFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), p, id); err != nil {
			return mapServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CleanupExpired triggers an expiry sweep and reports how many records
// it removed.
//
// @Summary Sweep expired eulogies
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/admin/cleanup-expired [post]
func CleanupExpired(svc service.EulogyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deleted, err := svc.Sweep(c.UserContext())
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"deleted": deleted,
			"message": "cleanup complete",
		})
	}
}
