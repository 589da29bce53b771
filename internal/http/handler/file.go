package handler

import (
	"encoding/base64"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"twoem/internal/http/middleware"
	"twoem/internal/service"
)

// uploadFileRequest is the JSON upload body. Content carries the payload
// base64-encoded, matching the browser client that reads files with
// FileReader.
type uploadFileRequest struct {
	Filename    string `json:"filename"`
	FileType    string `json:"file_type"`
	Description string `json:"description"`
	Content     string `json:"content"`
	IsPublic    bool   `json:"is_public"`
}

// parsePage reads limit/offset query params with the shared defaults.
// On invalid input it writes the 400 response and returns its error.
func parsePage(c *fiber.Ctx) (limit, offset int, err error) {
	limit, convErr := strconv.Atoi(c.Query("limit", "10"))
	if convErr != nil {
		return 0, 0, writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, convErr = strconv.Atoi(c.Query("offset", "0"))
	if convErr != nil {
		return 0, 0, writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, nil
}

// ListFiles returns the files visible to the caller.
//
// @Summary List files
// @Tags files
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Param public_only query bool false "restrict to public files"
// @Success 200 {object} service.FileListResult
// @Failure 401 {object} errorPayload
// @Router /api/files [get]
func ListFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.PrincipalFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		}

		limit, offset, err := parsePage(c)
		if err != nil {
			return err
		}
		publicOnly := c.QueryBool("public_only")

		res, err := svc.List(c.UserContext(), p, publicOnly, limit, offset)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadFile stores a new file for the authenticated caller.
//
// @Summary Upload a file
// @Tags files
// @Accept json
// @Produce json
// @Param body body uploadFileRequest true "upload"
// @Success 201 {object} model.File
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Router /api/files [post]
func UploadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.PrincipalFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		}

		var req uploadFileRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.Filename == "" {
			return writeError(c, fiber.StatusBadRequest, "FILENAME_REQUIRED", "filename is required")
		}

		content, err := base64.StdEncoding.DecodeString(req.Content)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_CONTENT", "content must be base64-encoded")
		}

		f, err := svc.Upload(c.UserContext(), p, service.UploadFileInput{
			Filename:    req.Filename,
			ContentType: req.FileType,
			Description: req.Description,
			Content:     content,
			Public:      req.IsPublic,
		})
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(f)
	}
}

// DownloadFile streams a file's content to an authorized caller.
//
// @Summary Download a file
// @Tags files
// @Produce octet-stream
// @Param id path string true "file ID"
// @Success 200 {file} binary
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 410 {object} errorPayload
// @Router /api/files/{id} [get]
func DownloadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.PrincipalFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, f, err := svc.Download(c.UserContext(), p, id)
		if err != nil {
			return mapServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, f.ContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.Filename+`"`)
		return c.SendStream(rc, int(f.Size))
	}
}

// DeleteFile removes a file. Wired under the admin route group.
//
// @Summary Delete a file
// @Tags admin
// @Param id path string true "file ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/admin/files/{id} [delete]
func DeleteFile(svc service.FileService) fiber.Handler {
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
