package handler

import (
	"github.com/gofiber/fiber/v2"

	"twoem/internal/service"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitContact records a contact form submission. Public.
//
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param body body contactRequest true "submission"
// @Success 201 {object} model.Contact
// @Router /api/contact [post]
func SubmitContact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req contactRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.Name == "" || req.Email == "" || req.Message == "" {
			return writeError(c, fiber.StatusBadRequest, "FIELDS_REQUIRED", "name, email and message are required")
		}

		res, err := svc.Submit(c.UserContext(), service.ContactInput{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		})
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListContacts returns submissions for review. Wired under the admin
// route group.
//
// @Summary List contact submissions
// @Tags admin
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} service.ContactListResult
// @Router /api/contact [get]
func ListContacts(svc service.ContactService) fiber.Handler {
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
