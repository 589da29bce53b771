package handler

import (
	"github.com/gofiber/fiber/v2"

	"twoem/internal/http/middleware"
	"twoem/internal/service"
)

type credentialRequest struct {
	FirstName     string `json:"first_name"`
	Email         string `json:"email"`
	EmailPassword string `json:"email_password"`
	ItaxPIN       string `json:"itax_pin"`
	ItaxPassword  string `json:"itax_password"`
}

// SaveCredential seals and stores a customer's Gmail/iTax secrets.
//
// @Summary Save customer credentials
// @Tags credentials
// @Accept json
// @Produce json
// @Param body body credentialRequest true "credentials"
// @Success 201 {object} model.Credential
// @Failure 401 {object} errorPayload
// @Router /api/credentials [post]
func SaveCredential(svc service.CredentialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.PrincipalFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		}

		var req credentialRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.FirstName == "" || req.Email == "" {
			return writeError(c, fiber.StatusBadRequest, "FIELDS_REQUIRED", "first_name and email are required")
		}

		res, err := svc.Save(c.UserContext(), p, service.CredentialInput{
			FirstName:     req.FirstName,
			Email:         req.Email,
			EmailPassword: req.EmailPassword,
			ItaxPIN:       req.ItaxPIN,
			ItaxPassword:  req.ItaxPassword,
		})
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListCredentials returns stored credential records (sealed fields are
// never serialized). Wired under the admin route group.
//
// @Summary List customer credentials
// @Tags admin
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} service.CredentialListResult
// @Router /api/credentials [get]
func ListCredentials(svc service.CredentialService) fiber.Handler {
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
