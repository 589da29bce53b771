package handler

import (
	"github.com/gofiber/fiber/v2"

	"twoem/internal/http/middleware"
	"twoem/internal/service"
)

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new regular account.
//
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "account"
// @Success 201 {object} model.User
// @Failure 409 {object} errorPayload
// @Router /api/auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.Email == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "CREDENTIALS_REQUIRED", "email and password are required")
		}

		u, err := svc.Register(c.UserContext(), service.RegisterInput{
			Email:    req.Email,
			FullName: req.FullName,
			Password: req.Password,
		})
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// Login verifies credentials and issues a bearer token.
//
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} map[string]any
// @Failure 401 {object} errorPayload
// @Router /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		token, u, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"access_token": token,
			"token_type":   "bearer",
			"user":         u,
		})
	}
}

// Me returns the account behind the presented token.
//
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errorPayload
// @Router /api/auth/me [get]
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.PrincipalFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		}

		u, err := svc.GetUser(c.UserContext(), p.ID)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(u)
	}
}
