package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"

	"twoem/internal/model"
)

// PrincipalLocalKey is the key used to store the authenticated principal in
// Fiber's context locals.
const PrincipalLocalKey = "principal"

// RequireAuth validates the Authorization bearer token and stores the
// resulting principal in context locals. Requests without a valid token are
// rejected with 401.
func RequireAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		p, err := validateToken(token, jwtSecret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(PrincipalLocalKey, p)
		return c.Next()
	}
}

// RequireAdmin rejects non-admin principals with 403. Must run after
// RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFromCtx(c)
		if !ok || !p.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// PrincipalFromCtx returns the principal stored by RequireAuth, if any.
func PrincipalFromCtx(c *fiber.Ctx) (model.Principal, bool) {
	p, ok := c.Locals(PrincipalLocalKey).(model.Principal)
	return p, ok
}

func validateToken(tokenString, secret string) (model.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return model.Principal{}, err
	}
	if !token.Valid {
		return model.Principal{}, jwt.ErrSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Principal{}, jwt.ErrInvalidKey
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return model.Principal{}, jwt.ErrInvalidKey
	}

	email, _ := claims["email"].(string)
	admin, _ := claims["admin"].(bool)
	return model.Principal{ID: sub, Email: email, IsAdmin: admin}, nil
}
