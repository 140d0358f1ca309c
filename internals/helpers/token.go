package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pustakaedu_backend/internals/helpers/errs"
)

// GetUserIDFromLocals mengambil user_id yang disimpan auth middleware.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("user_id")
	if raw == nil {
		return uuid.Nil, errs.ErrUnauthenticated
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return uuid.Nil, errs.ErrUnauthenticated
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errs.ErrUnauthenticated
	}
	return id, nil
}

// HasRoleFromLocals cek apakah salah satu role user (di-set auth middleware) ada di daftar allowed.
func HasRoleFromLocals(c *fiber.Ctx, allowed []string) bool {
	raw := c.Locals("roles")
	roles, ok := raw.([]string)
	if !ok {
		return false
	}
	for _, r := range roles {
		for _, a := range allowed {
			if r == a {
				return true
			}
		}
	}
	return false
}
