package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"jotter/internal/apperrors"
	"jotter/internal/database/models"
)

const currentUserKey = "currentUser"

// resolveUser maps the verified token on the context to a live user row.
// The signature and expiry were already checked by the jwt middleware; the
// claim and row lookups here cover forged old-format tokens and deleted
// users.
func (s *FiberServer) resolveUser(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	sub, ok := claims["user_id"].(string)
	if !ok || sub == "" {
		return apperrors.ErrUnauthenticated
	}
	uid, err := uuid.Parse(sub)
	if err != nil {
		return apperrors.ErrUnauthenticated
	}
	user, err := s.users.GetByID(c.Context(), uid)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrUnauthenticated
	}
	if err != nil {
		return err
	}
	c.Locals(currentUserKey, user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) *models.User {
	return c.Locals(currentUserKey).(*models.User)
}
