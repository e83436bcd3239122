package fastauth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Request headers carrying the bearer credentials
const (
	HeaderUserID      = "X-User-Id"
	HeaderAccessToken = "X-Access-Token"
)

// IsAuthenticatedRequest checks the credential headers on c against
// svc. A missing or malformed header means "not authenticated", never
// an error
func IsAuthenticatedRequest[T UserRecord](c *fiber.Ctx, svc *Service[T]) (bool, error) {
	userID := c.Get(HeaderUserID)
	token := c.Get(HeaderAccessToken)

	if userID == "" || token == "" {
		return false, nil
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return false, nil
	}

	return svc.IsAuthenticated(c.UserContext(), id, token)
}

// RequireAuthenticated is a fiber middleware that rejects requests
// whose credential headers do not verify
func RequireAuthenticated[T UserRecord](svc *Service[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := IsAuthenticatedRequest(c, svc)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal error",
			})
		}

		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"authenticated": false,
			})
		}

		return c.Next()
	}
}
