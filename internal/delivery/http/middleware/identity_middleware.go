package middleware

import (
	"kindred/internal/delivery/http/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXUserID carries the authenticated user's ID, injected by the API
// gateway in front of this service. Authentication itself happens upstream.
const HeaderXUserID = "X-User-Id"

// IdentityMiddleware resolves the acting user from the gateway header.
type IdentityMiddleware struct{}

// NewIdentityMiddleware creates a new identity middleware
func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

// Resolve parses the user ID header and stores it in the echo context under
// "userID". Requests without a valid ID are rejected before any handler runs.
func (m *IdentityMiddleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(HeaderXUserID)
		if raw == "" {
			return response.Unauthorized(c, "MISSING_IDENTITY", "Missing user identity header")
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			return response.Unauthorized(c, "INVALID_IDENTITY", "Invalid user identity header")
		}

		c.Set("userID", userID)

		return next(c)
	}
}
