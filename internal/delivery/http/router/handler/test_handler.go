package handler

import (
	"net/http"

	"kindred/internal/delivery/http/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TestHandler handles test endpoints for middleware validation
type TestHandler struct{}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

// TestIdentityEndpoint verifies the identity middleware by echoing the user
// ID resolved from the gateway header.
func (h *TestHandler) TestIdentityEndpoint(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "User ID not found in context")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"message": "Identity middleware test successful",
		"userID":  userID.String(),
		"status":  "identified",
	}, "Identity middleware test successful")
}

// TestPublicEndpoint tests a public endpoint (no identity required)
func (h *TestHandler) TestPublicEndpoint(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"message": "Public endpoint test successful",
		"status":  "public",
	}, "Public endpoint test successful")
}
