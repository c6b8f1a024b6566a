package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// MemberIDKey is the context key holding the authenticated member id
const MemberIDKey ContextKey = "member_id"

// ExtractMember extracts the X-Member-ID header into the request
// context. Authentication itself lives upstream; this layer trusts the
// already-authenticated principal the caller supplies.
func ExtractMember() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("X-Member-ID")
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"error": "X-Member-ID header is required",
				})
			}

			id, err := uuid.Parse(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"error": "X-Member-ID must be a valid UUID",
				})
			}

			c.Set(string(MemberIDKey), id)
			return next(c)
		}
	}
}

// MemberID returns the acting member stored by ExtractMember
func MemberID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(string(MemberIDKey)).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
