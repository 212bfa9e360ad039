package middleware

// identity.go holds helpers shared across middleware files.

import "github.com/labstack/echo/v4"

// userID returns the subject stored by JWTAuth, or "guest" when the
// request is unauthenticated.
func userID(c echo.Context) string {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s
	}
	return "guest"
}
