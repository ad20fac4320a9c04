package middleware

import "github.com/labstack/echo/v4"

// memberID returns the authenticated member's ID from context, or
// "guest" on public routes where JWTAuth did not run.  Used by the
// cache and rate-limit middleware to key per-member buckets.
func memberID(c echo.Context) string {
	if v, ok := c.Get("member_id").(string); ok && v != "" {
		return v
	}
	return "guest"
}
