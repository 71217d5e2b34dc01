package middleware

import (
	"context"

	"helpdesk-system/pkg/contextkeys"

	"github.com/labstack/echo/v4"
)

// RequestMeta copies the caller's IP and user agent into the request
// context so the audit trail can record them without touching echo.
func RequestMeta() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, contextkeys.RequestIPKey, c.RealIP())
			ctx = context.WithValue(ctx, contextkeys.UserAgentKey, c.Request().UserAgent())
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
