package routes

import (
	"helpdesk-system/internal/controllers"
	"helpdesk-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runAuditRouter(api *echo.Group, c *controllers.AuditController, mw *middleware.AuthMiddleware) {
	audit := api.Group("/audit-logs", mw.Auth, mw.AdminOnly)

	audit.GET("", c.GetEntries)
}
