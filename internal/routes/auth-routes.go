package routes

import (
	"helpdesk-system/internal/controllers"
	"helpdesk-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, c *controllers.AuthController, mw *middleware.AuthMiddleware) {
	auth := api.Group("/auth")

	auth.POST("/login", c.Login)
	auth.POST("/refresh", c.Refresh)
	auth.GET("/me", c.Me, mw.Auth)
}
