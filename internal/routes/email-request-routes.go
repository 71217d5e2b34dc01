package routes

import (
	"helpdesk-system/internal/controllers"
	"helpdesk-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runEmailRequestRouter(api *echo.Group, c *controllers.EmailRequestController, mw *middleware.AuthMiddleware) {
	requests := api.Group("/email-requests", mw.Auth)

	requests.POST("", c.CreateEmailRequest)
	requests.GET("", c.GetEmailRequests, mw.AdminOnly)
}
