package routes

import (
	"helpdesk-system/internal/controllers"
	"helpdesk-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runTicketRouter(api *echo.Group, c *controllers.TicketController, mw *middleware.AuthMiddleware) {
	tickets := api.Group("/tickets", mw.Auth)

	tickets.POST("", c.CreateTicket)
	tickets.GET("", c.GetTickets)
	tickets.GET("/:id", c.FindTicket)
	tickets.PUT("/:id", c.UpdateTicket)
	tickets.DELETE("/:id", c.DeleteTicket, mw.AdminOnly)

	tickets.GET("/:id/comments", c.GetComments)
	tickets.POST("/:id/comments", c.AddComment)
}
