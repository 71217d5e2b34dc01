package routes

import (
	"helpdesk-system/internal/controllers"
	"helpdesk-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runEmployeeRouter(api *echo.Group, c *controllers.EmployeeController, mw *middleware.AuthMiddleware) {
	employees := api.Group("/employees", mw.Auth)

	employees.GET("", c.GetEmployees)
	employees.GET("/:id", c.FindEmployee)
	employees.GET("/export/csv", c.ExportCSV)
	employees.GET("/export/xlsx", c.ExportXLSX)

	// Roster mutation is an admin concern.
	employees.POST("", c.CreateEmployee, mw.AdminOnly)
	employees.PUT("/:id", c.UpdateEmployee, mw.AdminOnly)
	employees.DELETE("/:id", c.DeleteEmployee, mw.AdminOnly)
	employees.POST("/import", c.ImportCSV, mw.AdminOnly)
}
