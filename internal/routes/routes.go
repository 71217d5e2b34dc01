// Package routes wires repositories, services and controllers onto the
// echo router.
package routes

import (
	"helpdesk-system/internal/controllers"
	"helpdesk-system/internal/listeners"
	"helpdesk-system/internal/notify"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/config"
	"helpdesk-system/pkg/eventbus"
	"helpdesk-system/pkg/linechat"
	"helpdesk-system/pkg/mailer"
	"helpdesk-system/pkg/middleware"
	"helpdesk-system/pkg/service"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
	bus *eventbus.Bus,
) {
	// Repositories.
	userRepo := repositories.NewUserRepository(dbConn)
	ticketRepo := repositories.NewTicketRepository(dbConn)
	commentRepo := repositories.NewTicketCommentRepository(dbConn)
	viewRepo := repositories.NewTicketViewRepository(dbConn)
	employeeRepo := repositories.NewEmployeeRepository(dbConn)
	emailRequestRepo := repositories.NewEmailRequestRepository(dbConn)
	auditRepo := repositories.NewAuditRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Notification channels and the event fan-out.
	emailChannel := mailer.NewMailer(cfg.SMTP, logger)
	chatChannel := linechat.NewClient(cfg.Chat, logger)
	dispatcher := notify.NewDispatcher(emailChannel, chatChannel, cfg, logger)
	listeners.NewNotificationListener(dispatcher, userRepo, logger).Register(bus)

	// Services.
	jwtService := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)
	auditService := services.NewAuditService(auditRepo, userRepo, logger)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtService, auditService, cfg.Auth, logger)
	ticketService := services.NewTicketService(ticketRepo, commentRepo, viewRepo, userRepo, auditService, bus, logger)
	employeeService := services.NewEmployeeService(employeeRepo, auditService, logger)
	emailRequestService := services.NewEmailRequestService(emailRequestRepo, auditService, bus)

	// Controllers.
	authController := controllers.NewAuthController(authService, logger)
	ticketController := controllers.NewTicketController(ticketService, logger)
	employeeController := controllers.NewEmployeeController(employeeService, logger)
	emailRequestController := controllers.NewEmailRequestController(emailRequestService, logger)
	auditController := controllers.NewAuditController(auditService, logger)

	authMW := middleware.NewAuthMiddleware(jwtService, logger)
	api := e.Group("/api")

	runAuthRouter(api, authController, authMW)
	runTicketRouter(api, ticketController, authMW)
	runEmployeeRouter(api, employeeController, authMW)
	runEmailRequestRouter(api, emailRequestController, authMW)
	runAuditRouter(api, auditController, authMW)
}
