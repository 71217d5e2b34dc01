package main

import (
	"context"

	"helpdesk-system/internal/routes"
	"helpdesk-system/migrations"
	"helpdesk-system/pkg/config"
	"helpdesk-system/pkg/database/postgresql"
	"helpdesk-system/pkg/eventbus"
	"helpdesk-system/pkg/logger"
	appmw "helpdesk-system/pkg/middleware"
	"helpdesk-system/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg := config.New()
	if cfg.JWT.SecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	if err := migrations.Up(cfg.Postgres.DSN); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator(validator.New())

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(appmw.RequestLogger(log))
	e.Use(appmw.RequestMeta())

	bus := eventbus.New(log)
	routes.InitRouter(e, dbConn, redisClient, cfg, log, bus)

	log.Info("starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
