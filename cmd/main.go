package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/ancheloroman23/EasyLogin/config"
	"github.com/ancheloroman23/EasyLogin/db"
	"github.com/ancheloroman23/EasyLogin/internal/auth/handler"
	repo "github.com/ancheloroman23/EasyLogin/internal/auth/repository/postgres"
	"github.com/ancheloroman23/EasyLogin/internal/auth/service"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	if cfg.Env != "development" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := db.RunMigrations(cfg.DBURL, cfg.MigrationsPath); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	pool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	userRepo := repo.NewPostgresRepository(pool)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenExpiryMin)
	userService := service.NewUserService(userRepo, tokenService, service.NewPasswordHasher(), cfg.StrictTokenCheck)
	authHandler := handler.NewAuthHandler(userService, log)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	log.WithField("port", cfg.Port).Info("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
