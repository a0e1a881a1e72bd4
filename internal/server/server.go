package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"jotter/internal/auth"
	"jotter/internal/config"
	"jotter/internal/database"
	"jotter/internal/database/repositories"
	"jotter/internal/notes"
)

type FiberServer struct {
	*fiber.App

	cfg    *config.Config
	db     database.Service
	tokens *auth.TokenService
	users  repositories.UserRepository
	notes  *notes.Service
}

func New(cfg *config.Config, db database.Service) *FiberServer {
	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: "jotter",
			AppName:      "jotter",
			ErrorHandler: errorHandler,
		}),
		cfg:    cfg,
		db:     db,
		tokens: auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL),
		users:  repositories.NewUserRepository(db.DB()),
		notes: notes.NewService(
			repositories.NewNoteRepository(db.DB()),
			repositories.NewSearchRepository(db.DB()),
		),
	}
	server.App.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization,X-Requested-With",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       3600,
	}))
	server.App.Use(logger.New())
	return server
}
