package main

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/feastfinder/feastfinder-backend/internal/config"
	"github.com/feastfinder/feastfinder-backend/internal/handler"
	"github.com/feastfinder/feastfinder-backend/internal/middleware"
	"github.com/feastfinder/feastfinder-backend/internal/repository"
	"github.com/feastfinder/feastfinder-backend/internal/service"
	"github.com/feastfinder/feastfinder-backend/pkg/database"
	"github.com/feastfinder/feastfinder-backend/pkg/email"
	"github.com/feastfinder/feastfinder-backend/pkg/logger"
	"github.com/feastfinder/feastfinder-backend/pkg/storage"
	"github.com/feastfinder/feastfinder-backend/pkg/utils"
)

func main() {
	// .env is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Image host backend
	var imgStorage storage.ImageStorage
	switch cfg.ImageStorage {
	case "s3":
		imgStorage, err = storage.NewS3Storage(cfg)
		if err != nil {
			zapLogger.Fatal("failed to initialize S3 storage", zap.Error(err))
		}
	default:
		imgStorage = storage.NewCloudinary(
			cfg.Cloudinary.CloudName,
			cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret,
			cfg.Cloudinary.Folder,
		)
	}

	// Email service (disabled without an API key)
	var emailService *email.EmailService
	if cfg.ResendAPIKey != "" {
		emailService = email.NewEmailService(cfg.ResendAPIKey, zapLogger)
	}

	// Services
	authService := service.NewAuthService(userRepo, emailService)
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo, imgStorage, zapLogger)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService)
	eventHandler := handler.NewEventHandler(eventService, validator)

	// Router with bounded request timeouts
	app := fiber.New(fiber.Config{
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    handler.MaxImageSize + 1024*1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Refresh-Token",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())

	api := app.Group("/api")

	// Public routes
	api.Post("/users", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Get("/events", eventHandler.ListEvents)

	// Protected routes
	api.Get("/users", middleware.AuthMiddleware(), userHandler.ListUsers)
	api.Post("/events", middleware.AuthMiddleware(), eventHandler.CreateEvent)
	api.Put("/events/:id", middleware.AuthMiddleware(), eventHandler.UpdateEvent)
	api.Delete("/events/:id", middleware.AuthMiddleware(), eventHandler.DeleteEvent)

	zapLogger.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
