package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"talent-service/internal/config"
	"talent-service/internal/database/mongo"
	"talent-service/internal/database/redis"
	"talent-service/internal/event"
	"talent-service/internal/handlers"
	"talent-service/internal/middleware"
	"talent-service/internal/repository"
	"talent-service/internal/search"
	"talent-service/internal/service"
	"talent-service/pkg/discovery"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/talent", "log", "talent_service")
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.ServiceConfig

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"*"},
	}))

	app.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Talent Service is healthy")
	})

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(mongo.Mongo_Database)
	userRepo := repository.NewUserRepository(mongo.Mongo_Database)

	// Create database indexes, including the composite text index the
	// ranked search stage depends on
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := profileRepo.CreateIndexes(ctx); err != nil {
		log.Printf("Warning: Failed to create profile indexes: %v", err)
	}
	if err := userRepo.CreateIndexes(ctx); err != nil {
		log.Printf("Warning: Failed to create user indexes: %v", err)
	}
	cancel()

	eventPublisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Printf("Warning: Failed to initialize event publisher, events disabled: %v", err)
		eventPublisher = event.NewDisabledPublisher(cfg.RabbitMQ.Exchange)
	}

	sessions := service.NewRedisSessionStore(redis.Redis_Client)
	lexicon := search.NewLexicon()

	// Initialize services
	authService := service.NewAuthService(userRepo, profileRepo, sessions, eventPublisher, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	profileService := service.NewProfileService(profileRepo, userRepo, eventPublisher)
	searchService := service.NewSearchService(profileRepo, userRepo, lexicon)

	// Initialize and register handlers
	auth := middleware.NewAuth(cfg.Auth.JWTSecret, sessions)
	handlers.NewAuthHandler(authService, auth).RegisterRoutes(app)
	handlers.NewProfileHandler(profileService, auth).RegisterRoutes(app)
	handlers.NewSearchHandler(searchService, auth).RegisterRoutes(app)

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := app.Listen(fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if eventPublisher != nil {
		if err := eventPublisher.Close(); err != nil {
			log.Printf("Error closing event publisher: %v", err)
		}
	}

	mongo.DisconnectMongo()

	if discovery.ServiceDiscovery != nil {
		if err := discovery.ServiceDiscovery.Deregister(); err != nil {
			log.Printf("Error deregistering from service discovery: %v", err)
		}
	}

	<-doneChan
	log.Println("Server shutdown complete")
}
