// Package app assembles the HTTP application from its stores and services.
package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"contactbook/internal/config"
	"contactbook/internal/handlers"
	"contactbook/internal/middleware"
	"contactbook/internal/models"
	"contactbook/internal/repositories"
	"contactbook/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Stores bundles the repositories the application runs on.
type Stores struct {
	Users    repositories.UserRepository
	Contacts repositories.ContactRepository
}

// OpenDatabase connects to the configured SQL database and migrates the schema.
func OpenDatabase(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("driver %q has no SQL database", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Contact{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// NewGORMStores returns SQL-backed stores sharing db.
func NewGORMStores(db *gorm.DB) Stores {
	return Stores{
		Users:    repositories.NewGORMUserRepository(db),
		Contacts: repositories.NewGORMContactRepository(db),
	}
}

// NewMemoryStores returns process-local stores; their contents die with the process.
func NewMemoryStores() Stores {
	return Stores{
		Users:    repositories.NewMemoryUserRepository(),
		Contacts: repositories.NewMemoryContactRepository(),
	}
}

// NewApp builds the Fiber application. publisher may be nil.
func NewApp(cfg config.Config, stores Stores, publisher services.EventPublisher) *fiber.App {
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(stores.Users, services.NewBcryptHasher(cfg.BcryptCost), tokens)
	contactService := services.NewContactService(stores.Contacts, publisher, cfg.ContactsOwnerScoped)

	authHandler := handlers.NewAuthHandler(authService)
	contactHandler := handlers.NewContactHandler(contactService)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)

	contacts := api.Group("/contacts", middleware.AuthRequired(authService))
	contactHandler.RegisterRoutes(contacts)

	return app
}

// errorHandler renders errors that escape a handler as JSON.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
