package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"contactbook/internal/app"
	"contactbook/internal/config"
	"contactbook/internal/services"
	"contactbook/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.GetViper(), ".env")
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	run(cfg, quit)
}

// run serves until quit fires. The HTTP listener only starts once storage is
// available; a storage error is logged and the process idles until stopped.
func run(cfg config.Config, quit <-chan os.Signal) {
	// --- Storage ---
	stores, closeStores, err := openStores(cfg)
	if err != nil {
		log.Printf("Error connecting to storage, HTTP server not started: %v", err)
		<-quit
		log.Println("Shutting down")
		return
	}
	defer closeStores()

	// --- Contact events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Contact events disabled: %v", err)
		} else {
			defer mqClient.Close()
			publisher = app.NewEventPublisher(mqClient)
			if err := mqClient.Consume(app.LogContactEvent); err != nil {
				log.Printf("Failed to start contact event consumer: %v", err)
			}
		}
	}

	fiberApp := app.NewApp(cfg, stores, publisher)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	go func() {
		if err := fiberApp.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := fiberApp.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openStores connects the configured storage backend.
func openStores(cfg config.Config) (app.Stores, func(), error) {
	if cfg.DBDriver == config.DriverMemory {
		log.Println("Using in-memory storage; data is lost on exit")
		return app.NewMemoryStores(), func() {}, nil
	}

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		return app.Stores{}, nil, err
	}
	log.Printf("Connected to %s database", cfg.DBDriver)

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return app.NewGORMStores(db), closeDB, nil
}
