package main

import (
	"context"
	"log"

	"paper-analysis-be/internal/bootstrap"
	"paper-analysis-be/internal/config"
	"paper-analysis-be/internal/server"
	"paper-analysis-be/internal/tracer"
	"paper-analysis-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracing
	shutdownTracer := tracer.InitTracer()
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Subscribe to Pipeline Lifecycle Events
	if container.EventSubscriber != nil {
		err := container.EventSubscriber.Subscribe("pipeline.>", "paper-analysis-audit", container.EventAuditService.Handle)
		if err != nil {
			log.Printf("Event audit subscription unavailable: %v", err)
		}
	}

	// 7. Initialize Server
	srv := server.New(cfg, container)

	// 8. Run Server
	log.Fatal(srv.Run())
}
