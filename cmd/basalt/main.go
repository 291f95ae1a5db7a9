package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/basaltlabs/basalt/internal/api"
	"github.com/basaltlabs/basalt/internal/config"
	"github.com/basaltlabs/basalt/internal/db"
	"github.com/basaltlabs/basalt/internal/queue"
	"github.com/basaltlabs/basalt/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/valkey-io/valkey-go"
)

func main() {
	cfg := config.Load()
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	repositories := db.NewRepositories(database)
	if err := services.NewAuthService(repositories.Users).EnsureFirstUser(cfg.FirstUser, cfg.FirstUserPass); err != nil {
		log.Fatalf("first user bootstrap failed: %v", err)
	}

	jobs := buildQueue(cfg)
	defer jobs.Close()

	recompute := services.NewRecomputeService(repositories, cfg.Engine, cfg.Location)
	jobs.SetHandler(recompute.Handle)

	handler := api.NewHandler(database, cfg, jobs)

	app := fiber.New(fiber.Config{
		AppName:               "Basalt",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Basalt listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, cfg.Location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// buildQueue picks the recompute backend. Without a Valkey address jobs run
// in-process; with one they go through a persistent list so a separate
// worker instance can own them.
func buildQueue(cfg *config.Config) queue.HandlerQueue {
	if cfg.ValkeyAddr == "" {
		return queue.NewImmediateQueue()
	}

	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{cfg.ValkeyAddr}})
	if err != nil {
		log.Printf("valkey client init failed, falling back to in-process queue: %v", err)
		return queue.NewImmediateQueue()
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		log.Printf("valkey ping failed, falling back to in-process queue: %v", err)
		client.Close()
		return queue.NewImmediateQueue()
	}

	log.Printf("recompute queue backed by valkey at %s", cfg.ValkeyAddr)
	return queue.NewValkeyQueue(client, "")
}
