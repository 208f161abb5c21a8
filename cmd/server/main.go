package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"recap/backend/internal/config"
	"recap/backend/internal/db"
	"recap/backend/internal/handler"
	transport "recap/backend/internal/http"
	"recap/backend/internal/logger"
	"recap/backend/internal/network"
	"recap/backend/internal/repository"
	"recap/backend/internal/service"
	"recap/backend/internal/service/ai"
	"recap/backend/internal/snowflake"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if cfg.DBPath == "" || cfg.DBPath == "." {
		log.Fatal("database path is required")
	}

	if err := snowflake.Init(1); err != nil {
		log.Fatalf("init snowflake: %v", err)
	}

	// The database is opened lazily on first use and shared afterwards.
	conn := func() (*sql.DB, error) { return db.Shared(cfg.DBPath) }

	summaryRepo := repository.NewSummaryRepository(conn)

	clients := network.NewClientFactory(cfg.ProxyURL)

	limiter := ai.NewRateLimiter(cfg.AI.RateLimit)
	generationService := service.NewGenerationService(cfg.AI, limiter, clients)
	summaryService := service.NewSummaryService(summaryRepo)
	workflowService := service.NewWorkflowService(generationService, summaryService)
	emailService := service.NewEmailService(cfg.SMTP)
	transcriptService := service.NewTranscriptService(clients)

	generateHandler := handler.NewGenerateHandler(generationService, workflowService)
	summaryHandler := handler.NewSummaryHandler(summaryService)
	emailHandler := handler.NewEmailHandler(emailService)
	transcriptHandler := handler.NewTranscriptHandler(transcriptService)

	router := transport.NewRouter(generateHandler, summaryHandler, emailHandler, transcriptHandler)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down", "module", "main", "action", "shutdown", "resource", "server", "result", "ok")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := router.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
		db.Close()
		os.Exit(0)
	}()

	logger.Info("starting server", "module", "main", "action", "start", "resource", "server", "result", "ok", "addr", cfg.Addr)
	if err := router.Start(cfg.Addr); err != nil {
		log.Fatalf("start server: %v", err)
	}
}
