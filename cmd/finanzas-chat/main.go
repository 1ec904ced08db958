package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finanzas-chat/internal/api"
	"finanzas-chat/internal/api/handlers"
	"finanzas-chat/internal/repository"
	"finanzas-chat/internal/service"
	"finanzas-chat/pkg/config"
	"finanzas-chat/pkg/logger"

	"go.uber.org/zap"
)

// @title Finanzas Chat API
// @version 1.0
// @description Asistente de gastos por chat: registra gastos escritos en lenguaje natural y los resume por categoría y por día

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Finanzas Chat service",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("provider", cfg.Completion.Provider),
	)

	ctx := context.Background()

	// Initialize storage
	store, closeStore, err := repository.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer closeStore()

	// Initialize completion client
	client, err := service.NewCompletionClient(ctx, &cfg.Completion, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize completion client", zap.Error(err))
	}
	defer client.Close()

	// Initialize services
	classifier := service.NewCategoryClassifier(client, cfg.Completion.Timeout, appLogger)
	responder := service.NewResponseGenerator(client, cfg.Completion.Timeout, cfg.Chat.RecentExpenses, appLogger)
	orchestrator := service.NewOrchestrator(classifier, responder, time.Now, appLogger)

	session, err := service.NewSession(ctx, orchestrator, store, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to start chat session", zap.Error(err))
	}

	reportService := service.NewReportService(session, cfg.Chat.ReportWindowDays, cfg.Chat.Location, time.Now, appLogger)

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(session, appLogger)
	expenseHandler := handlers.NewExpenseHandler(session, cfg.Chat.Location, appLogger)
	reportHandler := handlers.NewReportHandler(reportService, appLogger)

	// Setup router
	app := api.SetupRouter(&cfg.Server, chatHandler, expenseHandler, reportHandler, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
