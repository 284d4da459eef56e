package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/toxiclabs/payment-alerts/internal"
	"github.com/toxiclabs/payment-alerts/internal/bot"
	paymentmodel "github.com/toxiclabs/payment-alerts/internal/core/datamodel/payment"
	"github.com/toxiclabs/payment-alerts/internal/core/events"
	"github.com/toxiclabs/payment-alerts/internal/payment"
	paymentsqlite "github.com/toxiclabs/payment-alerts/internal/payment/sqlite"
	"github.com/toxiclabs/payment-alerts/internal/telegram"
	"github.com/toxiclabs/payment-alerts/internal/transport"
	"github.com/toxiclabs/payment-alerts/internal/transport/rest"
	"github.com/toxiclabs/payment-alerts/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server that receives gateway webhooks and bot commands`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config         *internal.Config
	DB             *gorm.DB
	Router         *chi.Mux
	TelegramClient *telegram.Client
	Logger         *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		deps.TelegramClient.Shutdown()
		if sqlDB, err := deps.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	telegramClient := telegram.NewClient(telegram.Config{
		APIBaseURL:  config.Telegram.APIBaseURL,
		BotToken:    config.Telegram.BotToken,
		Recipients:  config.Telegram.Recipients(),
		SendTimeout: config.Telegram.SendTimeout,
		MaxWorkers:  config.Telegram.MaxWorkers,
		QueueSize:   config.Telegram.QueueSize,
	}, log)

	eventBus := events.NewEventBus(log)

	alertHandler := payment.NewAlertHandler(telegramClient, log)
	alertHandler.RegisterEventHandlers(eventBus)

	paymentRepo := paymentsqlite.NewPaymentRepository(db)
	paymentService := payment.NewService(paymentRepo, log)

	baseHandler := transport.NewBaseHandler(log)
	webhookHandler := payment.NewWebhookHandler(baseHandler, paymentService, eventBus, config.Webhook.Secret)
	botHandler := bot.NewHandler(baseHandler, paymentService, telegramClient, config.Telegram)

	router := chi.NewRouter()

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql db: %w", err)
	}

	rest.RegisterAllRoutes(router, sqlDB, config, webhookHandler, botHandler, log)

	return &Dependencies{
		Config:         config,
		Logger:         log,
		DB:             db,
		Router:         router,
		TelegramClient: telegramClient,
	}, nil
}

// initDB opens the sqlite record store and makes sure the payments table
// exists; both are safe to repeat on every startup.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql db: %w", err)
	}

	maxOpenConns := cfg.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 1
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(&paymentmodel.Payment{}); err != nil {
		return nil, fmt.Errorf("failed to ensure payments table: %w", err)
	}

	return db, nil
}
