package rest

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/toxiclabs/payment-alerts/internal"
	"github.com/toxiclabs/payment-alerts/internal/bot"
	"github.com/toxiclabs/payment-alerts/internal/payment"
	"github.com/toxiclabs/payment-alerts/internal/transport"
	"github.com/toxiclabs/payment-alerts/internal/transport/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, webhookHandler *payment.WebhookHandler, botHandler *bot.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(transport.NewBaseHandler(logger)))
	router.Use(middleware.LoggingMiddleware(logger))

	// Liveness and readiness
	router.Get("/", healthHandler.livenessHandler)
	router.Get("/health", healthHandler.healthCheckHandler)

	if cfg.Observability.Metrics.Enabled {
		router.Handle(cfg.Observability.Metrics.Path, promhttp.Handler())
	}

	// Gateway webhook
	if webhookHandler != nil {
		router.Post("/webhook", webhookHandler.HandleGatewayWebhook)
	}

	// Telegram command webhook; the token in the path is what proves the
	// request came from the bot platform.
	if botHandler != nil {
		router.Post(fmt.Sprintf("/bot%s", cfg.Telegram.BotToken), botHandler.HandleUpdate)
	}
}
