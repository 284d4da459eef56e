package bot

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/toxiclabs/payment-alerts/internal"
	"github.com/toxiclabs/payment-alerts/internal/payment"
	"github.com/toxiclabs/payment-alerts/internal/transport"
)

const welcomeMessage = `🤖 <b>Welcome to ToxicLabs Payment Alerts Bot</b>

Commands:
💰 /balance → Show total collection

This bot sends real-time Razorpay alerts.`

const balanceUnavailableMessage = "⚠️ Balance is unavailable right now, try again later."

// Replier sends a single command reply back to the chat that asked.
type Replier interface {
	NotifyOne(chatID int64, text string)
}

// Handler processes inbound bot updates. The platform expects 200 "ok" for
// every update regardless of business outcome, so nothing here ever
// surfaces an error status.
type Handler struct {
	*transport.BaseHandler
	paymentService payment.ServiceAPI
	replier        Replier
	telegramCfg    internal.TelegramConfig
}

func NewHandler(baseHandler *transport.BaseHandler, paymentService payment.ServiceAPI, replier Replier, telegramCfg internal.TelegramConfig) *Handler {
	return &Handler{
		BaseHandler:    baseHandler,
		paymentService: paymentService,
		replier:        replier,
		telegramCfg:    telegramCfg,
	}
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	defer h.WriteText(w, http.StatusOK, "ok")

	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.Logger.Warn("undecodable bot update", "error", err)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text

	if text == "/start" {
		h.replier.NotifyOne(chatID, welcomeMessage)
		return
	}

	// unauthorized senders are silently ignored beyond /start
	if !h.telegramCfg.IsAdmin(chatID) {
		h.Logger.Info("ignoring command from unauthorized chat",
			"chat_id", chatID,
			"command", text)
		return
	}

	switch text {
	case "/balance":
		balance, err := h.paymentService.TotalBalance()
		if err != nil {
			h.Logger.Error("failed to fetch balance for command", "error", err, "chat_id", chatID)
			h.replier.NotifyOne(chatID, balanceUnavailableMessage)
			return
		}
		h.replier.NotifyOne(chatID, fmt.Sprintf("💰 <b>Total Balance:</b> ₹%s", balance.String()))
	default:
		h.Logger.Debug("unknown command", "chat_id", chatID, "command", text)
	}
}
