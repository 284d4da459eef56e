package cmd

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/toxiclabs/payment-alerts/internal/telegram"
	"github.com/toxiclabs/payment-alerts/pkg/logger"
)

var (
	notifyMessage string
	notifyChatID  int64
)

// notifyCmd sends a test message through the Telegram worker pool, to
// verify the bot credential and recipient wiring without a real payment.
var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send a test Telegram notification",
	Long:  `Send a test message to the configured recipients (or a single chat with --chat)`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
		lg := logger.LoggerWrapper()

		client := telegram.NewClient(telegram.Config{
			APIBaseURL:  cfg.Telegram.APIBaseURL,
			BotToken:    cfg.Telegram.BotToken,
			Recipients:  cfg.Telegram.Recipients(),
			SendTimeout: cfg.Telegram.SendTimeout,
			MaxWorkers:  cfg.Telegram.MaxWorkers,
			QueueSize:   cfg.Telegram.QueueSize,
		}, lg)

		if notifyChatID != 0 {
			client.NotifyOne(notifyChatID, notifyMessage)
		} else {
			client.NotifyAll(notifyMessage)
		}

		// give the pool a moment to drain before shutting down
		time.Sleep(cfg.Telegram.SendTimeout + time.Second)
		client.Shutdown()
	},
}

func init() {
	notifyCmd.Flags().StringVar(&notifyMessage, "message", "🤖 payment-alerts test notification", "message text to send")
	notifyCmd.Flags().Int64Var(&notifyChatID, "chat", 0, "send only to this chat id")
}
