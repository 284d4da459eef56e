package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Telegram      TelegramConfig      `mapstructure:"telegram" validate:"required"`
	Webhook       WebhookConfig       `mapstructure:"webhook"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Path         string `mapstructure:"path" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type TelegramConfig struct {
	BotToken     string        `mapstructure:"bot_token" validate:"required"`
	APIBaseURL   string        `mapstructure:"api_base_url"`
	AdminChatIDs []int64       `mapstructure:"admin_chat_ids" validate:"required,min=1"`
	GroupChatID  int64         `mapstructure:"group_chat_id" validate:"required"`
	SendTimeout  time.Duration `mapstructure:"send_timeout"`
	MaxWorkers   int           `mapstructure:"max_workers"`
	QueueSize    int           `mapstructure:"queue_size"`
}

type WebhookConfig struct {
	// Secret is the shared signing secret for incoming gateway webhooks.
	// When empty, signature verification is skipped (local testing only).
	Secret string `mapstructure:"secret"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config purely from environment variables,
// mirroring the legacy deployment where every setting was an env var.
func LoadConfigFromEnv() *Config {
	admins := make([]int64, 0, 2)
	for _, key := range []string{"ADMIN1", "ADMIN2"} {
		if id := getEnvAsInt64(key, 0); id != 0 {
			admins = append(admins, id)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:              int(getEnvAsInt64("PORT", 5000)),
			ReadHeaderTimeout: getEnvAsDuration("READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Path:         getEnv("DB_PATH", "payments.db"),
			MaxOpenConns: int(getEnvAsInt64("DB_MAX_OPEN_CONNS", 1)),
		},
		Telegram: TelegramConfig{
			BotToken:     getEnv("BOT_TOKEN", ""),
			APIBaseURL:   getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
			AdminChatIDs: admins,
			GroupChatID:  getEnvAsInt64("GROUP_ID", 0),
			SendTimeout:  getEnvAsDuration("TELEGRAM_SEND_TIMEOUT", 10*time.Second),
			MaxWorkers:   int(getEnvAsInt64("TELEGRAM_MAX_WORKERS", 4)),
			QueueSize:    int(getEnvAsInt64("TELEGRAM_QUEUE_SIZE", 64)),
		},
		Webhook: WebhookConfig{
			Secret: getEnv("WEBHOOK_SECRET", ""),
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: getEnv("METRICS_ENABLED", "false") == "true",
				Path:    getEnv("METRICS_PATH", "/metrics"),
			},
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Telegram.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("telegram config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (c *TelegramConfig) Validate() error {
	if c.BotToken == "" {
		return errors.New("bot_token is required")
	}
	if len(c.AdminChatIDs) == 0 {
		return errors.New("at least one admin chat id is required")
	}
	if c.GroupChatID == 0 {
		return errors.New("group_chat_id is required")
	}
	if c.APIBaseURL != "" {
		if _, err := url.Parse(c.APIBaseURL); err != nil {
			return fmt.Errorf("invalid api_base_url: %w", err)
		}
	}
	return nil
}

// Recipients returns every chat that receives payment alerts: all admins
// plus the group chat.
func (c *TelegramConfig) Recipients() []int64 {
	out := make([]int64, 0, len(c.AdminChatIDs)+1)
	out = append(out, c.AdminChatIDs...)
	out = append(out, c.GroupChatID)
	return out
}

// IsAdmin reports whether chatID is in the administrator allow-list.
func (c *TelegramConfig) IsAdmin(chatID int64) bool {
	for _, id := range c.AdminChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}
