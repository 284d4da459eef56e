package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/toxiclabs/payment-alerts/internal"
)

var sendTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "telegram_send_total",
	Help: "Outbound sendMessage calls by result",
}, []string{"result"})

// SendJob is one sendMessage call to one chat.
type SendJob struct {
	ChatID int64
	Text   string
}

type Worker struct {
	ID         int
	WorkerPool chan chan SendJob
	JobChannel chan SendJob
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan SendJob, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan SendJob),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(SendJob)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker sending message", "worker_id", w.ID, "chat_id", job.ChatID)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

// Client posts alert messages to the Telegram Bot API. Sends are queued to
// a small worker pool so a slow Bot API call never blocks webhook handling,
// and one failed recipient never stops delivery to the others.
type Client struct {
	httpClient  *http.Client
	apiBaseURL  string
	botToken    string
	recipients  []int64
	sendTimeout time.Duration
	logger      *slog.Logger

	jobQueue   chan SendJob
	workerPool chan chan SendJob
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

type Config struct {
	APIBaseURL  string
	BotToken    string
	Recipients  []int64
	SendTimeout time.Duration
	MaxWorkers  int
	QueueSize   int
}

func NewClient(config Config, logger *slog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}

	apiBaseURL := config.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = "https://api.telegram.org"
	}

	sendTimeout := config.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}

	client := &Client{
		httpClient:  &http.Client{Timeout: sendTimeout},
		apiBaseURL:  apiBaseURL,
		botToken:    config.BotToken,
		recipients:  config.Recipients,
		sendTimeout: sendTimeout,
		logger:      logger,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan SendJob, queueSize),
		workerPool: make(chan chan SendJob, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	client.startWorkerPool()

	return client
}

func (c *Client) startWorkerPool() {
	c.once.Do(func() {
		for i := 0; i < c.maxWorkers; i++ {
			worker := NewWorker(i, c.workerPool, c.logger)
			worker.Start(c.ctx, &c.wg, c.processSendJob)
		}

		go c.dispatch()

		c.logger.Info("telegram worker pool started",
			"max_workers", c.maxWorkers,
			"queue_size", cap(c.jobQueue))
	})
}

func (c *Client) dispatch() {
	c.wg.Add(1)
	defer c.wg.Done()

	for {
		select {
		case job := <-c.jobQueue:
			select {
			case jobChannel := <-c.workerPool:
				select {
				case jobChannel <- job:
				case <-c.ctx.Done():
					c.logger.Info("dispatcher shutting down")
					return
				}
			case <-c.ctx.Done():
				c.logger.Info("dispatcher shutting down")
				return
			}
		case <-c.ctx.Done():
			c.logger.Info("dispatcher shutting down")
			return
		}
	}
}

func (c *Client) Shutdown() {
	c.logger.Info("shutting down telegram client")
	c.cancel()
	c.wg.Wait()
	c.logger.Info("telegram client shutdown complete")
}

// NotifyAll queues the text for every configured recipient. Best-effort: a
// full queue drops the send with a log line rather than blocking.
func (c *Client) NotifyAll(text string) {
	for _, chatID := range c.recipients {
		c.enqueue(SendJob{ChatID: chatID, Text: text})
	}
}

// NotifyOne queues the text for a single chat, used for command replies.
func (c *Client) NotifyOne(chatID int64, text string) {
	c.enqueue(SendJob{ChatID: chatID, Text: text})
}

func (c *Client) enqueue(job SendJob) {
	select {
	case c.jobQueue <- job:
		c.logger.Debug("send job queued",
			"chat_id", job.ChatID,
			"queue_length", len(c.jobQueue))
	default:
		sendTotal.WithLabelValues("dropped").Inc()
		c.logger.Warn("send queue full, dropping message",
			"chat_id", job.ChatID,
			"queue_capacity", cap(c.jobQueue))
	}
}

// processSendJob delivers one queued message. Failures are wrapped in the
// notification-failure taxonomy for the logs but never propagate: alerting
// stays best-effort.
func (c *Client) processSendJob(job SendJob) {
	if err := c.sendMessage(job); err != nil {
		sendTotal.WithLabelValues("error").Inc()
		appErr := internal.NewExternalError("telegram sendMessage failed", internal.ErrCodeNotificationFailure, err)
		c.logger.Error("failed to deliver message",
			"error", appErr,
			"code", appErr.Code,
			"chat_id", job.ChatID)
		return
	}
	sendTotal.WithLabelValues("ok").Inc()
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

func (c *Client) sendMessage(job SendJob) error {
	payload := sendMessageRequest{
		ChatID:    job.ChatID,
		Text:      job.Text,
		ParseMode: "HTML",
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	ctx, cancel := internal.WithTimeout(c.ctx, c.sendTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBaseURL, c.botToken)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("request creation error: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("telegram API error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
