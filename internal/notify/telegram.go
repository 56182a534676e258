package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Minimum spacing between two messages to the same chat, to stay under
// Telegram's ~30 messages/minute per-chat ceiling.
const telegramSendInterval = 2 * time.Second

// TelegramSender delivers messages to a single Telegram chat using the Bot
// API, with HTML parse mode like the original bot.
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time
}

// TelegramOption configures the sender.
type TelegramOption func(*telegramConfig)

type telegramConfig struct {
	endpoint string
	client   tgbotapi.HTTPClient
}

// WithTelegramEndpoint overrides the Bot API endpoint. Tests point this at
// an httptest server.
func WithTelegramEndpoint(endpoint string) TelegramOption {
	return func(c *telegramConfig) { c.endpoint = endpoint }
}

// WithTelegramHTTPClient substitutes the underlying HTTP client.
func WithTelegramHTTPClient(hc tgbotapi.HTTPClient) TelegramOption {
	return func(c *telegramConfig) { c.client = hc }
}

// NewTelegramSender creates a sender bound to one chat. The constructor
// verifies the token by calling getMe, the same way the bot API library's
// own constructor does.
func NewTelegramSender(token string, chatID int64, opts ...TelegramOption) (*TelegramSender, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}

	cfg := telegramConfig{
		endpoint: tgbotapi.APIEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, cfg.endpoint, cfg.client)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram bot: %w", err)
	}

	return &TelegramSender{bot: bot, chatID: chatID}, nil
}

// Send submits one HTML message to the configured chat.
func (s *TelegramSender) Send(ctx context.Context, text string) error {
	if err := s.throttle(ctx); err != nil {
		return Transient(err)
	}

	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := s.bot.Send(msg); err != nil {
		return classifyTelegramError(err)
	}
	return nil
}

// throttle enforces the per-chat send spacing, honoring cancellation.
func (s *TelegramSender) throttle(ctx context.Context) error {
	s.mu.Lock()
	now := time.Now()
	next := s.lastSend.Add(telegramSendInterval)
	wait := next.Sub(now)
	if wait <= 0 {
		s.lastSend = now
	} else {
		// Reserve the next slot so concurrent callers queue up.
		s.lastSend = next
	}
	s.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// classifyTelegramError maps Bot API failures onto the retry taxonomy:
// rate limits and server errors are transient, the remaining 4xx responses
// (bad chat id, malformed HTML) will never succeed on retry.
func classifyTelegramError(err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500 {
			return Transient(err)
		}
		return Permanent(err)
	}
	// Transport-level failure: worth retrying.
	return Transient(err)
}
