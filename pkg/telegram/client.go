package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ibumus/warung-backend/pkg/logger"
)

var (
	// ErrNotConfigured is returned when bot token or chat id is missing.
	// Callers treat delivery as best-effort, so this is logged, not fatal.
	ErrNotConfigured = errors.New("telegram credentials not set")

	ErrSendFailed = errors.New("telegram send failed")
)

// Config holds the bot credentials read from the environment.
type Config struct {
	BotToken string
	ChatID   string
	BaseURL  string // defaults to the public Bot API
}

// Enabled reports whether both credentials are present.
func (c *Config) Enabled() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// Client posts messages to a Telegram chat through the Bot API.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a Telegram client. A client with missing credentials is
// still usable; SendMessage returns ErrNotConfigured instead of crashing.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.telegram.org"
	}
	if !config.Enabled() {
		logger.Error("Telegram notifier disabled: credentials not set", ErrNotConfigured)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether the client has credentials to deliver messages.
func (c *Client) Enabled() bool {
	return c.config.Enabled()
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// SendMessage delivers one Markdown-formatted message to the configured
// chat. A single attempt, no retry.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if !c.config.Enabled() {
		return ErrNotConfigured
	}

	payload := sendMessageRequest{
		ChatID:    c.config.ChatID,
		Text:      text,
		ParseMode: "Markdown",
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.config.BaseURL, c.config.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp sendMessageResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("%w: status %d, body %s", ErrSendFailed, resp.StatusCode, string(body))
	}
	if !apiResp.OK {
		return fmt.Errorf("%w: %s", ErrSendFailed, apiResp.Description)
	}

	return nil
}
