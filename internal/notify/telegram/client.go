package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"quoterelay/internal/notify"
)

// baseURL is the default Telegram Bot API endpoint.
const baseURL = "https://api.telegram.org"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=telegram_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends messages through the Telegram Bot API.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
}

// ClientOption is a configuration option for the Telegram client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Telegram Bot API client. The token is embedded
// in the request path per the Bot API convention.
func NewClient(token string, options ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram: empty bot token")
	}
	var client = &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: http.DefaultClient,
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// Name identifies this notifier in logs.
func (c *Client) Name() string { return "Telegram" }

// sendMessageRequest matches the Bot API sendMessage payload.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// sendMessageResponse is the envelope the Bot API wraps every reply in.
type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Send delivers one message to a chat.
func (c *Client) Send(ctx context.Context, msg notify.Message) error {
	payload := sendMessageRequest{
		ChatID: msg.ChatID,
		Text:   msg.Text,
	}
	if msg.Markdown {
		payload.ParseMode = "Markdown"
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return fmt.Errorf("unexpected status code %d: %s", res.StatusCode, string(b))
	}

	var api sendMessageResponse
	if err := json.NewDecoder(res.Body).Decode(&api); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if !api.OK {
		return fmt.Errorf("bot api error: code=%d desc=%q", api.ErrorCode, api.Description)
	}
	return nil
}
