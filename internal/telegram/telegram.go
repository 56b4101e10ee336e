package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ParseModeHTML is the only formatting mode this client sends.
const ParseModeHTML = "HTML"

// DefaultTimeout is used when NewClient is given a zero timeout.
const DefaultTimeout = 10 * time.Second

const apiBaseURL = "https://api.telegram.org/bot"

// Client represents a Telegram Bot API client
type Client struct {
	botToken   string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different Bot API server.
// The URL must end where the token starts, e.g. "https://api.telegram.org/bot".
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a new Telegram client
func NewClient(botToken string, opts ...Option) (*Client, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	c := &Client{
		botToken: botToken,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// sendMessageRequest is the sendMessage payload. ChatID goes out exactly as
// configured; Telegram accepts numeric IDs as strings.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Chat is the subset of the Bot API Chat object we read back
type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title,omitempty"`
	Username string `json:"username,omitempty"`
}

// Message is the subset of the Bot API Message object we read back
type Message struct {
	MessageID int64  `json:"message_id"`
	Date      int64  `json:"date"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

type apiResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description,omitempty"`
	ErrorCode   int      `json:"error_code,omitempty"`
	Result      *Message `json:"result,omitempty"`
}

// SendMessage posts text to chatID with HTML parse mode.
//
// The response body is decoded before the status code is inspected, so a
// non-JSON body is reported as a decode error regardless of status. A non-2xx
// status or "ok": false is reported as an *APIError.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) (*Message, error) {
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	endpoint := c.endpoint("sendMessage")

	payload := sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: ParseModeHTML,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.redact(urlErr.URL)
		}
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var result apiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Description: result.Description}
	}

	if !result.OK {
		return nil, &APIError{StatusCode: resp.StatusCode, Description: result.Description, Logical: true}
	}

	if result.Result == nil {
		return &Message{}, nil
	}
	return result.Result, nil
}

func (c *Client) endpoint(method string) string {
	base := apiBaseURL
	if c.baseURL != "" {
		base = c.baseURL
	}
	return fmt.Sprintf("%s%s/%s", base, c.botToken, method)
}

// redact hides the token in URLs that end up in error messages
func (c *Client) redact(s string) string {
	return strings.ReplaceAll(s, c.botToken, "<redacted>")
}
