package greeter

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Fallback is returned whenever the message-generation service cannot be
// reached or answers with anything but a well-formed 200.
const Fallback = "Welcome to Elysian Softech!"

const defaultTimeout = 10 * time.Second

// Greeter produces a welcome message for a prompt. Implementations never
// fail; degraded ones answer with Fallback.
type Greeter interface {
	Generate(ctx context.Context, prompt string) string
}

// Client calls the external message-generation service.
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:     url,
		timeout: timeout,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Message string `json:"message"`
}

// Generate asks the collaborator for a message. Timeouts, transport errors,
// non-200 statuses and malformed bodies all degrade to Fallback; the caller
// never sees a failure.
func (c *Client) Generate(ctx context.Context, prompt string) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return Fallback
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Fallback
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "Message service unreachable, using fallback", "error", err)
		return Fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "Message service returned non-200, using fallback", "status", resp.StatusCode)
		return Fallback
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil || decoded.Message == "" {
		return Fallback
	}

	return decoded.Message
}
