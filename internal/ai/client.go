package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/utils"
)

const (
	defaultTimeout   = 60 * time.Second
	streamingTimeout = 300 * time.Second
)

// ErrMissingCredentials is returned before any network call when no gateway
// API key is configured for this process.
var ErrMissingCredentials = errors.New("ai gateway API key is not configured")

// StatusError is a non-2xx reply from the completion gateway. Handlers map
// 429 and 402 onto the client response 1:1 and collapse everything else to a
// generic gateway error.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ai gateway HTTP %d: %s", e.StatusCode, e.Body)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// Gateway is the completion-gateway surface the relay services depend on.
type Gateway interface {
	// ChatStream sends a streaming completion request and returns the raw
	// SSE body. The caller owns the ReadCloser and must close it.
	ChatStream(ctx context.Context, req ChatRequest) (io.ReadCloser, error)
	// Complete sends a non-streaming request and returns the first choice's
	// message content.
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

type Client struct {
	log        *logger.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewClient(log *logger.Logger) *Client {
	clientLog := log.With("service", "AIGateway")
	baseURL := strings.TrimRight(utils.GetEnv("AI_GATEWAY_URL", "https://openrouter.ai/api/v1", log), "/")
	apiKey := utils.GetEnv("AI_GATEWAY_KEY", "", log)
	if apiKey == "" {
		clientLog.Warn("AI_GATEWAY_KEY not set; relay requests will fail with a configuration error")
	}
	model := utils.GetEnv("AI_MODEL", "deepseek/deepseek-chat", log)
	return &Client{
		log:        clientLog,
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

// NewClientWithBaseURL builds a client against a custom gateway (for testing).
func NewClientWithBaseURL(log *logger.Logger, baseURL, apiKey, model string) *Client {
	return &Client{
		log:        log.With("service", "AIGateway"),
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

func (c *Client) ChatStream(ctx context.Context, req ChatRequest) (io.ReadCloser, error) {
	req.Stream = true
	return c.do(ctx, req, streamingTimeout)
}

func (c *Client) Complete(ctx context.Context, req ChatRequest) (string, error) {
	req.Stream = false
	rc, err := c.do(ctx, req, defaultTimeout)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(rc).Decode(&out); err != nil {
		c.log.Warn("failed to decode completion response", "error", err)
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}
	return out.Choices[0].Message.Content, nil
}

func (c *Client) do(ctx context.Context, req ChatRequest, timeout time.Duration) (io.ReadCloser, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredentials
	}
	if req.Model == "" {
		req.Model = c.model
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling chat request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("creating gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		cancel()
		c.log.Warn("failed to call completion gateway", "error", err)
		return nil, fmt.Errorf("executing gateway request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		c.log.Warn("completion gateway responded with non-2xx", "statusCode", resp.StatusCode, "body", string(respBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	// Wrap the body so the timeout context is released when the caller closes it.
	return &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
