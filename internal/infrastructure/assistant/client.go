package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	chatUsecases "parlor/internal/application/chat/usecases"
	"parlor/internal/shared/config"
	"parlor/internal/shared/logger"
)

const (
	// Maximum response body size for the completion API (1MB)
	maxResponseSize = 1 << 20

	defaultTimeout = 30 * time.Second
)

// completionRequest is the wire format sent to the generative backend.
type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	User     string    `json:"user,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionResponse is the subset of the backend response the scheduler
// cares about: the text and the token usage that feeds session accounting.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int64 `json:"total_tokens"`
	} `json:"usage"`
}

// Client calls an OpenAI-compatible completion endpoint. The backend is
// opaque to the rest of the system; only reply text and usage metadata
// leave this package.
type Client struct {
	cfg        *config.AssistantConfig
	httpClient *http.Client
	logger     logger.Interface
}

func NewClient(cfg *config.AssistantConfig, log logger.Interface) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

var _ chatUsecases.Responder = (*Client)(nil)

func (c *Client) Reply(ctx context.Context, req chatUsecases.ReplyRequest) (*chatUsecases.ReplyResult, error) {
	payload := completionRequest{
		Model: c.cfg.Model,
		User:  req.SessionSID,
		Messages: []message{
			{Role: "system", Content: buildSystemPrompt(req.Context)},
			{Role: "user", Content: req.Message},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warnw("completion backend returned non-200",
			"status", resp.StatusCode,
		)
		return nil, fmt.Errorf("completion backend returned status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read completion response: %w", err)
	}

	var parsed completionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("completion response has no choices")
	}

	tokens := parsed.Usage.TotalTokens
	return &chatUsecases.ReplyResult{
		Text:       parsed.Choices[0].Message.Content,
		TokensUsed: tokens,
		Cost:       float64(tokens) / 1000 * c.cfg.CostPer1KTok,
		LatencyMS:  time.Since(started).Milliseconds(),
	}, nil
}

func buildSystemPrompt(snippets []chatUsecases.Snippet) string {
	var b strings.Builder
	b.WriteString("You are a helpful support assistant. Answer concisely and only from the provided knowledge when it is relevant.")
	if len(snippets) == 0 {
		return b.String()
	}
	b.WriteString("\n\nKnowledge:\n")
	for _, s := range snippets {
		fmt.Fprintf(&b, "## %s\n%s\n", s.Title, s.Excerpt)
	}
	return b.String()
}
