// Package anthropic provides an LLM service adapter using Anthropic API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finsight-cli/internal/logger"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-3-5-sonnet-latest"
	DefaultTimeout   = 120 * time.Second
	DefaultMaxTokens = 4096

	// ProactiveRate is the proactive throttle rate in requests/second.
	// Deliberately gentle; an interactive chat never needs more.
	ProactiveRate = 0.5

	// AnthropicVersion is the required API version header.
	anthropicVersion = "2023-06-01"
)

// Config holds configuration for the Anthropic LLM service.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.anthropic.com).
	BaseURL string

	// Model is the LLM model to use (default: claude-3-5-sonnet-latest).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// MaxTokens caps the answer length (default: 4096).
	MaxTokens int

	// Retry overrides the retry policy. Zero value uses DefaultRetryPolicy.
	Retry RetryPolicy
}

// LLMService provides question answering over document context using
// the Anthropic API.
type LLMService struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	retry       RetryPolicy
	limiter     *rate.Limiter
	promptStore driven.PromptStore
}

// messagesRequest is the Anthropic /v1/messages request format.
type messagesRequest struct {
	Model     string            `json:"model"`
	Messages  []messagesMessage `json:"messages"`
	MaxTokens int               `json:"max_tokens"`
	System    string            `json:"system,omitempty"`
}

// messagesMessage is the Anthropic message format.
type messagesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the Anthropic /v1/messages response format.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewLLMService creates a new Anthropic LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryPolicy()
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		retry:     cfg.Retry,
		limiter:   rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}, nil
}

// defaultAnalystPrompt is the fallback system prompt when no PromptStore
// is configured.
const defaultAnalystPrompt = `You are a financial analyst assistant. Answer questions using ONLY the
financial statement extracts provided below. Quote figures exactly as they
appear, name the document each figure comes from, and say plainly when the
documents do not contain the answer. Do not speculate beyond the documents.`

// Ask sends a question with the assembled document context and prior
// history, returning the model's answer.
//
// Rate-limit and overload responses are retried under the configured
// policy before surfacing domain.ErrRateLimited. Oversized requests
// surface immediately as domain.ErrContextTooLong; retrying cannot
// shrink them.
func (s *LLMService) Ask(ctx context.Context, question, documentContext string, history []domain.Message) (string, error) {
	system := s.loadPrompt(driven.PromptAnalystSystem, defaultAnalystPrompt)
	if documentContext != "" {
		system = system + "\n\n" + documentContext
	}

	apiMessages := make([]messagesMessage, 0, len(history)+1)
	for _, msg := range history {
		if msg.Role != domain.RoleUser && msg.Role != domain.RoleAssistant {
			continue
		}
		apiMessages = append(apiMessages, messagesMessage{Role: msg.Role, Content: msg.Content})
	}
	apiMessages = append(apiMessages, messagesMessage{Role: domain.RoleUser, Content: question})

	reqBody := messagesRequest{
		Model:     s.model,
		Messages:  apiMessages,
		MaxTokens: s.maxTokens,
		System:    system,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var answer string
	err = s.retry.Do(ctx, func(attempt int) error {
		if attempt > 1 {
			logger.Debug("anthropic: retrying request, attempt %d", attempt)
		}
		result, sendErr := s.sendMessages(ctx, jsonBody)
		if sendErr != nil {
			return sendErr
		}
		answer = result
		return nil
	})
	return answer, err
}

// sendMessages performs one /v1/messages round trip.
func (s *LLMService) sendMessages(ctx context.Context, jsonBody []byte) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/v1/messages",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if err := classifyFailure(resp.StatusCode, &msgResp, body); err != nil {
		return "", err
	}

	if len(msgResp.Content) == 0 {
		return "", fmt.Errorf("anthropic: no response content returned")
	}

	// Concatenate all text content blocks
	var result strings.Builder
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			result.WriteString(block.Text)
		}
	}
	return result.String(), nil
}

// classifyFailure maps API failures onto domain errors so callers can
// distinguish retryable and terminal conditions.
func classifyFailure(status int, msgResp *messagesResponse, body []byte) error {
	errType, errMsg := "", ""
	if msgResp.Error != nil {
		errType = msgResp.Error.Type
		errMsg = msgResp.Error.Message
	}

	switch {
	case status == http.StatusTooManyRequests || errType == "rate_limit_error":
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, errMsg)
	case status == 529 || errType == "overloaded_error":
		// Overload behaves like a rate limit: transient, worth retrying.
		return fmt.Errorf("%w: overloaded", domain.ErrRateLimited)
	case status == http.StatusBadRequest && strings.Contains(errMsg, "too long"):
		return fmt.Errorf("%w: %s", domain.ErrContextTooLong, errMsg)
	case errType != "":
		return fmt.Errorf("anthropic error: %s", errMsg)
	case status != http.StatusOK:
		return fmt.Errorf("anthropic error (status %d): %s", status, string(body))
	}
	return nil
}

// loadPrompt loads a prompt from the store, falling back to the default
// if unavailable.
func (s *LLMService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	return prompt
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *LLMService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ping validates the service is reachable by checking the /v1/models endpoint.
// This is a lightweight check that validates the API key without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("anthropic: failed to create ping request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("anthropic: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("anthropic: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("anthropic: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
