package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	anthropic_sdk "github.com/anthropics/anthropic-sdk-go"
	anthropic_option "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/convobudget/convobudget/pkg/budget"
	"github.com/convobudget/convobudget/pkg/config"
	"github.com/convobudget/convobudget/pkg/logging"
)

const (
	defaultClaudeModel      = "claude-3-5-sonnet-20241022"
	defaultSummaryMaxTokens = 1024
)

var errAnthropicNotConfigured = errors.New("anthropic summarizer not configured")

type messageClient interface {
	New(ctx context.Context, body anthropic_sdk.MessageNewParams, opts ...anthropic_option.RequestOption) (*anthropic_sdk.Message, error)
}

// AnthropicOption configures the Anthropic summarizer.
type AnthropicOption func(*AnthropicSummarizer)

// WithAnthropicConfigManager injects a custom configuration manager (useful for tests).
func WithAnthropicConfigManager(manager config.Manager) AnthropicOption {
	return func(s *AnthropicSummarizer) {
		if manager != nil {
			s.config = manager
		}
	}
}

// WithAnthropicLogger injects a custom logger implementation.
func WithAnthropicLogger(logger logging.Logger) AnthropicOption {
	return func(s *AnthropicSummarizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMessageClient injects a pre-built message client (primarily for tests).
func WithMessageClient(client messageClient) AnthropicOption {
	return func(s *AnthropicSummarizer) {
		if client != nil {
			s.messages = client
		}
	}
}

// AnthropicSummarizer condenses older history through the Anthropic
// Messages API. The API client is built lazily on first use.
type AnthropicSummarizer struct {
	mu sync.Mutex

	config config.Manager
	logger logging.Logger

	messages messageClient

	initialized bool
	initErr     error
	lastErr     error
}

// NewAnthropicSummarizer builds an Anthropic-backed summarizer.
func NewAnthropicSummarizer(opts ...AnthropicOption) *AnthropicSummarizer {
	s := &AnthropicSummarizer{
		config: config.NewConfigManager(),
		logger: logging.NewAPILogger("anthropic"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize condenses head into a short plain-text summary.
func (s *AnthropicSummarizer) Summarize(ctx context.Context, head []budget.Message) (string, error) {
	if err := s.ensureInitialized(); err != nil {
		return "", err
	}

	params := anthropic_sdk.MessageNewParams{
		Model:     anthropic_sdk.Model(s.resolveModel()),
		MaxTokens: defaultSummaryMaxTokens,
		System: []anthropic_sdk.TextBlockParam{
			{Text: summaryInstruction},
		},
		Messages: []anthropic_sdk.MessageParam{
			anthropic_sdk.NewUserMessage(anthropic_sdk.NewTextBlock(renderTranscript(head))),
		},
	}

	resp, err := s.messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	var textBuilder strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			if textBuilder.Len() > 0 {
				textBuilder.WriteString("\n")
			}
			textBuilder.WriteString(block.Text)
		}
	}

	summary := strings.TrimSpace(textBuilder.String())
	if summary == "" {
		return "", errors.New("anthropic returned an empty summary")
	}
	return summary, nil
}

// Func adapts the summarizer to the budget.SummarizeFunc hook. A backend
// failure is recorded (see Err) and a degraded placeholder summary is
// returned, so the rollup itself never fails.
func (s *AnthropicSummarizer) Func(ctx context.Context) budget.SummarizeFunc {
	return func(head []budget.Message) budget.Summary {
		summary, err := s.Summarize(ctx, head)
		if err != nil {
			s.logger.Warn("summarization failed, using placeholder", "error", err)
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
			return fallbackSummary(head)
		}
		return budget.TextSummary(summary)
	}
}

// Err reports the most recent backend failure seen by Func, if any.
func (s *AnthropicSummarizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *AnthropicSummarizer) resolveModel() string {
	if model := strings.TrimSpace(s.config.GetModel()); model != "" {
		return model
	}
	return defaultClaudeModel
}

func (s *AnthropicSummarizer) ensureInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return s.initErr
	}

	if s.messages != nil {
		s.initialized = true
		return nil
	}

	apiKey := strings.TrimSpace(s.config.GetStringWithDefault("ANTHROPIC_API_KEY", ""))
	if apiKey == "" {
		s.initialized = true
		s.initErr = fmt.Errorf("%w: please export ANTHROPIC_API_KEY", errAnthropicNotConfigured)
		return s.initErr
	}

	opts := []anthropic_option.RequestOption{
		anthropic_option.WithAPIKey(apiKey),
	}
	if baseURL := strings.TrimSpace(s.config.GetStringWithDefault("ANTHROPIC_BASE_URL", "")); baseURL != "" {
		opts = append(opts, anthropic_option.WithBaseURL(baseURL))
	}

	client := anthropic_sdk.NewClient(opts...)
	service := client.Messages
	s.messages = &service
	s.initialized = true
	return nil
}
