package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/convobudget/convobudget/pkg/budget"
	"github.com/convobudget/convobudget/pkg/config"
	"github.com/convobudget/convobudget/pkg/logging"
)

var errOpenAINotConfigured = errors.New("openai summarizer not configured")

type chatCompletionClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// OpenAIOption configures the OpenAI summarizer.
type OpenAIOption func(*OpenAISummarizer)

// WithOpenAIConfigManager injects a custom configuration manager (useful for tests).
func WithOpenAIConfigManager(manager config.Manager) OpenAIOption {
	return func(s *OpenAISummarizer) {
		if manager != nil {
			s.config = manager
		}
	}
}

// WithOpenAILogger injects a custom logger implementation.
func WithOpenAILogger(logger logging.Logger) OpenAIOption {
	return func(s *OpenAISummarizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithChatClient injects a custom Chat Completions client (primarily for tests).
func WithChatClient(chat chatCompletionClient) OpenAIOption {
	return func(s *OpenAISummarizer) {
		if chat != nil {
			s.chatCompletions = chat
		}
	}
}

// OpenAISummarizer condenses older history through OpenAI Chat
// Completions. The API client is built lazily on first use so the
// summarizer can be constructed in unconfigured environments.
type OpenAISummarizer struct {
	mu sync.Mutex

	config config.Manager
	logger logging.Logger

	chatCompletions chatCompletionClient

	initialized bool
	initErr     error
	lastErr     error
}

// NewOpenAISummarizer builds an OpenAI-backed summarizer.
func NewOpenAISummarizer(opts ...OpenAIOption) *OpenAISummarizer {
	s := &OpenAISummarizer{
		config: config.NewConfigManager(),
		logger: logging.NewAPILogger("openai"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize condenses head into a short plain-text summary.
func (s *OpenAISummarizer) Summarize(ctx context.Context, head []budget.Message) (string, error) {
	if err := s.ensureInitialized(); err != nil {
		return "", err
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.resolveModel()),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summaryInstruction),
			openai.UserMessage(renderTranscript(head)),
		},
	}

	resp, err := s.chatCompletions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat completion returned no choices")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", errors.New("openai returned an empty summary")
	}
	return summary, nil
}

// Func adapts the summarizer to the budget.SummarizeFunc hook. A backend
// failure is recorded (see Err) and a degraded placeholder summary is
// returned, so the rollup itself never fails.
func (s *OpenAISummarizer) Func(ctx context.Context) budget.SummarizeFunc {
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
func (s *OpenAISummarizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *OpenAISummarizer) resolveModel() string {
	if model := strings.TrimSpace(s.config.GetModel()); model != "" {
		return model
	}
	return string(shared.ChatModelGPT4oMini)
}

func (s *OpenAISummarizer) ensureInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return s.initErr
	}

	if s.chatCompletions != nil {
		s.initialized = true
		return nil
	}

	apiKey := strings.TrimSpace(s.config.GetStringWithDefault("OPENAI_API_KEY", ""))
	if apiKey == "" {
		s.initialized = true
		s.initErr = fmt.Errorf("%w: please export OPENAI_API_KEY", errOpenAINotConfigured)
		return s.initErr
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL := strings.TrimSpace(s.config.GetStringWithDefault("OPENAI_BASE_URL", "")); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)
	service := client.Chat.Completions
	s.chatCompletions = &service
	s.initialized = true
	return nil
}
