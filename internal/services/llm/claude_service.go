package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/interfaces"
)

// ClaudeService implements the TextGenerator interface using the Anthropic
// Claude API. Calls are rate limited client-side so a burst of section tasks
// cannot trip API quotas.
type ClaudeService struct {
	config  *common.ClaudeConfig
	logger  arbor.ILogger
	client  anthropic.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// Compile-time assertion
var _ interfaces.TextGenerator = (*ClaudeService)(nil)

// NewClaudeService creates a Claude-backed text generator.
//
// Initialization resolves the API key (config value, ANTHROPIC_API_KEY
// fallback handled by config loading), parses the timeout and rate limit
// durations, and builds the API client.
func NewClaudeService(claudeConfig *common.ClaudeConfig, logger arbor.ILogger) (*ClaudeService, error) {
	if claudeConfig.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set ANTHROPIC_API_KEY, VERDANT_CLAUDE_API_KEY, or claude.api_key in config)")
	}

	if claudeConfig.Model == "" {
		claudeConfig.Model = "claude-sonnet-4-20250514"
	}

	timeout, err := time.ParseDuration(claudeConfig.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", claudeConfig.Timeout, err)
	}

	interval, err := time.ParseDuration(claudeConfig.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit duration '%s': %w", claudeConfig.RateLimit, err)
	}

	client := anthropic.NewClient(
		option.WithAPIKey(claudeConfig.APIKey),
	)

	service := &ClaudeService{
		config:  claudeConfig,
		logger:  logger,
		client:  client,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}

	logger.Debug().
		Str("model", claudeConfig.Model).
		Dur("timeout", timeout).
		Dur("rate_limit", interval).
		Msg("Claude service initialized successfully")

	return service, nil
}

// Complete generates text for a single prompt pair. The call waits for the
// rate limiter, then runs under the configured per-call timeout. No retries
// are performed; a failure here is terminal for the caller's task.
func (s *ClaudeService) Complete(ctx context.Context, systemPrompt, userPrompt string, genParams interfaces.GenerationParams) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("user prompt cannot be empty")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	maxTokens := genParams.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.config.MaxTokens
	}
	temperature := genParams.Temperature
	if temperature <= 0 {
		temperature = s.config.Temperature
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.config.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if temperature > 0 {
		params.Temperature = anthropic.Float(float64(temperature))
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}

	startTime := time.Now()
	resp, err := s.client.Messages.New(timeoutCtx, params)
	if err != nil {
		s.logger.Error().Err(err).Msg("Claude API call failed")
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Claude API")
	}

	s.logger.Debug().
		Int("response_length", response.Len()).
		Dur("duration", time.Since(startTime)).
		Msg("Claude completion succeeded")

	return response.String(), nil
}

// Model returns the configured model identifier for report metadata.
func (s *ClaudeService) Model() string {
	return s.config.Model
}

// HealthCheck exercises the API with a minimal probe under a short timeout.
func (s *ClaudeService) HealthCheck(ctx context.Context) error {
	healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	response, err := s.Complete(healthCtx, "", "ping", interfaces.GenerationParams{MaxTokens: 16})
	if err != nil {
		return fmt.Errorf("Claude health check failed: %w", err)
	}
	if strings.TrimSpace(response) == "" {
		return fmt.Errorf("Claude probe returned empty response")
	}

	s.logger.Debug().Str("model", s.config.Model).Msg("Claude health check passed")
	return nil
}

// Close releases resources. The Claude client needs no explicit cleanup.
func (s *ClaudeService) Close() error {
	s.logger.Debug().Msg("Closing Claude service")
	return nil
}
