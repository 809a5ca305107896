package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/common"
)

func testClaudeConfig() *common.ClaudeConfig {
	return &common.ClaudeConfig{
		APIKey:      "sk-ant-test",
		Model:       "claude-sonnet-4-20250514",
		MaxTokens:   8192,
		Timeout:     "5m",
		RateLimit:   "1s",
		Temperature: 0.3,
	}
}

func TestNewClaudeServiceRequiresAPIKey(t *testing.T) {
	cfg := testClaudeConfig()
	cfg.APIKey = ""

	svc, err := NewClaudeService(cfg, arbor.NewLogger())
	assert.Nil(t, svc)
	assert.ErrorContains(t, err, "API key")
}

func TestNewClaudeServiceRejectsBadDurations(t *testing.T) {
	cfg := testClaudeConfig()
	cfg.Timeout = "five minutes"
	_, err := NewClaudeService(cfg, arbor.NewLogger())
	assert.ErrorContains(t, err, "timeout")

	cfg = testClaudeConfig()
	cfg.RateLimit = "often"
	_, err = NewClaudeService(cfg, arbor.NewLogger())
	assert.ErrorContains(t, err, "rate limit")
}

func TestNewClaudeServiceDefaultsModel(t *testing.T) {
	cfg := testClaudeConfig()
	cfg.Model = ""

	svc, err := NewClaudeService(cfg, arbor.NewLogger())
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", svc.Model())
}
