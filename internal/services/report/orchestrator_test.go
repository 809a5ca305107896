package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/interfaces"
	"github.com/greenmeansgo/verdant/internal/models"
)

// fakeGenerator counts concurrent entries into Complete and can fail calls
// whose user prompt contains one of the configured markers.
type fakeGenerator struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	calls       int
	delay       time.Duration
	failMarkers []string
	response    string
}

var _ interfaces.TextGenerator = (*fakeGenerator)(nil)

func (f *fakeGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string, params interfaces.GenerationParams) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.inFlight++
	f.calls++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	for _, marker := range f.failMarkers {
		if strings.Contains(userPrompt, marker) {
			return "", errors.New("simulated generation failure")
		}
	}
	if f.response != "" {
		return f.response, nil
	}
	return "Generated narrative for: " + userPrompt, nil
}

func (f *fakeGenerator) Model() string                         { return "fake-model" }
func (f *fakeGenerator) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeGenerator) Close() error                          { return nil }

func testRequests(n int) []models.SectionRequest {
	reqs := make([]models.SectionRequest, 0, n)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("section_%02d", i)
		reqs = append(reqs, models.SectionRequest{Key: key, Prompt: "prompt for " + key})
	}
	return reqs
}

func TestOrchestratorRespectsConcurrencyLimit(t *testing.T) {
	gen := &fakeGenerator{delay: 10 * time.Millisecond}
	orch := newOrchestrator(gen, 3, arbor.NewLogger())

	results := orch.generate(context.Background(), "", testRequests(20), interfaces.GenerationParams{MaxTokens: 100})

	assert.Len(t, results, 20)
	assert.Equal(t, 20, gen.calls)
	assert.LessOrEqual(t, gen.maxInFlight, 3, "in-flight calls must never exceed the limit")
	assert.Greater(t, gen.maxInFlight, 1, "tasks should actually overlap")
}

func TestOrchestratorKeySetParityUnderFaults(t *testing.T) {
	gen := &fakeGenerator{failMarkers: []string{"section_03", "section_07", "section_11"}}
	orch := newOrchestrator(gen, 5, arbor.NewLogger())

	requests := testRequests(15)
	results := orch.generate(context.Background(), "", requests, interfaces.GenerationParams{})

	assert.Len(t, results, len(requests))
	failed := 0
	for _, req := range requests {
		section, ok := results[req.Key]
		assert.True(t, ok, "key %s must be present", req.Key)
		assert.Equal(t, req.Key, section.Key)
		assert.NotEmpty(t, section.Text, "even failed sections carry placeholder text")
		if section.Err != "" {
			failed++
			assert.Contains(t, section.Text, "could not be generated")
		}
	}
	assert.Equal(t, 3, failed)
}

func TestOrchestratorDefaultLimit(t *testing.T) {
	orch := newOrchestrator(&fakeGenerator{}, 0, arbor.NewLogger())
	assert.Equal(t, defaultSectionConcurrency, orch.limit)
}

func TestOrchestratorCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &fakeGenerator{}
	orch := newOrchestrator(gen, 2, arbor.NewLogger())

	results := orch.generate(ctx, "", testRequests(4), interfaces.GenerationParams{})

	assert.Len(t, results, 4)
	for _, section := range results {
		assert.NotEmpty(t, section.Err)
	}
}
