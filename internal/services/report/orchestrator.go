package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/interfaces"
	"github.com/greenmeansgo/verdant/internal/models"
)

const defaultSectionConcurrency = 5

// orchestrator fans section generation out across a bounded worker set. One
// task per request, at most `limit` external calls in flight at once, and a
// failed call produces a placeholder section instead of aborting siblings.
type orchestrator struct {
	generator interfaces.TextGenerator
	limit     int
	logger    arbor.ILogger
}

func newOrchestrator(generator interfaces.TextGenerator, limit int, logger arbor.ILogger) *orchestrator {
	if limit <= 0 {
		limit = defaultSectionConcurrency
	}
	return &orchestrator{
		generator: generator,
		limit:     limit,
		logger:    logger,
	}
}

// generate runs one generation task per request and blocks until every task
// reaches a terminal state. The result key set always equals the request key
// set: failures are recorded on the section, never dropped.
func (o *orchestrator) generate(ctx context.Context, systemPrompt string, requests []models.SectionRequest, params interfaces.GenerationParams) map[string]models.GeneratedSection {
	results := make(map[string]models.GeneratedSection, len(requests))
	var mu sync.Mutex
	var wg sync.WaitGroup

	sem := make(chan struct{}, o.limit)

	record := func(section models.GeneratedSection) {
		mu.Lock()
		results[section.Key] = section
		mu.Unlock()
	}

	for _, req := range requests {
		wg.Add(1)
		go func(req models.SectionRequest) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				record(failedSection(req.Key, ctx.Err()))
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			text, err := o.generator.Complete(ctx, systemPrompt, req.Prompt, params)
			if err != nil {
				o.logger.Warn().Str("section", req.Key).Err(err).Msg("Section generation failed")
				record(failedSection(req.Key, err))
				return
			}
			o.logger.Debug().Str("section", req.Key).Int("chars", len(text)).Msg("Section generated")
			record(models.GeneratedSection{Key: req.Key, Text: text})
		}(req)
	}

	wg.Wait()
	return results
}

func failedSection(key string, err error) models.GeneratedSection {
	return models.GeneratedSection{
		Key:  key,
		Text: fmt.Sprintf("*This section could not be generated: %v*", err),
		Err:  err.Error(),
	}
}
