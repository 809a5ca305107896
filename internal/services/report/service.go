package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/interfaces"
	"github.com/greenmeansgo/verdant/internal/models"
)

// Service assembles narrative reports from stored assessments. The pipeline
// is validate, format, generate, parse, assemble, store; partial section
// failure still assembles, only total failure aborts.
type Service struct {
	config    *common.Config
	storage   interfaces.StorageManager
	generator interfaces.TextGenerator
	orch      *orchestrator
	logger    arbor.ILogger
}

var _ interfaces.ReportService = (*Service)(nil)

func NewService(config *common.Config, storage interfaces.StorageManager, generator interfaces.TextGenerator, logger arbor.ILogger) *Service {
	return &Service{
		config:    config,
		storage:   storage,
		generator: generator,
		orch:      newOrchestrator(generator, config.Reports.SectionConcurrency, logger),
		logger:    logger,
	}
}

func (s *Service) CheckCompleteness(ctx context.Context, assessmentID string) (*models.CompletenessVerdict, error) {
	rec, err := s.storage.AssessmentStorage().GetAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	verdict := Validate(rec)
	return &verdict, nil
}

func (s *Service) Generate(ctx context.Context, assessmentID string, reportType models.ReportType) (*models.Report, error) {
	if !reportType.Valid() {
		return nil, fmt.Errorf("unknown report type %q", reportType)
	}

	rec, err := s.storage.AssessmentStorage().GetAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	verdict := Validate(rec)
	if !verdict.IsComplete {
		return nil, fmt.Errorf("%w: missing %s", interfaces.ErrIncompleteAssessment, strings.Join(verdict.Missing, ", "))
	}

	s.logger.Info().
		Str("assessment_id", assessmentID).
		Str("report_type", string(reportType)).
		Str("quality_level", string(verdict.QualityLevel)).
		Msg("Generating report")

	// The context brief is formatted once and shared by every section task.
	brief := FormatContext(rec)

	plan, err := planFor(reportType, brief, s.config.Claude.MaxTokens)
	if err != nil {
		return nil, err
	}

	generated := s.orch.generate(ctx, plan.systemPrompt, plan.requests, plan.params)

	sections := make(map[string]string, len(plan.requests))
	keys := make([]string, 0, len(plan.requests))
	failed := 0
	for _, req := range plan.requests {
		section := generated[req.Key]
		keys = append(keys, req.Key)
		if section.Err != "" {
			failed++
			sections[req.Key] = section.Text
			continue
		}
		sections[req.Key] = s.sectionText(plan, req.Key, section.Text)
	}

	if failed == len(plan.requests) {
		return nil, fmt.Errorf("%w: %d sections requested", interfaces.ErrAllSectionsFailed, len(plan.requests))
	}

	rpt := &models.Report{
		ID:           common.NewReportID(string(reportType), assessmentID),
		AssessmentID: assessmentID,
		ReportType:   reportType,
		CompanyName:  rec.CompanyName,
		Country:      rec.Country,
		GeneratedAt:  time.Now().UTC(),
		SectionKeys:  keys,
		Sections:     sections,
		Metadata: models.ReportMetadata{
			ModelUsed:         s.generator.Model(),
			QualityLevel:      verdict.QualityLevel,
			Warnings:          verdict.Warnings,
			SectionsGenerated: len(plan.requests) - failed,
			SectionsFailed:    failed,
		},
	}

	if err := s.storage.ReportStorage().StoreReport(ctx, rpt); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	s.logger.Info().
		Str("report_id", rpt.ID).
		Int("sections", len(keys)).
		Int("failed", failed).
		Msg("Report assembled")

	return rpt, nil
}

// sectionText normalizes one generated section. Structured report types run
// the header parser over each section's text so stray preamble before the
// recognized header is dropped; farmer reports keep the text as produced.
func (s *Service) sectionText(plan generationPlan, key, text string) string {
	if !plan.parse {
		return strings.TrimSpace(text)
	}
	parsed := ParseSections(text)
	if v, ok := parsed[key]; ok {
		return v
	}
	// The generator used an unexpected or missing header. Keep the raw
	// text so the key slot is never empty.
	if v, ok := parsed[SectionFullReport]; ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(text)
}
