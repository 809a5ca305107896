package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/interfaces"
	"github.com/greenmeansgo/verdant/internal/models"
	"github.com/greenmeansgo/verdant/internal/services/render"
)

// GenerateReportRequest is the body of POST /api/reports/generate
type GenerateReportRequest struct {
	AssessmentID string `json:"assessment_id" validate:"required"`
	ReportType   string `json:"report_type"`
}

// ReportHandler handles report generation and export HTTP requests
type ReportHandler struct {
	storage  interfaces.StorageManager
	reports  interfaces.ReportService
	pdf      interfaces.PDFService
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewReportHandler creates a new report handler
func NewReportHandler(storage interfaces.StorageManager, reports interfaces.ReportService, pdf interfaces.PDFService, logger arbor.ILogger) *ReportHandler {
	return &ReportHandler{
		storage:  storage,
		reports:  reports,
		pdf:      pdf,
		validate: validator.New(),
		logger:   logger,
	}
}

// GenerateHandler handles POST /api/reports/generate
func (h *ReportHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	reportType := models.ReportType(req.ReportType)
	if req.ReportType == "" {
		reportType = models.ReportTypeComprehensive
	}
	if !reportType.Valid() {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unknown report type %q", req.ReportType))
		return
	}

	report, err := h.reports.Generate(r.Context(), req.AssessmentID, reportType)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrAssessmentNotFound):
			WriteError(w, http.StatusNotFound, "Assessment not found")
		case errors.Is(err, interfaces.ErrIncompleteAssessment):
			WriteError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, interfaces.ErrAllSectionsFailed):
			h.logger.Error().Err(err).Str("assessment_id", req.AssessmentID).Msg("Report generation failed entirely")
			WriteError(w, http.StatusBadGateway, "Report generation failed for every section")
		default:
			h.logger.Error().Err(err).Str("assessment_id", req.AssessmentID).Msg("Report generation failed")
			WriteError(w, http.StatusInternalServerError, "Report generation failed")
		}
		return
	}

	WriteJSON(w, http.StatusCreated, report)
}

// GetHandler handles GET /api/reports/{id}
func (h *ReportHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Missing report id")
		return
	}

	report, err := h.storage.ReportStorage().GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrReportNotFound) {
			WriteError(w, http.StatusNotFound, "Report not found")
			return
		}
		h.logger.Error().Err(err).Str("report_id", id).Msg("Failed to get report")
		WriteError(w, http.StatusInternalServerError, "Failed to retrieve report")
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// ListHandler handles GET /api/reports
func (h *ReportHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	reports, err := h.storage.ReportStorage().ListReports(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list reports")
		WriteError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(reports),
		"reports": reports,
	})
}

// DeleteHandler handles DELETE /api/reports/{id}
func (h *ReportHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "DELETE") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Missing report id")
		return
	}

	if err := h.storage.ReportStorage().DeleteReport(r.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrReportNotFound) {
			WriteError(w, http.StatusNotFound, "Report not found")
			return
		}
		h.logger.Error().Err(err).Str("report_id", id).Msg("Failed to delete report")
		WriteError(w, http.StatusInternalServerError, "Failed to delete report")
		return
	}

	WriteSuccess(w, "Report deleted")
}

// ExportHandler handles GET /api/reports/{id}/export?format=json|markdown|pdf.
// Export renders a stored report; it never re-triggers generation.
func (h *ReportHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	id := strings.TrimSuffix(path, "/export")
	if id == "" || id == path {
		WriteError(w, http.StatusBadRequest, "Missing report id")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	report, err := h.storage.ReportStorage().GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrReportNotFound) {
			WriteError(w, http.StatusNotFound, "Report not found")
			return
		}
		h.logger.Error().Err(err).Str("report_id", id).Msg("Failed to get report for export")
		WriteError(w, http.StatusInternalServerError, "Failed to retrieve report")
		return
	}

	switch format {
	case "json":
		// Identity passthrough of the stored record.
		WriteJSON(w, http.StatusOK, report)

	case "markdown":
		markdown := render.RenderReportMarkdown(report)
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".md"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(markdown))

	case "pdf":
		assessment, err := h.storage.AssessmentStorage().GetAssessment(r.Context(), report.AssessmentID)
		if err != nil {
			h.logger.Error().Err(err).Str("report_id", id).Msg("Assessment missing for PDF export")
			WriteError(w, http.StatusInternalServerError, "Assessment data unavailable for PDF export")
			return
		}
		data, err := h.pdf.RenderReport(report, assessment)
		if err != nil {
			h.logger.Error().Err(err).Str("report_id", id).Msg("PDF rendering failed")
			WriteError(w, http.StatusInternalServerError, "PDF rendering failed")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".pdf"))
		w.WriteHeader(http.StatusOK)
		w.Write(data)

	default:
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unknown export format %q", format))
	}
}
