package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/interfaces"
	"github.com/greenmeansgo/verdant/internal/models"
)

// AssessmentHandler handles assessment record HTTP requests
type AssessmentHandler struct {
	storage  interfaces.StorageManager
	reports  interfaces.ReportService
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(storage interfaces.StorageManager, reports interfaces.ReportService, logger arbor.ILogger) *AssessmentHandler {
	return &AssessmentHandler{
		storage:  storage,
		reports:  reports,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateHandler handles POST /api/assessments - stores a calculation result
func (h *AssessmentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var record models.AssessmentRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validate.Struct(&record); err != nil {
		h.logger.Debug().Err(err).Msg("Assessment validation failed")
		WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if record.ID == "" {
		record.ID = common.NewAssessmentID()
	}
	record.CreatedAt = time.Now().UTC()

	if err := h.storage.AssessmentStorage().StoreAssessment(r.Context(), &record); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store assessment")
		WriteError(w, http.StatusInternalServerError, "Failed to store assessment")
		return
	}

	h.logger.Info().Str("assessment_id", record.ID).Str("company", record.CompanyName).Msg("Assessment stored")
	WriteJSON(w, http.StatusCreated, &record)
}

// GetHandler handles GET /api/assessments/{id}
func (h *AssessmentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/assessments/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Missing assessment id")
		return
	}

	record, err := h.storage.AssessmentStorage().GetAssessment(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrAssessmentNotFound) {
			WriteError(w, http.StatusNotFound, "Assessment not found")
			return
		}
		h.logger.Error().Err(err).Str("assessment_id", id).Msg("Failed to get assessment")
		WriteError(w, http.StatusInternalServerError, "Failed to retrieve assessment")
		return
	}

	WriteJSON(w, http.StatusOK, record)
}

// ListHandler handles GET /api/assessments
func (h *AssessmentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	records, err := h.storage.AssessmentStorage().ListAssessments(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list assessments")
		WriteError(w, http.StatusInternalServerError, "Failed to list assessments")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(records),
		"assessments": records,
	})
}

// DeleteHandler handles DELETE /api/assessments/{id}
func (h *AssessmentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "DELETE") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/assessments/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Missing assessment id")
		return
	}

	if err := h.storage.AssessmentStorage().DeleteAssessment(r.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrAssessmentNotFound) {
			WriteError(w, http.StatusNotFound, "Assessment not found")
			return
		}
		h.logger.Error().Err(err).Str("assessment_id", id).Msg("Failed to delete assessment")
		WriteError(w, http.StatusInternalServerError, "Failed to delete assessment")
		return
	}

	WriteSuccess(w, "Assessment deleted")
}

// CompletenessHandler handles GET /api/assessments/{id}/completeness -
// reports whether the record can support report generation
func (h *AssessmentHandler) CompletenessHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/assessments/")
	id := strings.TrimSuffix(path, "/completeness")
	if id == "" || id == path {
		WriteError(w, http.StatusBadRequest, "Missing assessment id")
		return
	}

	verdict, err := h.reports.CheckCompleteness(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrAssessmentNotFound) {
			WriteError(w, http.StatusNotFound, "Assessment not found")
			return
		}
		h.logger.Error().Err(err).Str("assessment_id", id).Msg("Completeness check failed")
		WriteError(w, http.StatusInternalServerError, "Completeness check failed")
		return
	}

	WriteJSON(w, http.StatusOK, verdict)
}

// ReportsByAssessmentHandler handles GET /api/assessments/{id}/reports
func (h *AssessmentHandler) ReportsByAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/assessments/")
	id := strings.TrimSuffix(path, "/reports")
	if id == "" || id == path {
		WriteError(w, http.StatusBadRequest, "Missing assessment id")
		return
	}

	reports, err := h.storage.ReportStorage().ListReportsByAssessment(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("assessment_id", id).Msg("Failed to list reports for assessment")
		WriteError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"assessment_id": id,
		"count":         len(reports),
		"reports":       reports,
	})
}
