package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/interfaces"
)

type APIHandler struct {
	config    *common.Config
	generator interfaces.TextGenerator
	storage   interfaces.StorageManager
	logger    arbor.ILogger
}

func NewAPIHandler(config *common.Config, generator interfaces.TextGenerator, storage interfaces.StorageManager, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		config:    config,
		generator: generator,
		storage:   storage,
		logger:    logger,
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// HealthHandler returns health check status, including whether the text
// generation capability is configured and how many records are stored.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	assessments, _ := h.storage.AssessmentStorage().CountAssessments(r.Context())
	reports, _ := h.storage.ReportStorage().CountReports(r.Context())

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"model":       h.generator.Model(),
		"environment": h.config.Environment,
		"assessments": assessments,
		"reports":     reports,
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
