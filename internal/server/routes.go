package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Assessments
	mux.HandleFunc("/api/assessments", s.handleAssessmentsRoute) // GET (list), POST (create)
	mux.HandleFunc("/api/assessments/", s.handleAssessmentRoutes)

	// API routes - Reports
	mux.HandleFunc("/api/reports/generate", s.app.ReportHandler.GenerateHandler) // POST
	mux.HandleFunc("/api/reports", s.app.ReportHandler.ListHandler)              // GET
	mux.HandleFunc("/api/reports/", s.handleReportRoutes)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleAssessmentsRoute routes the assessment collection endpoint
func (s *Server) handleAssessmentsRoute(w http.ResponseWriter, r *http.Request) {
	RouteResourceCollection(w, r,
		s.app.AssessmentHandler.ListHandler,
		s.app.AssessmentHandler.CreateHandler)
}

// handleAssessmentRoutes routes /api/assessments/{id} and its subpaths
func (s *Server) handleAssessmentRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/assessments/")

	switch {
	case strings.HasSuffix(path, "/completeness"):
		s.app.AssessmentHandler.CompletenessHandler(w, r)
	case strings.HasSuffix(path, "/reports"):
		s.app.AssessmentHandler.ReportsByAssessmentHandler(w, r)
	default:
		RouteResourceItem(w, r,
			s.app.AssessmentHandler.GetHandler,
			nil,
			s.app.AssessmentHandler.DeleteHandler)
	}
}

// handleReportRoutes routes /api/reports/{id} and its subpaths
func (s *Server) handleReportRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/reports/")

	if strings.HasSuffix(path, "/export") {
		s.app.ReportHandler.ExportHandler(w, r)
		return
	}

	RouteResourceItem(w, r,
		s.app.ReportHandler.GetHandler,
		nil,
		s.app.ReportHandler.DeleteHandler)
}
