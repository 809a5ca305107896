package interfaces

import "errors"

var (
	// ErrAssessmentNotFound indicates no assessment exists for the given id.
	ErrAssessmentNotFound = errors.New("assessment not found")

	// ErrReportNotFound indicates no report exists for the given id.
	ErrReportNotFound = errors.New("report not found")

	// ErrIncompleteAssessment indicates the assessment carries no impact data
	// at all and report generation was refused before any external call.
	ErrIncompleteAssessment = errors.New("assessment has no impact data to report on")

	// ErrAllSectionsFailed indicates every requested section failed to
	// generate. Partial failure never produces this error.
	ErrAllSectionsFailed = errors.New("all report sections failed to generate")
)
