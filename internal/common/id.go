package common

import (
	"github.com/google/uuid"
)

// NewAssessmentID generates a unique assessment ID with the "asmt_" prefix
// Format: asmt_<uuid>
func NewAssessmentID() string {
	return "asmt_" + uuid.New().String()
}

// NewReportID generates a report ID deterministic in the assessment and type,
// so regenerating a report overwrites the prior one (last-write-wins).
// Format: rpt_<type>_<assessmentID>
func NewReportID(reportType, assessmentID string) string {
	return "rpt_" + reportType + "_" + assessmentID
}
