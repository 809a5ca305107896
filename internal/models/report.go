package models

import "time"

// ReportType selects the section set and narrative register of a report.
type ReportType string

const (
	ReportTypeComprehensive  ReportType = "comprehensive"
	ReportTypeExecutive      ReportType = "executive"
	ReportTypeFarmerFriendly ReportType = "farmer_friendly"
)

// Valid reports whether t is one of the recognized report types.
func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeComprehensive, ReportTypeExecutive, ReportTypeFarmerFriendly:
		return true
	}
	return false
}

// SectionRequest names one section to generate and carries its prompt body.
type SectionRequest struct {
	Key    string
	Prompt string
}

// GeneratedSection is the outcome of a single generation task. When the
// external call failed, Text holds a placeholder and Err the failure message.
type GeneratedSection struct {
	Key  string `json:"key"`
	Text string `json:"text"`
	Err  string `json:"error,omitempty"`
}

// ReportMetadata is attached to every assembled report.
type ReportMetadata struct {
	ModelUsed         string       `json:"model_used"`
	QualityLevel      QualityLevel `json:"quality_level"`
	Warnings          []string     `json:"warnings,omitempty"`
	SectionsGenerated int          `json:"sections_generated"`
	SectionsFailed    int          `json:"sections_failed,omitempty"`
}

// Report is an assembled narrative report. SectionKeys preserves generation
// order; Sections maps canonical key to section text. Reports are never
// mutated after assembly - regenerating produces a new Report stored under
// the same key, last write wins.
type Report struct {
	ID           string            `json:"report_id" badgerhold:"key"`
	AssessmentID string            `json:"assessment_id"`
	ReportType   ReportType        `json:"report_type"`
	CompanyName  string            `json:"company_name,omitempty"`
	Country      string            `json:"country,omitempty"`
	GeneratedAt  time.Time         `json:"generated_at"`
	SectionKeys  []string          `json:"section_keys"`
	Sections     map[string]string `json:"sections"`
	Metadata     ReportMetadata    `json:"metadata"`
}

// SectionTexts returns section contents in generation order.
func (r *Report) SectionTexts() []string {
	texts := make([]string, 0, len(r.SectionKeys))
	for _, key := range r.SectionKeys {
		texts = append(texts, r.Sections[key])
	}
	return texts
}
