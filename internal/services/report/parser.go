package report

import "strings"

// headerPhrase maps a lowercased heading phrase to its canonical key.
// Matching is substring containment on the lowercased header line; the table
// is ordered most-specific first so that, for example, "sensitivity and
// uncertainty analysis" wins before a looser phrase could.
type headerPhrase struct {
	phrase string
	key    string
}

var headerPhrases = []headerPhrase{
	{"executive summary", SectionExecutiveSummary},
	{"assessment methodology", SectionMethodology},
	{"environmental impact analysis", SectionImpactAnalysis},
	{"comparative performance analysis", SectionComparativeAnalysis},
	{"sensitivity and uncertainty analysis", SectionSensitivityAnalysis},
	{"recommendations and action plan", SectionRecommendations},
	{"data quality and limitations", SectionDataQualityLimitations},
	{"critical review", SectionCriticalReview},
	{"technical appendix", SectionTechnicalAppendix},
	{"introduction", SectionIntroduction},
	{"conclusions", SectionConclusions},
}

// matchHeader reports the canonical key for a header line. A line is a
// header iff it starts with '#' and its lowercased remainder contains one of
// the canonical phrases; the first table entry that matches wins.
func matchHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	lower := strings.ToLower(trimmed)
	for _, hp := range headerPhrases {
		if strings.Contains(lower, hp.phrase) {
			return hp.key, true
		}
	}
	return "", false
}

// ParseSections splits generated text into canonical sections by recognized
// header lines. Header lines are kept at the top of their section's text.
// Content before the first recognized header is discarded. When no header is
// recognized at all, the whole input is returned under the full_report key,
// so the result is never empty for non-empty input.
func ParseSections(text string) map[string]string {
	sections := make(map[string]string)
	var currentKey string
	var current []string

	flush := func() {
		if currentKey != "" {
			sections[currentKey] = strings.TrimSpace(strings.Join(current, "\n"))
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if key, ok := matchHeader(line); ok {
			flush()
			currentKey = key
			current = []string{line}
			continue
		}
		if currentKey != "" {
			current = append(current, line)
		}
	}
	flush()

	if len(sections) == 0 {
		sections[SectionFullReport] = text
	}
	return sections
}
