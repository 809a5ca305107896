package report

import (
	"fmt"
	"strings"

	"github.com/greenmeansgo/verdant/internal/interfaces"
	"github.com/greenmeansgo/verdant/internal/models"
)

// Canonical section keys. The key is the stable internal identifier; the
// heading shown to readers is carried by the prompt and recognized back by
// the parser.
const (
	SectionExecutiveSummary       = "executive_summary"
	SectionIntroduction           = "introduction"
	SectionMethodology            = "methodology"
	SectionImpactAnalysis         = "impact_analysis"
	SectionComparativeAnalysis    = "comparative_analysis"
	SectionSensitivityAnalysis    = "sensitivity_analysis"
	SectionRecommendations        = "recommendations"
	SectionConclusions            = "conclusions"
	SectionDataQualityLimitations = "data_quality_limitations"
	SectionCriticalReview         = "critical_review"
	SectionTechnicalAppendix      = "technical_appendix"

	// Fallback key used by the parser when no canonical header is found.
	SectionFullReport = "full_report"
)

const consultantSystemPrompt = `You are a professional environmental sustainability consultant specializing in Life Cycle Assessment (LCA) and agricultural sustainability in Africa. Your task is to generate formal, comprehensive, and professional sustainability assessment reports that follow international standards (ISO 14044, ISO 14067).

Your reports should be:
1. **Professional and Formal**: Use technical terminology appropriately while remaining accessible
2. **Data-Driven**: Base all conclusions on the provided assessment data
3. **Actionable**: Provide specific, implementable recommendations
4. **Context-Aware**: Consider the African agricultural context, local conditions, and development priorities
5. **Standards-Compliant**: Reference ISO 14044, ISO 14067, and other relevant LCA standards
6. **Objective**: Present findings without bias, acknowledging uncertainties

Format your output in Markdown with clear section headers and professional language suitable for stakeholders including farmers, agricultural extension officers, policymakers, and investors.`

const extensionOfficerSystemPrompt = `You are an agricultural extension officer who explains environmental sustainability to smallholder farmers in Africa. Your explanations are:
1. Simple and clear, avoiding technical jargon
2. Practical and actionable
3. Respectful of local farming practices
4. Focused on benefits to the farmer (improved yields, reduced costs, better soil health)
5. Using local context and examples`

// sectionBrief pairs a canonical key with the human heading and the writing
// instructions embedded in its prompt.
type sectionBrief struct {
	key          string
	heading      string
	instructions string
}

// comprehensiveBriefs is the canonical section set, in report order.
var comprehensiveBriefs = []sectionBrief{
	{SectionExecutiveSummary, "Executive Summary", `High-level overview of the assessment, key findings and overall environmental performance, critical recommendations. Intended for decision-makers and executives. 200-300 words.`},
	{SectionIntroduction, "Introduction", `Purpose and scope of the assessment, methodology overview, standards and frameworks used. 150-200 words.`},
	{SectionMethodology, "Assessment Methodology", `Detailed explanation of the LCA methodology, system boundaries and functional units, data quality and sources, impact assessment methods used. 200-250 words.`},
	{SectionImpactAnalysis, "Environmental Impact Analysis", `Detailed analysis of all environmental impact categories: midpoint and endpoint impacts, single score interpretation, comparison with benchmarks and standards, identification of environmental hotspots. 400-500 words.`},
	{SectionComparativeAnalysis, "Comparative Performance Analysis", `Benchmarking against industry standards, regional comparisons, performance categorization, strengths and areas for improvement. If comparative data is absent, state that and summarize what a benchmark study would require. 300-400 words.`},
	{SectionSensitivityAnalysis, "Sensitivity and Uncertainty Analysis", `Key parameters affecting results, uncertainty ranges and confidence levels, scenario analysis results, data quality implications. If sensitivity data is absent, state that briefly. 200-300 words.`},
	{SectionRecommendations, "Recommendations and Action Plan", `Prioritized recommendations for environmental improvement, specific actions with expected impact reductions, implementation timeline and resource requirements, cost-benefit considerations, monitoring and verification strategies. 400-500 words.`},
	{SectionConclusions, "Conclusions", `Summary of key findings, environmental performance assessment, future outlook and continuous improvement pathway. 200-250 words.`},
	{SectionDataQualityLimitations, "Data Quality and Limitations", `Assessment of data quality scores, representativeness, known gaps, and how these limit the interpretation of results. 200-250 words.`},
	{SectionCriticalReview, "Critical Review", `Independent-reviewer perspective on the assessment: methodological soundness, consistency with ISO 14044 review requirements, and open issues a formal critical review would raise. 200-250 words.`},
	{SectionTechnicalAppendix, "Technical Appendix", `Detailed impact calculation results, data quality scores and sources, assumptions and limitations, references to standards and methodologies. 200-300 words.`},
}

var farmerBriefs = []sectionBrief{
	{"what_this_means", "What This Assessment Means for Your Farm", `Explain in simple language what the assessment found overall. 150 words.`},
	{"farm_performance", "Your Farm's Environmental Performance", `Explain the key impacts simply, without technical jargon. 200 words.`},
	{"practical_steps", "Practical Steps You Can Take", `Specific, actionable recommendations the farmer can carry out. 300 words.`},
	{"expected_benefits", "Expected Benefits", `Improved productivity, cost savings, and environmental benefits the farmer can expect. 150 words.`},
}

// generationPlan is everything the orchestrator and assembler need for one
// report type: the prompt set, the shared system prompt, the sampling
// parameters, and whether generated text goes through the header parser.
type generationPlan struct {
	systemPrompt string
	requests     []models.SectionRequest
	params       interfaces.GenerationParams
	parse        bool
}

func buildSectionPrompt(brief sectionBrief, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following environmental sustainability assessment data, write the \"%s\" section of a professional sustainability report.\n\n", brief.heading)
	b.WriteString(context)
	b.WriteString("\n\nSection requirements: ")
	b.WriteString(brief.instructions)
	fmt.Fprintf(&b, "\n\nBegin the section with the markdown header \"## %s\" and include specific numbers, percentages, and data from the assessment.", brief.heading)
	return b.String()
}

func buildRequests(briefs []sectionBrief, context string) []models.SectionRequest {
	reqs := make([]models.SectionRequest, 0, len(briefs))
	for _, brief := range briefs {
		reqs = append(reqs, models.SectionRequest{
			Key:    brief.key,
			Prompt: buildSectionPrompt(brief, context),
		})
	}
	return reqs
}

// planFor selects the section set and sampling parameters for a report type.
// maxTokens caps the per-section budget from configuration.
func planFor(reportType models.ReportType, context string, maxTokens int) (generationPlan, error) {
	switch reportType {
	case models.ReportTypeComprehensive:
		return generationPlan{
			systemPrompt: consultantSystemPrompt,
			requests:     buildRequests(comprehensiveBriefs, context),
			params:       interfaces.GenerationParams{MaxTokens: maxTokens, Temperature: 0.3},
			parse:        true,
		}, nil
	case models.ReportTypeExecutive:
		prompt := fmt.Sprintf(`Based on the following assessment data, generate a professional executive summary (200-300 words) suitable for decision-makers:

%s

The summary should include:
- Overall environmental performance
- Key impact findings
- Critical recommendations
- Business implications

Use formal, professional language and begin with the markdown header "## Executive Summary".`, context)
		return generationPlan{
			systemPrompt: consultantSystemPrompt,
			requests:     []models.SectionRequest{{Key: SectionExecutiveSummary, Prompt: prompt}},
			params:       interfaces.GenerationParams{MaxTokens: min(maxTokens, 1000), Temperature: 0.3},
			parse:        true,
		}, nil
	case models.ReportTypeFarmerFriendly:
		return generationPlan{
			systemPrompt: extensionOfficerSystemPrompt,
			requests:     buildRequests(farmerBriefs, context),
			params:       interfaces.GenerationParams{MaxTokens: min(maxTokens, 4000), Temperature: 0.4},
			parse:        false,
		}, nil
	default:
		return generationPlan{}, fmt.Errorf("unknown report type %q", reportType)
	}
}
