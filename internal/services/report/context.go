package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/greenmeansgo/verdant/internal/models"
)

// FormatContext flattens an assessment record into the ordered plain-text
// brief shared by every generation task. The walk order is fixed and the
// output is deterministic: the same record always formats to byte-identical
// text. Map-backed groups are emitted in sorted key order.
func FormatContext(rec *models.AssessmentRecord) string {
	var b strings.Builder

	b.WriteString("# Environmental Sustainability Assessment Data\n\n")

	writeBasicInfo(&b, rec)
	writeFarmProfile(&b, rec.FarmProfile)
	writeFoods(&b, rec.Foods)
	writeManagementPractices(&b, rec.ManagementPractices)
	writeSingleScore(&b, rec.SingleScore)
	writeImpactGroup(&b, "Midpoint Environmental Impacts", rec.MidpointImpacts, true)
	writeImpactGroup(&b, "Endpoint Impact Categories", rec.EndpointImpacts, false)
	writeBreakdown(&b, rec.BreakdownByFood)
	writeDataQuality(&b, rec.DataQuality)
	writeSensitivity(&b, rec.SensitivityAnalysis)
	writeComparative(&b, rec.ComparativeAnalysis)
	writeManagementAnalysis(&b, rec.ManagementAnalysis)
	writeBenchmarking(&b, rec.Benchmarking)
	writeRecommendations(&b, rec.Recommendations)

	return b.String()
}

// impact renders a value with fixed precision and a unit fallback.
func impact(v models.ImpactValue) string {
	unit := v.Unit
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.4f %s", v.Value, unit)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

func writeBasicInfo(b *strings.Builder, rec *models.AssessmentRecord) {
	b.WriteString("## Basic Information\n")
	fmt.Fprintf(b, "- Company/Farm: %s\n", orNotProvided(rec.CompanyName))
	fmt.Fprintf(b, "- Country: %s\n", orNotProvided(rec.Country))
	if rec.Region != "" {
		fmt.Fprintf(b, "- Region: %s\n", rec.Region)
	}
	if !rec.AssessmentDate.IsZero() {
		fmt.Fprintf(b, "- Assessment Date: %s\n", rec.AssessmentDate.Format("2006-01-02"))
	} else {
		b.WriteString("- Assessment Date: Not provided\n")
	}
	fmt.Fprintf(b, "- Assessment ID: %s\n", orNotProvided(rec.ID))
}

func writeFarmProfile(b *strings.Builder, fp *models.FarmProfile) {
	b.WriteString("\n## Farm / Operation Profile\n")
	if fp == nil {
		// Essential context: always present in the brief, even when absent
		// from the record.
		b.WriteString("- Not provided\n")
		return
	}
	fmt.Fprintf(b, "- Farm: %s (farmer: %s)\n", orNotProvided(fp.FarmName), orNotProvided(fp.FarmerName))
	fmt.Fprintf(b, "- Total Farm Size: %.4f hectares\n", fp.TotalFarmSize)
	fmt.Fprintf(b, "- Farming Experience: %d years\n", fp.FarmingExperience)
	fmt.Fprintf(b, "- Farm Type: %s\n", orNotProvided(fp.FarmType))
	fmt.Fprintf(b, "- Primary Farming System: %s\n", orNotProvided(fp.PrimaryFarmingSystem))
	if len(fp.Certifications) > 0 {
		fmt.Fprintf(b, "- Certifications: %s\n", strings.Join(fp.Certifications, ", "))
	}
	if len(fp.ParticipatesInPrograms) > 0 {
		fmt.Fprintf(b, "- Programs: %s\n", strings.Join(fp.ParticipatesInPrograms, ", "))
	}
}

func writeFoods(b *strings.Builder, foods []models.FoodItem) {
	b.WriteString("\n## Crops / Food Products Assessed\n")
	if len(foods) == 0 {
		b.WriteString("- Not provided\n")
		return
	}
	for _, f := range foods {
		fmt.Fprintf(b, "- %s (%s): %.4f kg", f.Name, orNotProvided(f.Category), f.QuantityKg)
		if f.ProductionSystem != "" {
			fmt.Fprintf(b, ", production system: %s", f.ProductionSystem)
		}
		if f.CroppingPattern != "" {
			fmt.Fprintf(b, ", cropping pattern: %s", f.CroppingPattern)
		}
		b.WriteString("\n")
	}
}

func writeManagementPractices(b *strings.Builder, mp *models.ManagementPractices) {
	if mp == nil {
		return
	}
	b.WriteString("\n## Management Practices\n")
	if mp.SoilManagement.SoilType != "" {
		fmt.Fprintf(b, "- Soil Type: %s\n", mp.SoilManagement.SoilType)
	}
	fmt.Fprintf(b, "- Uses Compost: %t\n", mp.SoilManagement.UsesCompost)
	if len(mp.SoilManagement.ConservationPractices) > 0 {
		fmt.Fprintf(b, "- Conservation Practices: %s\n", strings.Join(mp.SoilManagement.ConservationPractices, ", "))
	}
	fmt.Fprintf(b, "- Uses Fertilizers: %t\n", mp.Fertilization.UsesFertilizers)
	if len(mp.Fertilization.FertilizerTypes) > 0 {
		fmt.Fprintf(b, "- Fertilizer Types: %s\n", strings.Join(mp.Fertilization.FertilizerTypes, ", "))
	}
	fmt.Fprintf(b, "- Soil-Test Based Fertilization: %t\n", mp.Fertilization.SoilTestBased)
	if len(mp.WaterManagement.WaterSource) > 0 {
		fmt.Fprintf(b, "- Water Source: %s\n", strings.Join(mp.WaterManagement.WaterSource, ", "))
	}
	if mp.WaterManagement.IrrigationSystem != "" {
		fmt.Fprintf(b, "- Irrigation System: %s\n", mp.WaterManagement.IrrigationSystem)
	}
	if mp.PestManagement.ManagementApproach != "" {
		fmt.Fprintf(b, "- Pest Management Approach: %s\n", mp.PestManagement.ManagementApproach)
	}
	fmt.Fprintf(b, "- Uses IPM: %t\n", mp.PestManagement.UsesIPM)
}

func writeSingleScore(b *strings.Builder, ss *models.SingleScore) {
	b.WriteString("\n## Environmental Impact Score\n")
	if ss == nil {
		b.WriteString("- Not provided\n")
		return
	}
	unit := ss.Unit
	if unit == "" {
		unit = "pt"
	}
	fmt.Fprintf(b, "- Overall Score: %.4f %s\n", ss.Value, unit)
	if ss.Methodology != "" {
		fmt.Fprintf(b, "- Methodology: %s\n", ss.Methodology)
	}
	fmt.Fprintf(b, "- Uncertainty Range: [%.4f, %.4f]\n", ss.UncertaintyRange[0], ss.UncertaintyRange[1])
	if len(ss.WeightingFactors) > 0 {
		b.WriteString("\n### Weighting Factors\n")
		for _, category := range sortedKeys(ss.WeightingFactors) {
			fmt.Fprintf(b, "  - %s: %.1f%%\n", category, ss.WeightingFactors[category]*100)
		}
	}
}

func writeImpactGroup(b *strings.Builder, title string, impacts map[string]models.ImpactValue, detailed bool) {
	if len(impacts) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n", title)
	for _, category := range sortedKeys(impacts) {
		v := impacts[category]
		fmt.Fprintf(b, "- %s: %s\n", category, impact(v))
		if detailed {
			fmt.Fprintf(b, "  - Data Quality Score: %.2f\n", v.DataQualityScore)
			fmt.Fprintf(b, "  - Uncertainty Range: [%.4f, %.4f]\n", v.UncertaintyRange[0], v.UncertaintyRange[1])
		}
	}
}

func writeBreakdown(b *strings.Builder, breakdown map[string]map[string]models.ImpactValue) {
	if len(breakdown) == 0 {
		return
	}
	b.WriteString("\n## Impact Breakdown by Crop/Food Product\n")
	for _, food := range sortedKeys(breakdown) {
		fmt.Fprintf(b, "\n### %s\n", food)
		impacts := breakdown[food]
		for _, category := range sortedKeys(impacts) {
			fmt.Fprintf(b, "  - %s: %s\n", category, impact(impacts[category]))
		}
	}
}

func writeDataQuality(b *strings.Builder, dq *models.DataQuality) {
	b.WriteString("\n## Data Quality Assessment\n")
	if dq == nil {
		b.WriteString("- Not provided\n")
		return
	}
	fmt.Fprintf(b, "- Overall Confidence: %s\n", orNotProvided(dq.OverallConfidence))
	fmt.Fprintf(b, "- Regional Adaptation: %t\n", dq.RegionalAdaptation)
	fmt.Fprintf(b, "- Completeness Score: %.2f\n", dq.CompletenessScore)
	fmt.Fprintf(b, "- Temporal Representativeness: %.2f\n", dq.TemporalRepresentativeness)
	fmt.Fprintf(b, "- Geographical Representativeness: %.2f\n", dq.GeographicalRepresentativeness)
	if len(dq.Warnings) > 0 {
		b.WriteString("\n### Warnings\n")
		for _, warning := range dq.Warnings {
			fmt.Fprintf(b, "  - %s\n", warning)
		}
	}
}

func writeSensitivity(b *strings.Builder, sa *models.SensitivityAnalysis) {
	if sa == nil {
		return
	}
	b.WriteString("\n## Sensitivity Analysis\n")
	if len(sa.MostInfluentialParameters) > 0 {
		b.WriteString("\n### Most Influential Parameters\n")
		for _, p := range sa.MostInfluentialParameters {
			fmt.Fprintf(b, "- %s\n", p.ParameterName)
			fmt.Fprintf(b, "  - Influence: %.1f%%\n", p.InfluencePercentage)
			fmt.Fprintf(b, "  - Improvement Potential: %.1f%%\n", p.ImprovementPotential)
		}
	}
	if len(sa.ScenarioAnalysis) > 0 {
		b.WriteString("\n### Scenario Analysis\n")
		for _, s := range sa.ScenarioAnalysis {
			fmt.Fprintf(b, "\n#### %s\n", s.ScenarioName)
			if s.Description != "" {
				fmt.Fprintf(b, "Description: %s\n", s.Description)
			}
			if len(s.ImpactChanges) > 0 {
				b.WriteString("Impact Changes:\n")
				for _, category := range sortedKeys(s.ImpactChanges) {
					fmt.Fprintf(b, "  - %s: %+.1f%%\n", category, s.ImpactChanges[category])
				}
			}
		}
	}
}

func writeComparative(b *strings.Builder, ca *models.ComparativeAnalysis) {
	if ca == nil {
		return
	}
	b.WriteString("\n## Comparative Analysis\n")
	if len(ca.BenchmarkComparisons) > 0 {
		b.WriteString("\n### Benchmark Comparisons\n")
		for _, bc := range ca.BenchmarkComparisons {
			fmt.Fprintf(b, "\n- %s\n", bc.BenchmarkName)
			fmt.Fprintf(b, "  - Your Performance: %.4f\n", bc.YourPerformance)
			fmt.Fprintf(b, "  - Benchmark Value: %.4f\n", bc.BenchmarkValue)
			fmt.Fprintf(b, "  - Difference: %.1f%%\n", bc.PercentageDifference)
			fmt.Fprintf(b, "  - Category: %s\n", orNotProvided(bc.PerformanceCategory))
		}
	}
	if len(ca.BestPractices) > 0 {
		b.WriteString("\n### Recommended Best Practices\n")
		for _, bp := range ca.BestPractices {
			fmt.Fprintf(b, "\n- %s\n", bp.PracticeName)
			if bp.Description != "" {
				fmt.Fprintf(b, "  - Description: %s\n", bp.Description)
			}
			fmt.Fprintf(b, "  - Implementation Difficulty: %s\n", orNotProvided(bp.ImplementationDifficulty))
			fmt.Fprintf(b, "  - Cost Category: %s\n", orNotProvided(bp.CostCategory))
		}
	}
}

func writeManagementAnalysis(b *strings.Builder, ma *models.ManagementAnalysis) {
	if ma == nil {
		return
	}
	b.WriteString("\n## Management Practice Analysis\n")
	fmt.Fprintf(b, "- Soil Health Score: %.1f/100\n", ma.SoilHealthScore)
	fmt.Fprintf(b, "- Fertilizer Efficiency: %.1f\n", ma.FertilizerEfficiency)
	fmt.Fprintf(b, "- Water Use Efficiency: %.1f\n", ma.WaterUseEfficiency)
	fmt.Fprintf(b, "- Pest Management Score: %.1f/100\n", ma.PestManagementScore)
	if len(ma.SustainabilityIndicators) > 0 {
		b.WriteString("\n### Sustainability Indicators\n")
		for _, name := range sortedKeys(ma.SustainabilityIndicators) {
			fmt.Fprintf(b, "  - %s: %.2f\n", name, ma.SustainabilityIndicators[name])
		}
	}
}

func writeBenchmarking(b *strings.Builder, bm *models.Benchmarking) {
	if bm == nil {
		return
	}
	b.WriteString("\n## Benchmarking\n")
	fmt.Fprintf(b, "- Performance Percentile: %.1f\n", bm.PerformancePercentile)
	if len(bm.FarmTypeComparison) > 0 {
		b.WriteString("\n### Farm Type Comparison\n")
		for _, farmType := range sortedKeys(bm.FarmTypeComparison) {
			fmt.Fprintf(b, "  - %s: %.2f\n", farmType, bm.FarmTypeComparison[farmType])
		}
	}
	if len(bm.RegionalComparison) > 0 {
		b.WriteString("\n### Regional Comparison\n")
		for _, region := range sortedKeys(bm.RegionalComparison) {
			fmt.Fprintf(b, "  - %s: %.2f\n", region, bm.RegionalComparison[region])
		}
	}
}

func writeRecommendations(b *strings.Builder, recs []models.Recommendation) {
	if len(recs) == 0 {
		return
	}
	b.WriteString("\n## System Recommendations\n")
	for _, rec := range recs {
		title := rec.Title
		if title == "" {
			title = "Recommendation"
		}
		fmt.Fprintf(b, "\n### %s\n", title)
		fmt.Fprintf(b, "- Category: %s\n", orNotProvided(rec.Category))
		fmt.Fprintf(b, "- Priority: %s\n", orNotProvided(rec.Priority))
		if rec.Description != "" {
			fmt.Fprintf(b, "- Description: %s\n", rec.Description)
		}
		fmt.Fprintf(b, "- Implementation Difficulty: %s\n", orNotProvided(rec.ImplementationDifficulty))
		fmt.Fprintf(b, "- Cost Category: %s\n", orNotProvided(rec.CostCategory))
	}
}
