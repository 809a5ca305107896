package models

import "time"

// ImpactValue is a single quantified environmental impact with its unit and
// uncertainty. Produced by the external calculation engine.
type ImpactValue struct {
	Value            float64    `json:"value"`
	Unit             string     `json:"unit"`
	UncertaintyRange [2]float64 `json:"uncertainty_range,omitempty"`
	DataQualityScore float64    `json:"data_quality_score,omitempty"`
}

// SingleScore is the aggregated weighted environmental score.
type SingleScore struct {
	Value            float64            `json:"value"`
	Unit             string             `json:"unit"`
	UncertaintyRange [2]float64         `json:"uncertainty_range,omitempty"`
	WeightingFactors map[string]float64 `json:"weighting_factors,omitempty"`
	Methodology      string             `json:"methodology,omitempty"`
}

// DataQuality summarizes confidence in the underlying assessment data.
type DataQuality struct {
	OverallConfidence               string   `json:"overall_confidence"`
	RegionalAdaptation              bool     `json:"regional_adaptation"`
	CompletenessScore               float64  `json:"completeness_score"`
	TemporalRepresentativeness      float64  `json:"temporal_representativeness"`
	GeographicalRepresentativeness  float64  `json:"geographical_representativeness"`
	TechnologicalRepresentativeness float64  `json:"technological_representativeness"`
	Warnings                        []string `json:"warnings,omitempty"`
}

// FarmProfile describes the farm operation being assessed.
type FarmProfile struct {
	FarmerName             string   `json:"farmer_name"`
	FarmName               string   `json:"farm_name"`
	TotalFarmSize          float64  `json:"total_farm_size"` // hectares
	FarmingExperience      int      `json:"farming_experience"`
	FarmType               string   `json:"farm_type"`
	PrimaryFarmingSystem   string   `json:"primary_farming_system"`
	Certifications         []string `json:"certifications,omitempty"`
	ParticipatesInPrograms []string `json:"participates_in_programs,omitempty"`
}

// FoodItem is one assessed crop or food product.
type FoodItem struct {
	ID               string  `json:"id"`
	Name             string  `json:"name" validate:"required"`
	QuantityKg       float64 `json:"quantity_kg" validate:"gt=0"`
	Category         string  `json:"category" validate:"required"`
	CropType         string  `json:"crop_type,omitempty"`
	ProductionSystem string  `json:"production_system,omitempty"`
	CroppingPattern  string  `json:"cropping_pattern,omitempty"`
}

// ManagementPractices captures the farm management context supplied by the user.
type ManagementPractices struct {
	SoilManagement  SoilManagement       `json:"soil_management"`
	Fertilization   FertilizationSummary `json:"fertilization"`
	WaterManagement WaterManagement      `json:"water_management"`
	PestManagement  PestManagement       `json:"pest_management"`
}

type SoilManagement struct {
	SoilType              string   `json:"soil_type,omitempty"`
	UsesCompost           bool     `json:"uses_compost"`
	ConservationPractices []string `json:"conservation_practices,omitempty"`
}

type FertilizationSummary struct {
	UsesFertilizers     bool     `json:"uses_fertilizers"`
	FertilizerTypes     []string `json:"fertilizer_types,omitempty"`
	SoilTestBased       bool     `json:"soil_test_based"`
	FollowsNutrientPlan bool     `json:"follows_nutrient_plan"`
}

type WaterManagement struct {
	WaterSource                []string `json:"water_source,omitempty"`
	IrrigationSystem           string   `json:"irrigation_system,omitempty"`
	WaterConservationPractices []string `json:"water_conservation_practices,omitempty"`
}

type PestManagement struct {
	ManagementApproach string `json:"management_approach,omitempty"`
	UsesIPM            bool   `json:"uses_ipm"`
}

// SensitivityParameter identifies a parameter with outsized influence on results.
type SensitivityParameter struct {
	ParameterName        string  `json:"parameter_name"`
	InfluencePercentage  float64 `json:"influence_percentage"`
	ImprovementPotential float64 `json:"improvement_potential"`
}

// ScenarioAnalysis describes an alternative-practice scenario and its impact deltas.
type ScenarioAnalysis struct {
	ScenarioName  string             `json:"scenario_name"`
	Description   string             `json:"description,omitempty"`
	ImpactChanges map[string]float64 `json:"impact_changes,omitempty"`
}

// SensitivityAnalysis holds the optional sensitivity sub-record.
type SensitivityAnalysis struct {
	MostInfluentialParameters []SensitivityParameter `json:"most_influential_parameters,omitempty"`
	ScenarioAnalysis          []ScenarioAnalysis     `json:"scenario_analysis,omitempty"`
}

// BenchmarkComparison compares assessed performance against a named benchmark.
type BenchmarkComparison struct {
	BenchmarkName        string  `json:"benchmark_name"`
	YourPerformance      float64 `json:"your_performance"`
	BenchmarkValue       float64 `json:"benchmark_value"`
	PercentageDifference float64 `json:"percentage_difference"`
	PerformanceCategory  string  `json:"performance_category"`
}

// BestPractice is a recommended practice surfaced by comparative analysis.
type BestPractice struct {
	PracticeName             string `json:"practice_name"`
	Description              string `json:"description,omitempty"`
	ImplementationDifficulty string `json:"implementation_difficulty,omitempty"`
	CostCategory             string `json:"cost_category,omitempty"`
}

// ComparativeAnalysis holds the optional comparative sub-record.
type ComparativeAnalysis struct {
	BenchmarkComparisons []BenchmarkComparison `json:"benchmark_comparisons,omitempty"`
	BestPractices        []BestPractice        `json:"best_practices,omitempty"`
}

// ManagementAnalysis scores the effectiveness of reported management practices.
type ManagementAnalysis struct {
	SoilHealthScore          float64            `json:"soil_health_score"`
	FertilizerEfficiency     float64            `json:"fertilizer_efficiency"`
	WaterUseEfficiency       float64            `json:"water_use_efficiency"`
	PestManagementScore      float64            `json:"pest_management_score"`
	SustainabilityIndicators map[string]float64 `json:"sustainability_indicators,omitempty"`
}

// Benchmarking compares the farm against peer groups.
type Benchmarking struct {
	FarmTypeComparison    map[string]float64 `json:"farm_type_comparison,omitempty"`
	RegionalComparison    map[string]float64 `json:"regional_comparison,omitempty"`
	PerformancePercentile float64            `json:"performance_percentile"`
}

// Recommendation is an actionable improvement produced by the calculation engine.
type Recommendation struct {
	Category                 string             `json:"category"`
	Title                    string             `json:"title"`
	Description              string             `json:"description"`
	PotentialImpactReduction map[string]float64 `json:"potential_impact_reduction,omitempty"`
	ImplementationDifficulty string             `json:"implementation_difficulty,omitempty"`
	CostCategory             string             `json:"cost_category,omitempty"`
	Priority                 string             `json:"priority,omitempty"`
}

// AssessmentRecord is the complete output of the external calculation engine
// plus the user-supplied farm context. It is the immutable input to report
// generation; this service never mutates one after storage.
type AssessmentRecord struct {
	ID             string    `json:"id" badgerhold:"key"`
	CompanyName    string    `json:"company_name" validate:"required"`
	Country        string    `json:"country" validate:"required"`
	Region         string    `json:"region,omitempty"`
	AssessmentDate time.Time `json:"assessment_date"`

	Foods               []FoodItem           `json:"foods,omitempty" validate:"dive"`
	FarmProfile         *FarmProfile         `json:"farm_profile,omitempty"`
	ManagementPractices *ManagementPractices `json:"management_practices,omitempty"`

	MidpointImpacts map[string]ImpactValue            `json:"midpoint_impacts,omitempty"`
	EndpointImpacts map[string]ImpactValue            `json:"endpoint_impacts,omitempty"`
	SingleScore     *SingleScore                      `json:"single_score,omitempty"`
	DataQuality     *DataQuality                      `json:"data_quality,omitempty"`
	BreakdownByFood map[string]map[string]ImpactValue `json:"breakdown_by_food,omitempty"`

	SensitivityAnalysis *SensitivityAnalysis `json:"sensitivity_analysis,omitempty"`
	ComparativeAnalysis *ComparativeAnalysis `json:"comparative_analysis,omitempty"`
	ManagementAnalysis  *ManagementAnalysis  `json:"management_analysis,omitempty"`
	Benchmarking        *Benchmarking        `json:"benchmarking,omitempty"`
	Recommendations     []Recommendation     `json:"recommendations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// QualityLevel grades how much of the assessment structure is available for
// narrative generation.
type QualityLevel string

const (
	QualityHigh   QualityLevel = "high"
	QualityMedium QualityLevel = "medium"
	QualityLow    QualityLevel = "low"
)

// CompletenessVerdict is the pre-generation judgment of whether an assessment
// carries enough data to report on. Built fresh per report request.
type CompletenessVerdict struct {
	IsComplete   bool         `json:"is_complete"`
	Missing      []string     `json:"missing,omitempty"`
	Warnings     []string     `json:"warnings,omitempty"`
	QualityLevel QualityLevel `json:"quality_level"`
}
