package models

type PatternID string

const (
	PatternMealQuality          PatternID = "meal_quality"
	PatternNutritionQuality     PatternID = "nutrition_quality"
	PatternProteinSatiety       PatternID = "protein_satiety"
	PatternFiberRegularity      PatternID = "fiber_regularity"
	PatternGutHealth            PatternID = "gut_health"
	PatternHydration            PatternID = "hydration"
	PatternMicronutrientRadar   PatternID = "micronutrient_radar"
	PatternOmegaBalancer        PatternID = "omega_balancer"
	PatternNovaQuality          PatternID = "nova_quality"
	PatternVitaminDefense       PatternID = "vitamin_defense"
	PatternProteinDistribution  PatternID = "protein_distribution"
	PatternNutrientDensity      PatternID = "nutrient_density"
	PatternMealTiming           PatternID = "meal_timing"
	PatternWaveOverlap          PatternID = "wave_overlap"
	PatternLateEating           PatternID = "late_eating"
	PatternCircadian            PatternID = "circadian"
	PatternCircadianTiming      PatternID = "circadian_timing"
	PatternNutrientTiming       PatternID = "nutrient_timing"
	PatternWeekendEffect        PatternID = "weekend_effect"
	PatternTrainingKcal         PatternID = "training_kcal"
	PatternStepsWeight          PatternID = "steps_weight"
	PatternNeatActivity         PatternID = "neat_activity"
	PatternTrainingRecovery     PatternID = "training_recovery"
	PatternTrainingTypeMatch    PatternID = "training_type_match"
	PatternSleepWeight          PatternID = "sleep_weight"
	PatternSleepHunger          PatternID = "sleep_hunger"
	PatternStressEating         PatternID = "stress_eating"
	PatternMoodFood             PatternID = "mood_food"
	PatternMoodTrajectory       PatternID = "mood_trajectory"
	PatternSleepQuality         PatternID = "sleep_quality"
	PatternWellbeingCorrelation PatternID = "wellbeing_correlation"
	PatternCycleImpact          PatternID = "cycle_impact"
	PatternAntioxidantDefense   PatternID = "antioxidant_defense"
	PatternBoneHealth           PatternID = "bone_health"
	PatternElectrolytes         PatternID = "electrolyte_homeostasis"
	PatternInsulinSensitivity   PatternID = "insulin_sensitivity"
	PatternBodyComposition      PatternID = "body_composition"
	PatternHeartHealth          PatternID = "heart_health"
	PatternHypertrophy          PatternID = "hypertrophy"
	PatternBComplexAnemia       PatternID = "b_complex_anemia"
	PatternGlycemicLoad         PatternID = "glycemic_load"
	PatternAddedSugarDependency PatternID = "added_sugar_dependency"
)

// MealPatterns are the pattern scores that feed meal-recommendation confidence.
var MealPatterns = []PatternID{
	PatternProteinSatiety,
	PatternStressEating,
	PatternCircadianTiming,
	PatternTrainingRecovery,
}

const (
	MetabolicInsulinResistant = "insulin_resistant"
	MetabolicInsulinSensitive = "insulin_sensitive"
	MetabolicSyndromeRisk     = "metabolic_syndrome_risk"
	SatietyLow                = "low_satiety"
	SatietyHigh               = "high_satiety"
	CircadianEarlyBird        = "early_bird"
	CircadianNightOwl         = "night_owl"
)

const (
	DefaultSleepTarget     = "23:00"
	DefaultLateEatingHour  = 21.0
	DefaultIdealMealGapMin = 240
	DefaultDayKcal         = 2000.0
	DefaultDayProtein      = 120.0
	DefaultDayCarbs        = 200.0
)
