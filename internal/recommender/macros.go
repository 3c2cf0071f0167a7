package recommender

import (
	"fmt"
	"math"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/stats"
)

type MacroTarget struct {
	Kcal           int    `json:"kcal"`
	Protein        int    `json:"protein"`
	Carbs          int    `json:"carbs"`
	Fat            int    `json:"fat"`
	KcalRange      string `json:"kcalRange"`
	ProteinRange   string `json:"proteinRange"`
	CarbsRange     string `json:"carbsRange"`
	RemainingKcal  int    `json:"remainingKcal"`
	RemainingMeals int    `json:"remainingMeals"`
	LastMealBoost  bool   `json:"lastMealBoost,omitempty"`
}

// energy split of a meal, as shares of its calories
type split struct {
	protein, carbs, fat float64
}

const (
	lastMealShare       = 0.9
	lastMealMinBudget   = 300.0
	balancedMinKcal     = 350.0
	postWorkoutProteinG = 25.0
	proteinDeficitMaxG  = 40.0
)

var scenarioSplits = map[Scenario]split{
	ScenarioLightSnack:     {0.30, 0.40, 0.30},
	ScenarioLateEvening:    {0.45, 0.20, 0.35},
	ScenarioPreWorkout:     {0.20, 0.60, 0.20},
	ScenarioPostWorkout:    {0.35, 0.45, 0.20},
	ScenarioProteinDeficit: {0.40, 0.35, 0.25},
	ScenarioStressEating:   {0.20, 0.45, 0.35},
}

// kcal ceilings that survive the last-meal override
var scenarioCeilings = map[Scenario]float64{
	ScenarioLightSnack:   lightSnackMaxKcal,
	ScenarioLateEvening:  200,
	ScenarioPreWorkout:   500,
	ScenarioStressEating: 250,
}

type mealMacros struct {
	kcal, protein, carbs, fat float64
}

func fromSplit(kcal float64, sp split) mealMacros {
	return mealMacros{
		kcal:    kcal,
		protein: kcal * sp.protein / 4,
		carbs:   kcal * sp.carbs / 4,
		fat:     kcal * sp.fat / 9,
	}
}

// scaleTo rescales grams so the meal keeps its ratios at the new calories.
func (m mealMacros) scaleTo(kcal float64) mealMacros {
	if m.kcal <= 0 {
		return mealMacros{kcal: kcal}
	}
	f := kcal / m.kcal
	return mealMacros{kcal: kcal, protein: m.protein * f, carbs: m.carbs * f, fat: m.fat * f}
}

func (r *Recommender) computeMacros(s dayState, scenario Scenario) (MacroTarget, bool) {
	remaining := math.Max(0, s.remainingKcal())
	remProtein := math.Max(0, s.target.Protein-s.eaten.Protein)
	remCarbs := math.Max(0, s.target.Carbs-s.eaten.Carbs)
	remFat := math.Max(0, s.target.Fat-s.eaten.Fat)

	meals := EstimateRemainingMeals(s.current, s.sleep, s.thresholds.IdealMealGapMin)
	perMeal := float64(max(1, meals))

	var m mealMacros
	switch scenario {
	case ScenarioGoalReached:
		m = mealMacros{}
	case ScenarioLightSnack:
		m = fromSplit(math.Min(lightSnackMaxKcal, remaining), scenarioSplits[scenario])
	case ScenarioLateEvening:
		m = fromSplit(math.Min(scenarioCeilings[scenario], remaining), scenarioSplits[scenario])
	case ScenarioStressEating:
		m = fromSplit(math.Min(scenarioCeilings[scenario], remaining), scenarioSplits[scenario])
	case ScenarioPreWorkout:
		m = fromSplit(math.Min(400, remaining), scenarioSplits[scenario])
	case ScenarioPostWorkout:
		m = fromSplit(math.Min(remaining, math.Max(remaining/perMeal, 400)), scenarioSplits[scenario])
	case ScenarioProteinDeficit:
		m = fromSplit(math.Min(remaining, math.Max(remaining/perMeal, balancedMinKcal)), scenarioSplits[scenario])
		m.protein = math.Max(m.protein, math.Min(remProtein, proteinDeficitMaxG))
	default:
		m = mealMacros{
			kcal:    remaining / perMeal,
			protein: remProtein / perMeal,
			carbs:   remCarbs / perMeal,
			fat:     remFat / perMeal,
		}
		if remaining > lastMealMinBudget && m.kcal < balancedMinKcal {
			m = m.scaleTo(math.Min(remaining, balancedMinKcal))
		}
	}

	var adjusted bool
	if scenario != ScenarioGoalReached {
		m, adjusted = r.applyPhenotype(m, scenario)
	}

	boosted := false
	if scenario != ScenarioGoalReached && meals == 1 && remaining > lastMealMinBudget {
		kcal := stats.RoundHalfUp(lastMealShare * remaining)
		if ceiling, ok := scenarioCeilings[scenario]; ok {
			kcal = math.Min(kcal, ceiling)
		}
		m = m.scaleTo(kcal)
		boosted = true
	}

	if scenario == ScenarioPostWorkout {
		m.protein = math.Max(m.protein, postWorkoutProteinG)
	}

	kcal := int(math.Max(0, stats.RoundHalfUp(m.kcal)))
	protein := int(stats.RoundHalfUp(m.protein))
	carbs := int(stats.RoundHalfUp(m.carbs))
	return MacroTarget{
		Kcal:           kcal,
		Protein:        protein,
		Carbs:          carbs,
		Fat:            int(stats.RoundHalfUp(m.fat)),
		KcalRange:      gramRange(kcal, 50),
		ProteinRange:   gramRange(protein, 5),
		CarbsRange:     gramRange(carbs, 10),
		RemainingKcal:  int(stats.RoundHalfUp(remaining)),
		RemainingMeals: meals,
		LastMealBoost:  boosted,
	}, adjusted
}

func gramRange(v, spread int) string {
	return fmt.Sprintf("%d-%d", max(0, v-spread), v+spread)
}

// applyPhenotype shifts protein and carbs for a detected phenotype. Calories
// are left alone.
func (r *Recommender) applyPhenotype(m mealMacros, scenario Scenario) (mealMacros, bool) {
	if r.phenotype == nil {
		return m, false
	}
	p, ok := r.phenotype.Detection()
	if !ok {
		return m, false
	}

	adjusted := false
	switch p.Metabolic {
	case models.MetabolicInsulinResistant:
		m.carbs *= 0.85
		m.protein *= 1.1
		adjusted = true
	case models.MetabolicSyndromeRisk:
		m.carbs *= 0.75
		m.protein *= 1.15
		adjusted = true
	case models.MetabolicInsulinSensitive:
		if scenario == ScenarioPreWorkout || scenario == ScenarioPostWorkout {
			m.carbs *= 1.15
			m.protein *= 0.95
			adjusted = true
		}
	}
	if p.Satiety == models.SatietyLow {
		m.protein *= 1.15
		m.carbs *= 0.95
		adjusted = true
	}
	return m, adjusted
}
