package recommender

import (
	"fmt"

	"github.com/chrisdamba/foodinsights/internal/stats"
)

type Suggestion struct {
	Product  string  `json:"product"`
	Category string  `json:"category"`
	Grams    float64 `json:"grams"`
	Reason   string  `json:"reason"`
}

// per 100 g
type product struct {
	name     string
	category string
	protein  float64
	carbs    float64
	kcal     float64
}

var (
	water         = product{"Water", "drinks", 0, 0, 0}
	kefir         = product{"Kefir 1%", "dairy", 3, 4, 40}
	apple         = product{"Apple", "fruits", 0.3, 14, 52}
	cottageCheese = product{"Cottage cheese 5%", "dairy", 17, 3, 121}
	cucumber      = product{"Cucumber", "vegetables", 0.8, 3.6, 15}
	banana        = product{"Banana", "fruits", 1.1, 23, 89}
	oatmeal       = product{"Oatmeal", "grains", 2.5, 12, 71}
	chickenBreast = product{"Chicken breast", "protein", 23, 0, 165}
	rice          = product{"Rice", "grains", 2.7, 28, 130}
	brownRice     = product{"Brown rice", "grains", 2.6, 23, 112}
	eggs          = product{"Eggs", "protein", 13, 1, 155}
	tuna          = product{"Tuna", "protein", 26, 0, 116}
	greekYogurt   = product{"Greek yogurt", "dairy", 10, 3.6, 59}
	darkChocolate = product{"Dark chocolate", "snacks", 7.8, 46, 546}
	almonds       = product{"Almonds", "snacks", 21, 22, 579}
	salad         = product{"Vegetable salad", "vegetables", 1.3, 3, 20}
)

type nutrient int

const (
	byKcal nutrient = iota
	byProtein
	byCarbs
	fixed
)

type pick struct {
	product
	by     nutrient
	share  float64
	grams  float64 // fixed picks only
	reason string
}

var scenarioPicks = map[Scenario][]pick{
	ScenarioGoalReached: {
		{product: water, by: fixed, grams: 300, reason: "Target reached: water or herbal tea if hungry"},
	},
	ScenarioLightSnack: {
		{product: kefir, by: byKcal, share: 0.6, reason: "Light and filling fermented dairy"},
		{product: apple, by: byKcal, share: 0.4, reason: "Low-calorie fruit with fiber"},
	},
	ScenarioLateEvening: {
		{product: cottageCheese, by: byProtein, share: 1, reason: "Slow casein protein before sleep"},
		{product: cucumber, by: fixed, grams: 100, reason: "Volume with almost no calories"},
	},
	ScenarioPreWorkout: {
		{product: banana, by: byCarbs, share: 0.6, reason: "Fast carbs for training energy"},
		{product: oatmeal, by: byCarbs, share: 0.4, reason: "Steady carbs that digest before training"},
	},
	ScenarioPostWorkout: {
		{product: chickenBreast, by: byProtein, share: 0.8, reason: "Lean protein for muscle recovery"},
		{product: rice, by: byCarbs, share: 1, reason: "Carbs to refill glycogen"},
	},
	ScenarioProteinDeficit: {
		{product: tuna, by: byProtein, share: 0.6, reason: "Dense protein, hardly any fat"},
		{product: greekYogurt, by: byProtein, share: 0.4, reason: "Protein that works as a snack too"},
		{product: salad, by: fixed, grams: 150, reason: "Fiber and micronutrients"},
	},
	ScenarioStressEating: {
		{product: darkChocolate, by: byKcal, share: 0.4, reason: "A small planned treat beats a rebound binge"},
		{product: almonds, by: byKcal, share: 0.6, reason: "Crunchy, satisfying and slow to digest"},
	},
}

func suggestionsFor(scenario Scenario, macros MacroTarget) []Suggestion {
	picks, ok := scenarioPicks[scenario]
	if !ok {
		picks = balancedPicks(macros)
	}

	out := make([]Suggestion, 0, len(picks))
	for _, p := range picks {
		grams := p.grams
		switch p.by {
		case byKcal:
			grams = gramsFor(float64(macros.Kcal)*p.share, p.kcal)
		case byProtein:
			grams = gramsFor(float64(macros.Protein)*p.share, p.protein)
		case byCarbs:
			grams = gramsFor(float64(macros.Carbs)*p.share, p.carbs)
		}
		if grams <= 0 {
			continue
		}
		out = append(out, Suggestion{
			Product:  p.name,
			Category: p.category,
			Grams:    grams,
			Reason:   p.reason,
		})
	}
	return out
}

func balancedPicks(macros MacroTarget) []pick {
	var picks []pick
	if macros.Protein >= 30 {
		picks = append(picks, pick{product: chickenBreast, by: byProtein, share: 1, reason: "High protein, low calories"})
	} else {
		picks = append(picks, pick{product: eggs, by: byProtein, share: 1, reason: "Complete protein with vitamins"})
	}
	if macros.Carbs >= 50 {
		picks = append(picks, pick{product: brownRice, by: byCarbs, share: 1, reason: "Slow carbs with fiber"})
	} else {
		picks = append(picks, pick{product: salad, by: fixed, grams: 150, reason: "Fiber and vitamins, few calories"})
	}
	return picks
}

func gramsFor(amount, per100 float64) float64 {
	if amount <= 0 || per100 <= 0 {
		return 0
	}
	return stats.RoundTo(amount/per100*100, 0)
}

func reasoningFor(scenario Scenario, s dayState, timing Timing, macros MacroTarget) []string {
	reasons := []string{scenario.Description()}
	if timing.Reason != "" {
		reasons = append(reasons, timing.Reason)
	}

	if scenario != ScenarioGoalReached && s.target.Protein > 0 {
		progress := s.eaten.Protein / s.target.Protein
		if progress < 0.5 && timing.HoursSinceLastMeal > 4 {
			reasons = append(reasons, fmt.Sprintf("Protein: %d g brings you closer to the daily norm", macros.Protein))
		}
	}

	if s.hasTraining {
		kind := s.training.Type
		if kind == "" {
			kind = "unknown"
		}
		reasons = append(reasons, fmt.Sprintf("Training at %s (%s)", s.training.Time, kind))
	}

	switch {
	case scenario == ScenarioGoalReached:
	case macros.RemainingMeals <= 1:
		reasons = append(reasons, "This is the last meal before sleep")
	default:
		reasons = append(reasons, fmt.Sprintf("%d more meals fit before sleep", macros.RemainingMeals))
	}
	if macros.LastMealBoost {
		reasons = append(reasons, fmt.Sprintf("Last meal covers most of the remaining %d kcal", macros.RemainingKcal))
	}
	return reasons
}
