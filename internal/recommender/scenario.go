package recommender

import "github.com/chrisdamba/foodinsights/internal/models"

type Scenario string

const (
	ScenarioGoalReached    Scenario = "GOAL_REACHED"
	ScenarioLightSnack     Scenario = "LIGHT_SNACK"
	ScenarioPreWorkout     Scenario = "PRE_WORKOUT"
	ScenarioPostWorkout    Scenario = "POST_WORKOUT"
	ScenarioLateEvening    Scenario = "LATE_EVENING"
	ScenarioProteinDeficit Scenario = "PROTEIN_DEFICIT"
	ScenarioStressEating   Scenario = "STRESS_EATING"
	ScenarioBalanced       Scenario = "BALANCED"
)

// AllScenarios lists scenarios in classification priority order.
var AllScenarios = []Scenario{
	ScenarioGoalReached,
	ScenarioLightSnack,
	ScenarioPreWorkout,
	ScenarioPostWorkout,
	ScenarioLateEvening,
	ScenarioProteinDeficit,
	ScenarioStressEating,
	ScenarioBalanced,
}

const (
	goalReachedBelowKcal = 50.0
	lightSnackMaxKcal    = 150.0

	preWorkoutMinHours  = 1.0
	preWorkoutMaxHours  = 2.0
	postWorkoutMaxHours = 2.0

	proteinPacingFloor = 0.8
)

var scenarioDescriptions = map[Scenario]string{
	ScenarioGoalReached:    "Daily calorie target reached. Water or herbal tea if hungry",
	ScenarioLightSnack:     "Little room left in the budget: a light snack fits",
	ScenarioPreWorkout:     "Training soon: fuel up with easy carbs",
	ScenarioPostWorkout:    "Recovery window after training: prioritise protein",
	ScenarioLateEvening:    "Late evening: keep it light and protein-based",
	ScenarioProteinDeficit: "Protein is behind pace for the calories eaten so far",
	ScenarioStressEating:   "Stressful day: a small planned treat prevents a rebound binge",
	ScenarioBalanced:       "Regular balanced meal",
}

func (s Scenario) Description() string {
	return scenarioDescriptions[s]
}

// dayState is everything classification needs, resolved from the context,
// the profile and the collaborators.
type dayState struct {
	current     float64
	sleep       float64
	lastMeal    float64
	hasLastMeal bool

	target models.Macros
	eaten  models.Macros

	training      *models.Training
	trainingStart float64
	trainingEnd   float64
	hasTraining   bool

	stress int
	mood   int

	thresholds models.AdaptiveThresholds
}

func (s dayState) remainingKcal() float64 {
	return s.target.Kcal - s.eaten.Kcal
}

func (s dayState) hoursToTraining() float64 {
	return s.trainingStart - s.current
}

func (s dayState) hoursSinceTraining() float64 {
	return s.current - s.trainingEnd
}

// ProteinPacing is eaten protein divided by the protein expected for the
// share of calories eaten so far. ok is false when nothing has been eaten
// or the targets are unusable.
func ProteinPacing(target, eaten models.Macros) (ratio float64, ok bool) {
	if eaten.Kcal <= 0 || target.Kcal <= 0 || target.Protein <= 0 {
		return 0, false
	}
	expected := target.Protein * eaten.Kcal / target.Kcal
	return eaten.Protein / expected, true
}

func (r *Recommender) classify(s dayState) Scenario {
	remaining := s.remainingKcal()
	switch {
	case remaining < goalReachedBelowKcal:
		return ScenarioGoalReached
	case remaining <= lightSnackMaxKcal:
		return ScenarioLightSnack
	}

	if s.hasTraining {
		if h := s.hoursToTraining(); h >= preWorkoutMinHours && h <= preWorkoutMaxHours {
			return ScenarioPreWorkout
		}
		if s.current >= s.trainingStart {
			if since := s.hoursSinceTraining(); since >= 0 && since < postWorkoutMaxHours {
				return ScenarioPostWorkout
			}
		}
	}

	if s.current >= s.thresholds.LateEatingHour {
		return ScenarioLateEvening
	}

	if ratio, ok := ProteinPacing(s.target, s.eaten); ok && ratio < proteinPacingFloor {
		return ScenarioProteinDeficit
	}

	if s.stress > 0 && s.stress >= r.settings.StressThreshold && s.mood > 0 && s.mood <= r.settings.MoodThreshold {
		return ScenarioStressEating
	}

	return ScenarioBalanced
}
