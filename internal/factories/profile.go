package factories

import (
	"math"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/jaswdr/faker"
)

type ProfileFactory struct {
	fake faker.Faker
}

func NewProfileFactory(fake faker.Faker) *ProfileFactory {
	return &ProfileFactory{fake: fake}
}

// CreateProfile builds nutrition targets consistent with the simulated
// weight trend: a negative drift gets a cutting deficit and a lower goal.
func (pf *ProfileFactory) CreateProfile(config *models.SimulationConfig) models.Profile {
	kcal := float64(pf.fake.IntBetween(17, 26) * 100)
	weight := config.WeightStart
	if weight <= 0 {
		weight = 75
	}

	protPerKg := pf.fake.Float64(1, 14, 20) / 10
	prot := math.Round(weight * protPerKg)
	fat := math.Round(kcal * 0.3 / 9)
	carb := math.Max(0, math.Round((kcal-prot*4-fat*9)/4))

	var deficit, goal float64
	switch {
	case config.WeightDriftPerWeek < -0.1:
		deficit = -float64(pf.fake.IntBetween(8, 20))
		goal = weight - float64(pf.fake.IntBetween(3, 10))
	case config.WeightDriftPerWeek > 0.1:
		deficit = float64(pf.fake.IntBetween(5, 12))
		goal = weight + float64(pf.fake.IntBetween(2, 6))
	}

	return models.Profile{
		Norm: models.NutrientNorm{
			Kcal: kcal,
			Prot: prot,
			Carb: carb,
			Fat:  fat,
		},
		Optimum:          math.Round(kcal * (1 + deficit/100)),
		DeficitPctTarget: models.FlexFloat(deficit),
		WeightGoal:       goal,
	}
}
