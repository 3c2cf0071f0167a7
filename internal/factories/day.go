package factories

import (
	"math"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

type DayFactory struct {
	fake faker.Faker
}

func NewDayFactory(fake faker.Faker) *DayFactory {
	return &DayFactory{fake: fake}
}

// DayPlan is what the simulator decides for a day before the factory fills
// in meals and wellbeing fields.
type DayPlan struct {
	Date          time.Time
	MealHours     []float64
	Kcal          float64
	TargetKcal    float64
	WeightMorning float64
	CycleDay      *int
}

func (df *DayFactory) CreateDay(plan DayPlan) models.DayRecord {
	day := models.DayRecord{
		Date:          plan.Date.Format(models.DateLayout),
		Meals:         df.createMeals(plan.MealHours, plan.Kcal),
		WeightMorning: plan.WeightMorning,
		CycleDay:      plan.CycleDay,
		SleepHours:    df.fake.Float64(1, 5, 9),
		SleepQuality:  df.fake.IntBetween(1, 5),
		Stress:        df.fake.IntBetween(1, 5),
		Mood:          df.fake.IntBetween(1, 5),
		Steps:         df.fake.IntBetween(30, 140) * 100,
		TargetKcal:    plan.TargetKcal,
	}
	if df.fake.IntBetween(1, 10) <= 4 {
		day.TrainingKcal = float64(df.fake.IntBetween(15, 60) * 10)
	}
	return day
}

func (df *DayFactory) createMeals(hours []float64, kcal float64) []models.Meal {
	if len(hours) == 0 || kcal <= 0 {
		return []models.Meal{}
	}

	shares := make([]float64, len(hours))
	var total float64
	for i := range shares {
		shares[i] = float64(df.fake.IntBetween(6, 14))
		total += shares[i]
	}

	meals := make([]models.Meal, len(hours))
	for i, h := range hours {
		mealKcal := math.Round(kcal * shares[i] / total)
		proteinPct := df.fake.Float64(2, 15, 32) / 100
		fatPct := df.fake.Float64(2, 22, 36) / 100
		carbPct := math.Max(0, 1-proteinPct-fatPct)

		meals[i] = models.Meal{
			ID:      cuid.New(),
			Time:    models.FormatClock(h),
			Kcal:    mealKcal,
			Protein: math.Round(mealKcal * proteinPct / 4),
			Carbs:   math.Round(mealKcal * carbPct / 4),
			Fat:     math.Round(mealKcal * fatPct / 9),
			Fiber:   math.Round(mealKcal / 1000 * df.fake.Float64(1, 6, 16)),
		}
	}
	return meals
}
