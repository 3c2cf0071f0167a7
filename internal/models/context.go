package models

type Macros struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type LastMeal struct {
	Time    string  `json:"time"`
	Kcal    float64 `json:"kcal,omitempty"`
	Protein float64 `json:"protein,omitempty"`
	Carbs   float64 `json:"carbs,omitempty"`
	Fat     float64 `json:"fat,omitempty"`
}

type Training struct {
	Type        string `json:"type"`
	Time        string `json:"time"`
	DurationMin int    `json:"durationMin,omitempty"`
}

// RecommendationContext is the "right now" snapshot for a single recommendation.
// Stress and Mood use a 1-5 scale; 0 means not reported.
type RecommendationContext struct {
	CurrentTime string    `json:"currentTime"`
	LastMeal    *LastMeal `json:"lastMeal,omitempty"`
	DayTarget   Macros    `json:"dayTarget"`
	DayEaten    Macros    `json:"dayEaten"`
	Training    *Training `json:"training,omitempty"`
	Stress      int       `json:"stress,omitempty"`
	Mood        int       `json:"mood,omitempty"`
	SleepTarget string    `json:"sleepTarget,omitempty"`
}

func (c *RecommendationContext) HasLastMeal() bool {
	return c.LastMeal != nil && c.LastMeal.Time != ""
}
