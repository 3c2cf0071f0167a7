package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type Meal struct {
	ID      string  `json:"id,omitempty"`
	Time    string  `json:"time"`
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber,omitempty"`
}

// DayRecord is one day of logged history. Zero values mean "not recorded".
type DayRecord struct {
	Date          string  `json:"date"`
	Meals         []Meal  `json:"meals"`
	WeightMorning float64 `json:"weightMorning,omitempty"`
	CycleDay      *int    `json:"cycleDay,omitempty"`
	SleepHours    float64 `json:"sleepHours,omitempty"`
	SleepQuality  int     `json:"sleepQuality,omitempty"`
	Stress        int     `json:"stress,omitempty"`
	Mood          int     `json:"mood,omitempty"`
	Steps         int     `json:"steps,omitempty"`
	TrainingKcal  float64 `json:"trainingKcal,omitempty"`
	TargetKcal    float64 `json:"targetKcal,omitempty"`
	DayScore      float64 `json:"dayScore,omitempty"`
}

func (d DayRecord) HasMeals() bool {
	return len(d.Meals) > 0
}

func (d DayRecord) TotalKcal() float64 {
	var total float64
	for _, m := range d.Meals {
		total += m.Kcal
	}
	return total
}

func (d DayRecord) TotalProtein() float64 {
	var total float64
	for _, m := range d.Meals {
		total += m.Protein
	}
	return total
}

func (d DayRecord) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, d.Date)
}

// InEarlyCycle reports whether the day carries a cycle marker in the
// water-retention phase. Days without a marker are never excluded.
func (d DayRecord) InEarlyCycle() bool {
	return d.CycleDay != nil && *d.CycleDay != 0 && *d.CycleDay <= 7
}

type NutrientNorm struct {
	Kcal float64 `json:"kcal" mapstructure:"kcal"`
	Prot float64 `json:"prot" mapstructure:"prot"`
	Carb float64 `json:"carb" mapstructure:"carb"`
	Fat  float64 `json:"fat,omitempty" mapstructure:"fat"`
}

type Profile struct {
	Norm             NutrientNorm `json:"norm" mapstructure:"norm"`
	Optimum          float64      `json:"optimum,omitempty" mapstructure:"optimum"`
	DeficitPctTarget FlexFloat    `json:"deficitPctTarget" mapstructure:"deficit_pct_target"`
	WeightGoal       float64      `json:"weightGoal,omitempty" mapstructure:"weight_goal"`
}

// FlexFloat accepts a JSON number or a numeric string. Anything else decodes to 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) Float64() float64 {
	return float64(f)
}
