package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/stats"
)

const (
	// MinInsightConfidence is the lowest pattern confidence shown in a wrap.
	MinInsightConfidence = 0.35
	maxTopInsights       = 5
	maxHiddenWins        = 3

	minHistoryForWeekOverWeek = 14
	minPrevWeekDays           = 5
	minScoresPerWeek          = 3
)

type DaySummary struct {
	Date     string  `json:"date"`
	DayScore float64 `json:"dayScore"`
	Kcal     int     `json:"kcal"`
	Ratio    float64 `json:"ratio"`
}

type WeightSummary struct {
	Current      float64 `json:"current"`
	Projected    float64 `json:"projected"`
	WeeklyChange float64 `json:"weeklyChange"`
}

type RoundedCI struct {
	Mean   int `json:"mean"`
	Lower  int `json:"lower"`
	Upper  int `json:"upper"`
	Margin int `json:"margin"`
}

type WeekOverWeek struct {
	PrevWeekAvg              int       `json:"prevWeekAvg"`
	CurrentWeekAvg           int       `json:"currentWeekAvg"`
	Change                   int       `json:"change"`
	ChangePercent            int       `json:"changePercent"`
	IsSignificant            bool      `json:"isSignificant"`
	PValue                   float64   `json:"pValue"`
	TStat                    float64   `json:"tStat"`
	Direction                string    `json:"direction"`
	EffectSize               float64   `json:"effectSize"`
	EffectSizeInterpretation string    `json:"effectSizeInterpretation"`
	PrevWeekCI               RoundedCI `json:"prevWeekCI"`
	CurrentWeekCI            RoundedCI `json:"currentWeekCI"`
	Power                    float64   `json:"power"`
	PrevWeekN                int       `json:"prevWeekN"`
	CurrentWeekN             int       `json:"currentWeekN"`
}

type WeeklyWrap struct {
	PeriodDays       int            `json:"periodDays"`
	DaysWithData     int            `json:"daysWithData"`
	HealthScore      int            `json:"healthScore"`
	ScoreChange      int            `json:"scoreChange"`
	WeekOverWeek     *WeekOverWeek  `json:"weekOverWeekStats"`
	BestDay          *DaySummary    `json:"bestDay"`
	WorstDay         *DaySummary    `json:"worstDay"`
	TopInsights      []string       `json:"topInsights"`
	HiddenWins       []string       `json:"hiddenWins"`
	WeightPrediction *WeightSummary `json:"weightPrediction"`
}

// DayTargetKcal resolves a day's calorie target: the day's own target, then
// the profile optimum, then the profile norm, then 2000 kcal.
func DayTargetKcal(day models.DayRecord, profile models.Profile) float64 {
	switch {
	case day.TargetKcal > 0:
		return day.TargetKcal
	case profile.Optimum > 0:
		return profile.Optimum
	case profile.Norm.Kcal > 0:
		return profile.Norm.Kcal
	default:
		return models.DefaultDayKcal
	}
}

// GenerateWeeklyWrap summarises the period: best and worst day, the most
// confident insights, small wins and, with two weeks of history, a
// week-over-week comparison of day scores. A nil classifier means
// DefaultRatioZones.
func GenerateWeeklyWrap(
	days []models.DayRecord,
	patterns []models.PatternResult,
	health HealthScore,
	weight WeightPrediction,
	profile models.Profile,
	classifier DayClassifier,
) WeeklyWrap {
	if classifier == nil {
		classifier = DefaultRatioZones
	}

	wrap := WeeklyWrap{
		PeriodDays:  len(days),
		HealthScore: health.Total,
		TopInsights: topInsights(patterns),
		HiddenWins:  hiddenWins(patterns),
	}

	for _, day := range days {
		if !day.HasMeals() {
			continue
		}
		wrap.DaysWithData++

		kcal := day.TotalKcal()
		ratio := kcal / DayTargetKcal(day, profile)
		summary := &DaySummary{
			Date:     day.Date,
			DayScore: day.DayScore,
			Kcal:     int(stats.RoundHalfUp(kcal)),
			Ratio:    stats.RoundTo(ratio, 2),
		}
		if classifier.IsSuccess(ratio) {
			if wrap.BestDay == nil || day.DayScore > wrap.BestDay.DayScore {
				wrap.BestDay = summary
			}
		} else if wrap.WorstDay == nil || day.DayScore < wrap.WorstDay.DayScore {
			wrap.WorstDay = summary
		}
	}

	if wow := weekOverWeek(days); wow != nil {
		wrap.WeekOverWeek = wow
		wrap.ScoreChange = wow.Change
	}

	if weight.Available {
		wrap.WeightPrediction = &WeightSummary{
			Current:      weight.CurrentWeight,
			Projected:    weight.ProjectedWeight,
			WeeklyChange: weight.WeeklyChange,
		}
	}
	return wrap
}

func topInsights(patterns []models.PatternResult) []string {
	var eligible []models.PatternResult
	for _, p := range patterns {
		if p.Available && p.Confidence >= MinInsightConfidence {
			eligible = append(eligible, p)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Confidence > eligible[j].Confidence
	})
	if len(eligible) > maxTopInsights {
		eligible = eligible[:maxTopInsights]
	}
	out := make([]string, 0, len(eligible))
	for _, p := range eligible {
		out = append(out, p.Insight)
	}
	return out
}

func hiddenWins(patterns []models.PatternResult) []string {
	wins := []string{}
	for _, p := range patterns {
		if !p.Available {
			continue
		}
		switch {
		case p.Pattern == models.PatternWaveOverlap && !p.HasOverlaps:
			wins = append(wins, "Perfect meal spacing: insulin waves never overlapped")
		case p.Pattern == models.PatternLateEating && p.LateCount != nil && *p.LateCount == 0:
			wins = append(wins, "Not a single late meal, great for sleep")
		case p.Pattern == models.PatternProteinSatiety && p.AvgProteinPct >= 25:
			wins = append(wins, "Protein on point, satiety covered")
		case p.Pattern == models.PatternFiberRegularity && p.AvgFiberPer1000 >= 14:
			wins = append(wins, "Fiber on target, digestion says thanks")
		case p.Pattern == models.PatternStressEating && p.Correlation < 0:
			wins = append(wins, "Stress does not drive your appetite")
		}
	}
	if len(wins) > maxHiddenWins {
		wins = wins[:maxHiddenWins]
	}
	return wins
}

// weekOverWeek compares day scores of the last seven calendar days with the
// seven before them.
func weekOverWeek(days []models.DayRecord) *WeekOverWeek {
	if len(days) < minHistoryForWeekOverWeek {
		return nil
	}

	type dated struct {
		date  time.Time
		score float64
	}
	var all []dated
	var last time.Time
	for _, d := range days {
		date, err := d.ParsedDate()
		if err != nil {
			continue
		}
		all = append(all, dated{date: date, score: d.DayScore})
		if date.After(last) {
			last = date
		}
	}
	currentStart := last.AddDate(0, 0, -6)
	prevStart := currentStart.AddDate(0, 0, -7)

	var prevDays int
	var prevScores, currentScores []float64
	for _, d := range all {
		switch {
		case !d.date.Before(currentStart):
			if d.score > 0 {
				currentScores = append(currentScores, d.score)
			}
		case !d.date.Before(prevStart):
			prevDays++
			if d.score > 0 {
				prevScores = append(prevScores, d.score)
			}
		}
	}
	if prevDays < minPrevWeekDays || len(prevScores) < minScoresPerWeek || len(currentScores) < minScoresPerWeek {
		return nil
	}

	prevAvg := stats.Average(prevScores)
	currentAvg := stats.Average(currentScores)
	change := int(stats.RoundHalfUp(currentAvg - prevAvg))

	tTest := stats.TwoSampleTTest(prevScores, currentScores, 0.05)
	effect := stats.CohenD(prevScores, currentScores)
	prevCI := stats.ConfidenceInterval(prevScores, 0.95)
	currentCI := stats.ConfidenceInterval(currentScores, 0.95)
	power := stats.StatisticalPower(len(prevScores)+len(currentScores), math.Abs(effect.D))

	wow := &WeekOverWeek{
		PrevWeekAvg:              int(stats.RoundHalfUp(prevAvg)),
		CurrentWeekAvg:           int(stats.RoundHalfUp(currentAvg)),
		Change:                   change,
		IsSignificant:            tTest.IsSignificant,
		PValue:                   tTest.PValue,
		TStat:                    stats.RoundTo(tTest.TStat, 2),
		Direction:                tTest.Direction,
		EffectSize:               stats.RoundTo(effect.D, 2),
		EffectSizeInterpretation: effect.Interpretation,
		PrevWeekCI:               roundCI(prevCI),
		CurrentWeekCI:            roundCI(currentCI),
		Power:                    stats.RoundTo(power, 2),
		PrevWeekN:                len(prevScores),
		CurrentWeekN:             len(currentScores),
	}
	if prevAvg > 0 {
		wow.ChangePercent = int(stats.RoundHalfUp(float64(change) / prevAvg * 100))
	}
	return wow
}

func roundCI(ci stats.MeanCI) RoundedCI {
	return RoundedCI{
		Mean:   int(stats.RoundHalfUp(ci.Mean)),
		Lower:  int(stats.RoundHalfUp(ci.Lower)),
		Upper:  int(stats.RoundHalfUp(ci.Upper)),
		Margin: int(stats.RoundHalfUp(ci.Margin)),
	}
}
