package analytics

import "math"

// DayClassifier decides whether a day's intake/target ratio counts as a success.
type DayClassifier interface {
	IsSuccess(ratio float64) bool
}

type RatioZone struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// RatioZones partitions the intake/target ratio into half-open [From, To) bands.
type RatioZones []RatioZone

var DefaultRatioZones = RatioZones{
	{ID: "crash", Name: "Crash (under-ate)", From: 0, To: 0.5},
	{ID: "low", Name: "A bit low", From: 0.5, To: 0.75},
	{ID: "good", Name: "Good", From: 0.75, To: 0.9},
	{ID: "perfect", Name: "Perfect", From: 0.9, To: 1.1},
	{ID: "over", Name: "Over", From: 1.1, To: 1.3},
	{ID: "binge", Name: "Binge", From: 1.3, To: math.Inf(1)},
}

func (z RatioZones) Zone(ratio float64) RatioZone {
	for _, zone := range z {
		if ratio >= zone.From && ratio < zone.To {
			return zone
		}
	}
	if len(z) == 0 {
		return RatioZone{}
	}
	if ratio < z[0].From {
		return z[0]
	}
	return z[len(z)-1]
}

func (z RatioZones) IsSuccess(ratio float64) bool {
	id := z.Zone(ratio).ID
	return id == "good" || id == "perfect"
}

func (z RatioZones) IsPerfect(ratio float64) bool {
	return z.Zone(ratio).ID == "perfect"
}
