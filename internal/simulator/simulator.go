// Package simulator generates synthetic day histories for development,
// demos and load tests of the insight pipeline.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/chrisdamba/foodinsights/internal/factories"
	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/repositories"
	"github.com/chrisdamba/foodinsights/internal/utils"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

const (
	weighInChance  = 0.85
	weightNoiseKg  = 0.25
	waterRetention = 0.6
	cycleLength    = 28
	minDayKcal     = 300
	defaultKcalStd = 250
	earlyCycleDays = 7
)

var ErrEmptyRange = errors.New("simulation end date is before start date")

// History is one simulated user.
type History struct {
	UserID  string             `json:"userId"`
	Pattern string             `json:"pattern"`
	Profile models.Profile     `json:"profile"`
	Days    []models.DayRecord `json:"days"`
}

type Simulator struct {
	Config   *models.SimulationConfig
	Rng      *rand.Rand
	Progress io.Writer
	profiles *factories.ProfileFactory
	days     *factories.DayFactory
}

// NewSimulator seeds both the rng and the faker from config.Seed; a zero
// seed uses the current time.
func NewSimulator(config *models.SimulationConfig) *Simulator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fake := faker.NewWithSeed(rand.NewSource(seed))
	return &Simulator{
		Config:   config,
		Rng:      rand.New(rand.NewSource(seed)),
		Progress: io.Discard,
		profiles: factories.NewProfileFactory(fake),
		days:     factories.NewDayFactory(fake),
	}
}

func (s *Simulator) dates() ([]time.Time, error) {
	start := s.Config.StartDate.UTC().Truncate(24 * time.Hour)
	end := s.Config.EndDate.UTC().Truncate(24 * time.Hour)
	if end.Before(start) {
		return nil, ErrEmptyRange
	}
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// Generate simulates one history per user id. With no ids it creates
// Config.Users users with fresh ids.
func (s *Simulator) Generate(userIDs []string) ([]History, error) {
	dates, err := s.dates()
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		for i := 0; i < max(1, s.Config.Users); i++ {
			userIDs = append(userIDs, cuid.New())
		}
	}

	utils.Log.Infof("Simulation runs from %s to %s for %d users",
		dates[0].Format(models.DateLayout), dates[len(dates)-1].Format(models.DateLayout), len(userIDs))

	bar := progressbar.NewOptions(len(userIDs)*len(dates),
		progressbar.OptionSetWriter(s.Progress),
		progressbar.OptionSetDescription("simulating days"),
		progressbar.OptionShowCount(),
	)
	defer bar.Finish()

	histories := make([]History, 0, len(userIDs))
	for _, id := range userIDs {
		histories = append(histories, s.generateUser(id, dates, bar))
	}
	return histories, nil
}

func (s *Simulator) generateUser(userID string, dates []time.Time, bar *progressbar.ProgressBar) History {
	profile := s.profiles.CreateProfile(s.Config)
	names := PatternNames()
	pattern := EatingPatterns[names[s.Rng.Intn(len(names))]]

	target := profile.Optimum
	if target <= 0 {
		target = profile.Norm.Kcal
	}
	kcalStd := s.Config.KcalStd
	if kcalStd <= 0 {
		kcalStd = defaultKcalStd
	}
	cycleOffset := s.Rng.Intn(cycleLength)

	days := make([]models.DayRecord, 0, len(dates))
	for i, date := range dates {
		plan := factories.DayPlan{Date: date, TargetKcal: target}

		if s.Config.CycleTracking {
			cd := (cycleOffset+i)%cycleLength + 1
			plan.CycleDay = &cd
		}
		if !chance(s.Rng, pattern.SkipChance) {
			plan.MealHours = pattern.MealHours(s.Rng, date)
			plan.Kcal = math.Max(minDayKcal, normal(s.Rng, target*intakeMultiplier(date), kcalStd))
		}
		if chance(s.Rng, weighInChance) {
			w := normal(s.Rng, s.Config.WeightStart+s.Config.WeightDriftPerWeek*float64(i)/7, weightNoiseKg)
			if plan.CycleDay != nil && *plan.CycleDay <= earlyCycleDays {
				w += waterRetention
			}
			plan.WeightMorning = math.Round(w*10) / 10
		}

		day := s.days.CreateDay(plan)
		if day.HasMeals() {
			day.DayScore = dayScore(s.Rng, day.TotalKcal()/target)
		}
		days = append(days, day)
		_ = bar.Add(1)
	}

	utils.Log.WithFields(logrus.Fields{
		"user":    userID,
		"pattern": pattern.Name,
		"days":    len(days),
	}).Debug("simulated user history")

	return History{UserID: userID, Pattern: pattern.Name, Profile: profile, Days: days}
}

// Run generates histories and persists them to store.
func (s *Simulator) Run(ctx context.Context, store repositories.HistoryStore, userIDs []string) ([]History, error) {
	histories, err := s.Generate(userIDs)
	if err != nil {
		return nil, err
	}
	for _, h := range histories {
		if err := store.Save(ctx, h.UserID, h.Profile); err != nil {
			return nil, fmt.Errorf("saving profile for %s: %w", h.UserID, err)
		}
		if err := store.BulkCreate(ctx, h.UserID, h.Days); err != nil {
			return nil, fmt.Errorf("saving days for %s: %w", h.UserID, err)
		}
	}
	utils.Log.Infof("Simulation completed: %d users stored", len(histories))
	return histories, nil
}
