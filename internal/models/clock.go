package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseClock converts "HH:MM" into decimal hours, e.g. "18:30" -> 18.5.
func ParseClock(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return float64(h) + float64(m)/60, nil
}

// FormatClock renders decimal hours as "HH:MM", wrapping past midnight.
func FormatClock(hours float64) string {
	total := int(math.Round(hours * 60))
	total = ((total % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func FormatWindow(start, end float64) string {
	return FormatClock(start) + "-" + FormatClock(end)
}

func ClockOf(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}
