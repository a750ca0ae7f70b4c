package tracking

import (
	"math"
	"time"

	"fit1-backend/internal/models"
)

// TrendThresholdKg is the smallest change reported as up or down.
const TrendThresholdKg = 0.5

// SleepCycleMinutes is the length of an average sleep cycle.
const SleepCycleMinutes = 90

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateBMI expects weight in kilograms and height in centimeters.
func CalculateBMI(weightKg, heightCm float64) (float64, bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	h := heightCm / 100
	return round2(weightKg / (h * h)), true
}

func WeightChange(current, previous float64) (change, changePct float64) {
	change = round2(current - previous)
	if previous == 0 {
		return change, 0
	}
	return change, round2(change / previous * 100)
}

func TrendDirection(current, previous float64) string {
	change := current - previous
	if math.Abs(change) < TrendThresholdKg {
		return models.TrendStable
	}
	if change > 0 {
		return models.TrendUp
	}
	return models.TrendDown
}

// SummarizeWeights expects entries newest first, as returned by the trailing
// history query.
func SummarizeWeights(entries []models.WeightEntry) *models.WeightTrend {
	if len(entries) == 0 {
		return nil
	}
	var sum float64
	for _, e := range entries {
		sum += e.Weight
	}
	newest := entries[0].Weight
	oldest := entries[len(entries)-1].Weight
	change, pct := WeightChange(newest, oldest)
	return &models.WeightTrend{
		AverageWeight:   round2(sum / float64(len(entries))),
		WeightChange:    change,
		WeightChangePct: pct,
		TrendDirection:  TrendDirection(newest, oldest),
	}
}

// SleepDuration is the whole number of minutes between start and end.
func SleepDuration(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

func SleepCycles(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return minutes / SleepCycleMinutes
}
