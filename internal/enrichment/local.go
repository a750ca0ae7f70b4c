package enrichment

import (
	"context"
	"fmt"
	"math"

	"fit1-backend/internal/models"
	"fit1-backend/internal/tracking"
)

var activityMultipliers = map[string]float64{
	models.ActivitySedentary:        1.2,
	models.ActivityLightlyActive:    1.375,
	models.ActivityModeratelyActive: 1.55,
	models.ActivityVeryActive:       1.725,
	models.ActivityExtremelyActive:  1.9,
}

var goalAdjustments = map[string]float64{
	models.GoalWeightLoss:     -0.20,
	models.GoalMuscleGain:     0.10,
	models.GoalMaintenance:    0,
	models.GoalGeneralFitness: 0,
}

// WaterPerKg is the daily water target in mL per kilogram of body weight.
const WaterPerKg = 33

// LocalStrategy computes every analysis from fixed formulas and tables.
// It never fails and is safe to use as a zero value.
type LocalStrategy struct{}

// BasalMetabolicRate uses the Mifflin-St Jeor equation. "other" takes the
// midpoint of the male and female constants.
func BasalMetabolicRate(p models.Profile) float64 {
	base := 10*p.Weight + 6.25*p.Height - 5*p.Age
	switch p.Gender {
	case models.GenderMale:
		return base + 5
	case models.GenderFemale:
		return base - 161
	default:
		return base - 78
	}
}

func SleepTargetHours(age float64) float64 {
	switch {
	case age <= 13:
		return 10
	case age <= 17:
		return 9
	case age <= 64:
		return 8
	default:
		return 7
	}
}

// Metrics is the pure formula behind CalculateMetrics.
func Metrics(p models.Profile) models.DerivedMetrics {
	multiplier, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		multiplier = activityMultipliers[models.ActivitySedentary]
	}
	tdee := BasalMetabolicRate(p) * multiplier
	calories := tdee * (1 + goalAdjustments[p.Goal])

	return ClampMetrics(models.DerivedMetrics{
		DailyCalories: math.Round(calories),
		WaterIntake:   math.Round(p.Weight * WaterPerKg),
		SleepDuration: math.Round(SleepTargetHours(p.Age)),
	})
}

func (LocalStrategy) CalculateMetrics(_ context.Context, p models.Profile) (models.DerivedMetrics, error) {
	return Metrics(p), nil
}

func (LocalStrategy) AnalyzeFood(_ context.Context, req FoodRequest) (models.NutritionAnalysis, error) {
	return EstimateNutrition(req.Intake, req.Profile), nil
}

func (LocalStrategy) AnalyzeWater(_ context.Context, req WaterRequest) (models.WaterAnalysis, error) {
	return SummarizeWater(req), nil
}

func (LocalStrategy) Feedback(context.Context, FeedbackRequest) (string, error) {
	return FallbackFeedback, nil
}

// SummarizeWater reduces the day's intakes against the goal.
func SummarizeWater(req WaterRequest) models.WaterAnalysis {
	goal := req.Goal
	if goal <= 0 {
		goal = DefaultWaterGoal
	}

	var pattern models.IntakePattern
	var total float64
	for _, in := range append(append([]models.WaterIntake{}, req.Earlier...), req.Intake) {
		total += in.Amount
		switch h := tracking.HourOf(in.Time); {
		case h >= 0 && h < 12:
			pattern.Morning += in.Amount
		case h >= 12 && h < 17:
			pattern.Afternoon += in.Amount
		default:
			pattern.Evening += in.Amount
		}
	}

	completion := math.Min(100, total/goal*100)
	analysis := models.WaterAnalysis{
		TotalIntake:     total,
		Goal:            goal,
		CompletionRate:  completion,
		IntakePattern:   pattern,
		HydrationStatus: hydrationStatus(completion),
	}
	if remaining := goal - total; remaining > 0 {
		analysis.Recommendations = []string{
			fmt.Sprintf("Drink about %.0f mL more to reach today's goal of %.0f mL.", remaining, goal),
		}
	} else {
		analysis.Recommendations = []string{"You've reached today's hydration goal. Keep sipping steadily."}
	}
	return analysis
}

func hydrationStatus(completion float64) string {
	switch {
	case completion >= 90:
		return models.HydrationOptimal
	case completion >= 60:
		return models.HydrationAdequate
	default:
		return models.HydrationInsufficient
	}
}
