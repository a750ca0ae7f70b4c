package enrichment

import (
	"math"

	"fit1-backend/internal/models"
)

// Safety ranges applied to every analysis, remote or local.
const (
	MaxDailyCalories = 5000
	MaxWaterTarget   = 5000
	MaxSleepHours    = 24

	maxMealCalories = 10000
	maxMacroGrams   = 1000
	maxWaterTotal   = 20000
)

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	v = math.Round(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampMetrics(m models.DerivedMetrics) models.DerivedMetrics {
	return models.DerivedMetrics{
		DailyCalories: clamp(m.DailyCalories, 1, MaxDailyCalories),
		WaterIntake:   clamp(m.WaterIntake, 1, MaxWaterTarget),
		SleepDuration: clamp(m.SleepDuration, 1, MaxSleepHours),
	}
}

func clampMeal(m models.MealAnalysis) models.MealAnalysis {
	m.Calories = clamp(m.Calories, 0, maxMealCalories)
	m.Macros.Protein = clamp(m.Macros.Protein, 0, maxMacroGrams)
	m.Macros.Carbs = clamp(m.Macros.Carbs, 0, maxMacroGrams)
	m.Macros.Fats = clamp(m.Macros.Fats, 0, maxMacroGrams)
	return m
}

func ClampNutrition(a models.NutritionAnalysis) models.NutritionAnalysis {
	a.TotalCalories = clamp(a.TotalCalories, 0, maxMealCalories)
	a.Macros.Protein = clamp(a.Macros.Protein, 0, maxMacroGrams)
	a.Macros.Carbs = clamp(a.Macros.Carbs, 0, maxMacroGrams)
	a.Macros.Fats = clamp(a.Macros.Fats, 0, maxMacroGrams)
	a.Macros.Fiber = clamp(a.Macros.Fiber, 0, maxMacroGrams)
	a.Meal = clampMeal(a.Meal)
	foods := make([]models.MealAnalysis, 0, len(a.Foods))
	for _, f := range a.Foods {
		foods = append(foods, clampMeal(f))
	}
	a.Foods = foods
	return a
}

func ClampWater(a models.WaterAnalysis) models.WaterAnalysis {
	a.TotalIntake = clamp(a.TotalIntake, 0, maxWaterTotal)
	a.Goal = clamp(a.Goal, 1, MaxWaterTarget)
	a.CompletionRate = clamp(a.CompletionRate, 0, 100)
	a.IntakePattern.Morning = clamp(a.IntakePattern.Morning, 0, maxWaterTotal)
	a.IntakePattern.Afternoon = clamp(a.IntakePattern.Afternoon, 0, maxWaterTotal)
	a.IntakePattern.Evening = clamp(a.IntakePattern.Evening, 0, maxWaterTotal)
	switch a.HydrationStatus {
	case models.HydrationOptimal, models.HydrationAdequate, models.HydrationInsufficient:
	default:
		a.HydrationStatus = hydrationStatus(a.CompletionRate)
	}
	return a
}
