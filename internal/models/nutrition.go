package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type FoodIntake struct {
	Food string `bson:"food" json:"food"`
	Time string `bson:"time" json:"time"`
	Date string `bson:"date" json:"date"`
}

type Macros struct {
	Protein float64 `bson:"protein" json:"protein"`
	Carbs   float64 `bson:"carbs" json:"carbs"`
	Fats    float64 `bson:"fats" json:"fats"`
	Fiber   float64 `bson:"fiber" json:"fiber"`
}

type MealMacros struct {
	Protein float64 `bson:"protein" json:"protein"`
	Carbs   float64 `bson:"carbs" json:"carbs"`
	Fats    float64 `bson:"fats" json:"fats"`
}

// MealAnalysis is used both for the whole meal and for each dish in it.
type MealAnalysis struct {
	Name     string     `bson:"name" json:"name"`
	Calories float64    `bson:"calories" json:"calories"`
	Macros   MealMacros `bson:"macros" json:"macros"`
}

type NutritionAnalysis struct {
	TotalCalories   float64        `bson:"total_calories" json:"totalCalories"`
	Macros          Macros         `bson:"macros" json:"macros"`
	Meal            MealAnalysis   `bson:"meal" json:"meal"`
	Foods           []MealAnalysis `bson:"foods" json:"foods"`
	Recommendations []string       `bson:"recommendations,omitempty" json:"recommendations,omitempty"`
}

type NutritionEntry struct {
	ID         bson.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID     bson.ObjectID     `bson:"user_id" json:"userId"`
	FoodIntake FoodIntake        `bson:"food_intake" json:"foodIntake"`
	Analysis   NutritionAnalysis `bson:"analysis" json:"analysis"`
	CreatedAt  time.Time         `bson:"created_at" json:"createdAt"`
}

// NutritionStats aggregates every entry a user has ever logged.
type NutritionStats struct {
	Count           int64   `bson:"count" json:"count"`
	AverageCalories float64 `bson:"average_calories" json:"averageCalories"`
	AverageMacros   Macros  `bson:"average_macros" json:"averageMacros"`
}
