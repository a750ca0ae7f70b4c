package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

type Measurements struct {
	Waist  *float64 `bson:"waist,omitempty" json:"waist,omitempty"`
	Chest  *float64 `bson:"chest,omitempty" json:"chest,omitempty"`
	Arms   *float64 `bson:"arms,omitempty" json:"arms,omitempty"`
	Thighs *float64 `bson:"thighs,omitempty" json:"thighs,omitempty"`
	Hips   *float64 `bson:"hips,omitempty" json:"hips,omitempty"`
}

type WeightEntry struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       bson.ObjectID `bson:"user_id" json:"userId"`
	Date         string        `bson:"date" json:"date"`
	Weight       float64       `bson:"weight" json:"weight"`
	BodyFat      *float64      `bson:"body_fat,omitempty" json:"bodyFat,omitempty"`
	BMI          *float64      `bson:"bmi,omitempty" json:"bmi,omitempty"`
	Notes        string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Measurements *Measurements `bson:"measurements,omitempty" json:"measurements,omitempty"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
}

// WeightTrend summarises a run of entries, oldest to newest.
type WeightTrend struct {
	AverageWeight   float64 `json:"averageWeight"`
	WeightChange    float64 `json:"weightChange"`
	WeightChangePct float64 `json:"weightChangePct"`
	TrendDirection  string  `json:"trendDirection"`
}
