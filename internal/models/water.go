package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	WaterTypePlain     = "water"
	WaterTypeSparkling = "sparkling_water"
	WaterTypeFlavored  = "flavored_water"
)

const (
	HydrationOptimal      = "optimal"
	HydrationAdequate     = "adequate"
	HydrationInsufficient = "insufficient"
)

type WaterIntake struct {
	Amount float64 `bson:"amount" json:"amount"`
	Type   string  `bson:"type" json:"type"`
	Time   string  `bson:"time" json:"time"`
	Date   string  `bson:"date" json:"date"`
}

type IntakePattern struct {
	Morning   float64 `bson:"morning" json:"morning"`
	Afternoon float64 `bson:"afternoon" json:"afternoon"`
	Evening   float64 `bson:"evening" json:"evening"`
}

type WaterAnalysis struct {
	TotalIntake     float64       `bson:"total_intake" json:"totalIntake"`
	Goal            float64       `bson:"goal" json:"goal"`
	CompletionRate  float64       `bson:"completion_rate" json:"completionRate"`
	IntakePattern   IntakePattern `bson:"intake_pattern" json:"intakePattern"`
	Recommendations []string      `bson:"recommendations,omitempty" json:"recommendations,omitempty"`
	HydrationStatus string        `bson:"hydration_status" json:"hydrationStatus"`
}

type WaterEntry struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id" json:"userId"`
	Intake    WaterIntake   `bson:"intake" json:"intake"`
	Analysis  WaterAnalysis `bson:"analysis" json:"analysis"`
	Timestamp time.Time     `bson:"timestamp" json:"timestamp"`
}
