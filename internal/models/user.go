package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	GoalWeightLoss     = "weight_loss"
	GoalMuscleGain     = "muscle_gain"
	GoalMaintenance    = "maintenance"
	GoalGeneralFitness = "general_fitness"
)

const (
	ActivitySedentary        = "sedentary"
	ActivityLightlyActive    = "lightly_active"
	ActivityModeratelyActive = "moderately_active"
	ActivityVeryActive       = "very_active"
	ActivityExtremelyActive  = "extremely_active"
)

type User struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProviderID string        `bson:"provider_id" json:"-"`
	Email      string        `bson:"email" json:"email"`
	Name       string        `bson:"name" json:"name"`
	Picture    string        `bson:"picture,omitempty" json:"picture,omitempty"`
	Details    *UserDetails  `bson:"user_details,omitempty" json:"userDetails"`
	LastLogin  time.Time     `bson:"last_login" json:"lastLogin"`
	CreatedAt  time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Profile is the validated body-profile part of UserDetails.
type Profile struct {
	Height        float64 `bson:"height" json:"height"`
	Weight        float64 `bson:"weight" json:"weight"`
	Age           float64 `bson:"age" json:"age"`
	Gender        string  `bson:"gender" json:"gender"`
	Goal          string  `bson:"goal" json:"goal"`
	ActivityLevel string  `bson:"activity_level" json:"activityLevel"`
}

// DerivedMetrics are the daily targets computed from a Profile.
type DerivedMetrics struct {
	DailyCalories float64 `bson:"daily_calories" json:"dailyCalories"`
	WaterIntake   float64 `bson:"water_intake" json:"waterIntake"`
	SleepDuration float64 `bson:"sleep_duration" json:"sleepDuration"`
}

// UserDetails is stored as one sub-document and replaced wholesale.
type UserDetails struct {
	Profile        `bson:",inline"`
	DerivedMetrics `bson:",inline"`
}
