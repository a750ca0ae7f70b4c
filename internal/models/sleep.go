package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SleepEntry is keyed to the calendar date the user woke up on.
type SleepEntry struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id" json:"userId"`
	Date      string        `bson:"date" json:"date"`
	StartTime time.Time     `bson:"start_time" json:"startTime"`
	EndTime   time.Time     `bson:"end_time" json:"endTime"`
	Duration  int           `bson:"duration" json:"duration"`
	Cycles    int           `bson:"cycles" json:"cycles"`
	Quality   int           `bson:"quality" json:"quality"`
	Notes     string        `bson:"notes" json:"notes"`
	Tags      []string      `bson:"tags" json:"tags"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}
