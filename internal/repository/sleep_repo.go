package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"fit1-backend/internal/database"
	"fit1-backend/internal/models"
)

type SleepRepo struct {
	collection
}

func NewSleepRepo(pool *database.Pool) *SleepRepo {
	return &SleepRepo{collection{pool: pool, name: "sleep_entries"}}
}

func (r *SleepRepo) Create(ctx context.Context, entry *models.SleepEntry) error {
	coll, err := r.get(ctx)
	if err != nil {
		return err
	}
	entry.ID = bson.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	if _, err := coll.InsertOne(ctx, entry); err != nil {
		return storageErr("insert sleep entry", err)
	}
	return nil
}

func (r *SleepRepo) FindByDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.SleepEntry, error) {
	coll, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.M{"user_id": userID, "date": date})
	if err != nil {
		return nil, storageErr("find sleep entries", err)
	}
	entries := []models.SleepEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, storageErr("decode sleep entries", err)
	}
	return entries, nil
}

// EnsureIndexes creates necessary indexes for the sleep_entries collection
func (r *SleepRepo) EnsureIndexes(ctx context.Context) error {
	coll, err := r.get(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
	})
	return err
}
