package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"fit1-backend/internal/database"
	"fit1-backend/internal/models"
)

type WaterRepo struct {
	collection
}

func NewWaterRepo(pool *database.Pool) *WaterRepo {
	return &WaterRepo{collection{pool: pool, name: "water_entries"}}
}

func (r *WaterRepo) Create(ctx context.Context, entry *models.WaterEntry) error {
	coll, err := r.get(ctx)
	if err != nil {
		return err
	}
	entry.ID = bson.NewObjectID()
	entry.Timestamp = time.Now().UTC()
	if _, err := coll.InsertOne(ctx, entry); err != nil {
		return storageErr("insert water entry", err)
	}
	return nil
}

// FindByDate matches the submitted calendar date, the same rule the
// nutrition domain uses.
func (r *WaterRepo) FindByDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.WaterEntry, error) {
	coll, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.M{"user_id": userID, "intake.date": date})
	if err != nil {
		return nil, storageErr("find water entries", err)
	}
	entries := []models.WaterEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, storageErr("decode water entries", err)
	}
	return entries, nil
}

// EnsureIndexes creates necessary indexes for the water_entries collection
func (r *WaterRepo) EnsureIndexes(ctx context.Context) error {
	coll, err := r.get(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "intake.date", Value: 1}},
	})
	return err
}
