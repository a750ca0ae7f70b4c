package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"fit1-backend/internal/database"
	"fit1-backend/internal/models"
)

type WeightRepo struct {
	collection
}

func NewWeightRepo(pool *database.Pool) *WeightRepo {
	return &WeightRepo{collection{pool: pool, name: "weight_entries"}}
}

func (r *WeightRepo) Create(ctx context.Context, entry *models.WeightEntry) error {
	coll, err := r.get(ctx)
	if err != nil {
		return err
	}
	entry.ID = bson.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	if _, err := coll.InsertOne(ctx, entry); err != nil {
		return storageErr("insert weight entry", err)
	}
	return nil
}

// Recent returns up to limit entries dated on or before date, newest first.
func (r *WeightRepo) Recent(ctx context.Context, userID bson.ObjectID, date string, limit int64) ([]models.WeightEntry, error) {
	coll, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := coll.Find(ctx, bson.M{"user_id": userID, "date": bson.M{"$lte": date}}, opts)
	if err != nil {
		return nil, storageErr("find weight entries", err)
	}
	entries := []models.WeightEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, storageErr("decode weight entries", err)
	}
	return entries, nil
}

// EnsureIndexes creates necessary indexes for the weight_entries collection
func (r *WeightRepo) EnsureIndexes(ctx context.Context) error {
	coll, err := r.get(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
	})
	return err
}
