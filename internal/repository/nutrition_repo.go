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

type NutritionRepo struct {
	collection
}

func NewNutritionRepo(pool *database.Pool) *NutritionRepo {
	return &NutritionRepo{collection{pool: pool, name: "nutrition_entries"}}
}

// Create appends an entry. Entries are never updated afterwards.
func (r *NutritionRepo) Create(ctx context.Context, entry *models.NutritionEntry) error {
	coll, err := r.get(ctx)
	if err != nil {
		return err
	}
	entry.ID = bson.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	if _, err := coll.InsertOne(ctx, entry); err != nil {
		return storageErr("insert nutrition entry", err)
	}
	return nil
}

// FindByDate returns every entry logged for the calendar date.
func (r *NutritionRepo) FindByDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.NutritionEntry, error) {
	coll, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.M{"user_id": userID, "food_intake.date": date})
	if err != nil {
		return nil, storageErr("find nutrition entries", err)
	}
	entries := []models.NutritionEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, storageErr("decode nutrition entries", err)
	}
	return entries, nil
}

// Recent returns up to limit entries dated on or before date, newest first.
func (r *NutritionRepo) Recent(ctx context.Context, userID bson.ObjectID, date string, limit int64) ([]models.NutritionEntry, error) {
	coll, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "food_intake.date", Value: -1}, {Key: "food_intake.time", Value: -1}}).
		SetLimit(limit)
	cursor, err := coll.Find(ctx, bson.M{"user_id": userID, "food_intake.date": bson.M{"$lte": date}}, opts)
	if err != nil {
		return nil, storageErr("find recent nutrition entries", err)
	}
	entries := []models.NutritionEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, storageErr("decode nutrition entries", err)
	}
	return entries, nil
}

// Stats averages over the user's whole history.
func (r *NutritionRepo) Stats(ctx context.Context, userID bson.ObjectID) (*models.NutritionStats, error) {
	coll, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	avg := func(field string) bson.D { return bson.D{{Key: "$avg", Value: field}} }
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user_id", Value: userID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "average_calories", Value: avg("$analysis.total_calories")},
			{Key: "protein", Value: avg("$analysis.macros.protein")},
			{Key: "carbs", Value: avg("$analysis.macros.carbs")},
			{Key: "fats", Value: avg("$analysis.macros.fats")},
			{Key: "fiber", Value: avg("$analysis.macros.fiber")},
		}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storageErr("aggregate nutrition stats", err)
	}
	var rows []struct {
		Count           int64   `bson:"count"`
		AverageCalories float64 `bson:"average_calories"`
		Protein         float64 `bson:"protein"`
		Carbs           float64 `bson:"carbs"`
		Fats            float64 `bson:"fats"`
		Fiber           float64 `bson:"fiber"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, storageErr("decode nutrition stats", err)
	}
	if len(rows) == 0 {
		return &models.NutritionStats{}, nil
	}
	row := rows[0]
	return &models.NutritionStats{
		Count:           row.Count,
		AverageCalories: row.AverageCalories,
		AverageMacros: models.Macros{
			Protein: row.Protein,
			Carbs:   row.Carbs,
			Fats:    row.Fats,
			Fiber:   row.Fiber,
		},
	}, nil
}

// EnsureIndexes creates necessary indexes for the nutrition_entries collection
func (r *NutritionRepo) EnsureIndexes(ctx context.Context) error {
	coll, err := r.get(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "food_intake.date", Value: -1}},
	})
	return err
}
