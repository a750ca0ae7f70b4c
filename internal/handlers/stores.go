package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"fit1-backend/internal/enrichment"
	"fit1-backend/internal/identity"
	"fit1-backend/internal/models"
)

type UserStore interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	UpsertFromProvider(ctx context.Context, pu identity.ProviderUser) (*models.User, bool, error)
	ReplaceDetails(ctx context.Context, id bson.ObjectID, details models.UserDetails) (*models.User, error)
	UpdateCurrentWeight(ctx context.Context, id bson.ObjectID, weight float64) error
}

type NutritionStore interface {
	Create(ctx context.Context, entry *models.NutritionEntry) error
	FindByDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.NutritionEntry, error)
	Recent(ctx context.Context, userID bson.ObjectID, date string, limit int64) ([]models.NutritionEntry, error)
	Stats(ctx context.Context, userID bson.ObjectID) (*models.NutritionStats, error)
}

type WaterStore interface {
	Create(ctx context.Context, entry *models.WaterEntry) error
	FindByDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.WaterEntry, error)
}

type WeightStore interface {
	Create(ctx context.Context, entry *models.WeightEntry) error
	Recent(ctx context.Context, userID bson.ObjectID, date string, limit int64) ([]models.WeightEntry, error)
}

type SleepStore interface {
	Create(ctx context.Context, entry *models.SleepEntry) error
	FindByDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.SleepEntry, error)
}

// Enrichment is satisfied by *enrichment.Enricher. None of its methods fail.
type Enrichment interface {
	AnalyzeFood(ctx context.Context, req enrichment.FoodRequest) models.NutritionAnalysis
	AnalyzeWater(ctx context.Context, req enrichment.WaterRequest) models.WaterAnalysis
	CalculateMetrics(ctx context.Context, profile models.Profile) models.DerivedMetrics
	Feedback(ctx context.Context, req enrichment.FeedbackRequest) string
}

type SessionIssuer interface {
	Issue(userID bson.ObjectID) (token string, tokenID string, err error)
}

type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}
