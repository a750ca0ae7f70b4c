package enrichment

import (
	"context"
	"log"
	"time"

	"fit1-backend/internal/models"
)

const (
	DomainNutrition = "nutrition"
	DomainWater     = "water"
	DomainWeight    = "weight"
	DomainSleep     = "sleep"
)

// FallbackFeedback is returned whenever coaching text cannot be generated.
const FallbackFeedback = "Great job tracking your progress! Stay consistent and keep building healthy habits."

// DefaultWaterGoal applies when the user has no computed water target.
const DefaultWaterGoal = 2000

type FoodRequest struct {
	Intake  models.FoodIntake `json:"intake"`
	Profile *models.Profile   `json:"profile,omitempty"`
}

// WaterRequest carries the new intake and what was already logged that day.
type WaterRequest struct {
	Intake  models.WaterIntake   `json:"intake"`
	Earlier []models.WaterIntake `json:"earlierToday"`
	Goal    float64              `json:"goal"`
}

type FeedbackRequest struct {
	Domain  string         `json:"domain"`
	Entry   interface{}    `json:"entry"`
	Profile models.Profile `json:"profile"`
}

// Strategy produces analyses for tracking entries.
type Strategy interface {
	AnalyzeFood(ctx context.Context, req FoodRequest) (models.NutritionAnalysis, error)
	AnalyzeWater(ctx context.Context, req WaterRequest) (models.WaterAnalysis, error)
	CalculateMetrics(ctx context.Context, profile models.Profile) (models.DerivedMetrics, error)
	Feedback(ctx context.Context, req FeedbackRequest) (string, error)
}

// Enricher tries the remote strategy under a timeout and falls back to the
// local one on any failure. Results are always rounded and clamped, so
// callers never see an error or an out-of-range number.
type Enricher struct {
	remote  Strategy
	local   LocalStrategy
	timeout time.Duration
}

// NewEnricher accepts a nil remote, in which case only local formulas are used.
func NewEnricher(remote Strategy, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Enricher{remote: remote, timeout: timeout}
}

func (e *Enricher) AnalyzeFood(ctx context.Context, req FoodRequest) models.NutritionAnalysis {
	if e.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, e.timeout)
		analysis, err := e.remote.AnalyzeFood(rctx, req)
		cancel()
		if err == nil {
			return ClampNutrition(analysis)
		}
		logFallback("food analysis", err)
	}
	analysis, _ := e.local.AnalyzeFood(ctx, req)
	return ClampNutrition(analysis)
}

func (e *Enricher) AnalyzeWater(ctx context.Context, req WaterRequest) models.WaterAnalysis {
	if req.Goal <= 0 {
		req.Goal = DefaultWaterGoal
	}
	if e.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, e.timeout)
		analysis, err := e.remote.AnalyzeWater(rctx, req)
		cancel()
		if err == nil {
			return ClampWater(analysis)
		}
		logFallback("water analysis", err)
	}
	analysis, _ := e.local.AnalyzeWater(ctx, req)
	return ClampWater(analysis)
}

func (e *Enricher) CalculateMetrics(ctx context.Context, profile models.Profile) models.DerivedMetrics {
	if e.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, e.timeout)
		metrics, err := e.remote.CalculateMetrics(rctx, profile)
		cancel()
		if err == nil {
			return ClampMetrics(metrics)
		}
		logFallback("metric calculation", err)
	}
	metrics, _ := e.local.CalculateMetrics(ctx, profile)
	return ClampMetrics(metrics)
}

func (e *Enricher) Feedback(ctx context.Context, req FeedbackRequest) string {
	if e.remote == nil {
		return FallbackFeedback
	}
	rctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	text, err := e.remote.Feedback(rctx, req)
	if err != nil || text == "" {
		if err != nil {
			logFallback(req.Domain+" feedback", err)
		}
		return FallbackFeedback
	}
	return text
}

func logFallback(op string, err error) {
	log.Printf("⚠️  %s fell back to local calculation: %v", op, err)
}
