package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fit1-backend/internal/apperr"
	"fit1-backend/internal/enrichment"
	"fit1-backend/internal/models"
)

type nutritionResponse struct {
	Success    bool                  `json:"success"`
	Data       models.NutritionEntry `json:"data"`
	AIFeedback string                `json:"aiFeedback"`
}

func TestNutritionAnalyzeWithoutRemoteEnrichment(t *testing.T) {
	env := newTestEnv()
	env.nutrition.On("Create", mock.Anything, mock.AnythingOfType("*models.NutritionEntry")).Return(nil)

	rec := env.do(http.MethodPost, "/nutrition/analyze", `{"food":"2 eggs and toast","time":"08:00","date":"2024-01-15"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp nutritionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, env.userID, resp.Data.UserID)
	assert.Equal(t, models.FoodIntake{Food: "2 eggs and toast", Time: "08:00", Date: "2024-01-15"}, resp.Data.FoodIntake)
	assert.Greater(t, resp.Data.Analysis.TotalCalories, 0.0)
	assert.Greater(t, resp.Data.Analysis.Macros.Protein, 0.0)
	assert.Len(t, resp.Data.Analysis.Foods, 2)
	assert.Equal(t, "Breakfast", resp.Data.Analysis.Meal.Name)
	assert.Empty(t, resp.AIFeedback, "no profile means no feedback")
	env.nutrition.AssertExpectations(t)
}

func TestNutritionAnalyzeWithStoredProfileAddsFeedback(t *testing.T) {
	env := newTestEnv().withDetails(sampleDetails())
	env.nutrition.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec := env.do(http.MethodPost, "/nutrition/analyze", `{"food":"oatmeal","time":"07:30","date":"2024-01-15"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp nutritionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, enrichment.FallbackFeedback, resp.AIFeedback)
}

func TestNutritionAnalyzePersistenceFailure(t *testing.T) {
	env := newTestEnv()
	env.nutrition.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("insert nutrition entry: %w: %w", apperr.ErrPersistence, errors.New("write concern")))

	rec := env.do(http.MethodPost, "/nutrition/analyze", `{"food":"rice","time":"12:00","date":"2024-01-15"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"insert nutrition entry: storage failure: write concern"}`, rec.Body.String())
}

func TestNutritionAnalyzeValidation(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/nutrition/analyze", `{"food":"  ","time":"8pm","date":"15/01/2024"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Success bool                    `json:"success"`
		Error   string                  `json:"error"`
		Details []apperr.FieldViolation `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid data", resp.Error)

	fields := map[string]string{}
	for _, v := range resp.Details {
		fields[v.Field] = v.Rule
	}
	assert.Equal(t, map[string]string{"food": "notblank", "time": "timeofday", "date": "isodate"}, fields)
	env.nutrition.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNutritionHistorySortsAndSums(t *testing.T) {
	env := newTestEnv()
	entry := func(at string, kcal float64) models.NutritionEntry {
		return models.NutritionEntry{
			UserID:     env.userID,
			FoodIntake: models.FoodIntake{Food: "x", Time: at, Date: "2024-01-15"},
			Analysis:   models.NutritionAnalysis{TotalCalories: kcal},
		}
	}
	env.nutrition.On("FindByDate", mock.Anything, env.userID, "2024-01-15").
		Return([]models.NutritionEntry{entry("19:00", 700), entry("08:00", 350), entry("12:30", 600)}, nil)

	rec := env.do(http.MethodGet, "/nutrition/history?date=2024-01-15", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Date          string                  `json:"date"`
		TotalCalories float64                 `json:"totalCalories"`
		Entries       []models.NutritionEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-01-15", resp.Date)
	assert.Equal(t, 1650.0, resp.TotalCalories)
	require.Len(t, resp.Entries, 3)
	assert.Equal(t, "08:00", resp.Entries[0].FoodIntake.Time)
	assert.Equal(t, "12:30", resp.Entries[1].FoodIntake.Time)
	assert.Equal(t, "19:00", resp.Entries[2].FoodIntake.Time)
}

func TestHistoryDefaultsToTodayUTC(t *testing.T) {
	env := newTestEnv()
	env.nutrition.On("FindByDate", mock.Anything, env.userID, "2024-01-15").Return([]models.NutritionEntry{}, nil)

	rec := env.do(http.MethodGet, "/nutrition/history", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"date":"2024-01-15","totalCalories":0,"entries":[]}`, rec.Body.String())
}

func TestHistoryRejectsBadDate(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/water/history?date=yesterday", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.water.AssertNotCalled(t, "FindByDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestNutritionRecentAndStats(t *testing.T) {
	env := newTestEnv()
	env.nutrition.On("Recent", mock.Anything, env.userID, "2024-01-10", int64(historyLimit)).
		Return([]models.NutritionEntry{{FoodIntake: models.FoodIntake{Date: "2024-01-10"}}}, nil)
	env.nutrition.On("Stats", mock.Anything, env.userID).Return(&models.NutritionStats{
		Count:           4,
		AverageCalories: 512.5,
		AverageMacros:   models.Macros{Protein: 20, Carbs: 60, Fats: 15, Fiber: 6},
	}, nil)

	rec := env.do(http.MethodGet, "/nutrition/recent?date=2024-01-10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"date":"2024-01-10"`)

	rec = env.do(http.MethodGet, "/nutrition/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"count":4,"averageCalories":512.5,
		"averageMacros":{"protein":20,"carbs":60,"fats":15,"fiber":6}}`, rec.Body.String())
}

func TestWaterHistorySortsAndSums(t *testing.T) {
	env := newTestEnv()
	env.water.On("FindByDate", mock.Anything, env.userID, "2024-01-15").Return([]models.WaterEntry{
		{UserID: env.userID, Intake: models.WaterIntake{Amount: 500, Type: "water", Time: "14:00", Date: "2024-01-15"}},
		{UserID: env.userID, Intake: models.WaterIntake{Amount: 300, Type: "water", Time: "07:00", Date: "2024-01-15"}},
	}, nil)

	rec := env.do(http.MethodGet, "/water/history?date=2024-01-15", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success     bool                `json:"success"`
		TotalIntake float64             `json:"totalIntake"`
		Entries     []models.WaterEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 800.0, resp.TotalIntake)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "07:00", resp.Entries[0].Intake.Time)
	assert.Equal(t, "14:00", resp.Entries[1].Intake.Time)
}

func TestWaterTrackAnalysesTheWholeDay(t *testing.T) {
	details := sampleDetails()
	details.WaterIntake = 2500
	env := newTestEnv().withDetails(details)
	env.water.On("FindByDate", mock.Anything, env.userID, "2024-01-15").Return([]models.WaterEntry{
		{Intake: models.WaterIntake{Amount: 300, Type: "water", Time: "07:00", Date: "2024-01-15"}},
	}, nil)
	var stored *models.WaterEntry
	env.water.On("Create", mock.Anything, mock.AnythingOfType("*models.WaterEntry")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.WaterEntry) }).
		Return(nil)

	rec := env.do(http.MethodPost, "/water/track", `{"amount":500,"time":"14:00","date":"2024-01-15"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, stored)
	assert.Equal(t, "water", stored.Intake.Type)
	assert.Equal(t, 800.0, stored.Analysis.TotalIntake)
	assert.Equal(t, 2500.0, stored.Analysis.Goal)
	assert.Equal(t, 32.0, stored.Analysis.CompletionRate)
	assert.Equal(t, models.IntakePattern{Morning: 300, Afternoon: 500}, stored.Analysis.IntakePattern)
	assert.Equal(t, models.HydrationInsufficient, stored.Analysis.HydrationStatus)
	assert.Contains(t, rec.Body.String(), enrichment.FallbackFeedback)
}

func TestWaterTrackDefaultGoal(t *testing.T) {
	env := newTestEnv()
	env.water.On("FindByDate", mock.Anything, env.userID, "2024-01-15").Return([]models.WaterEntry{}, nil)
	env.water.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec := env.do(http.MethodPost, "/water/track", `{"amount":250,"type":"sparkling_water","time":"09:15","date":"2024-01-15"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Data models.WaterEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(enrichment.DefaultWaterGoal), resp.Data.Analysis.Goal)
	assert.Equal(t, "sparkling_water", resp.Data.Intake.Type)
	assert.NotContains(t, rec.Body.String(), "aiFeedback")
}

func TestWeightTrackRejectsNegativeWeight(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/weight/track", `{"weight":-5,"date":"2024-01-15"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"invalid data","details":[
		{"field":"weight","rule":"gt","message":"weight must be greater than 0"}]}`, rec.Body.String())
	env.weight.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, env.users.weights)
}

func TestWeightTrackComputesBMIAndUpdatesProfile(t *testing.T) {
	env := newTestEnv().withDetails(sampleDetails())
	env.weight.On("Create", mock.Anything, mock.AnythingOfType("*models.WeightEntry")).Return(nil)

	rec := env.do(http.MethodPost, "/weight/track", `{"weight":81,"date":"2024-01-15","notes":"after run"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Data       models.WeightEntry `json:"data"`
		AIFeedback string             `json:"aiFeedback"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.BMI)
	assert.Equal(t, 25.0, *resp.Data.BMI)
	assert.Equal(t, "after run", resp.Data.Notes)
	assert.Equal(t, []float64{81}, env.users.weights)
	assert.Equal(t, enrichment.FallbackFeedback, resp.AIFeedback)
}

func TestWeightHistoryTrend(t *testing.T) {
	env := newTestEnv()
	env.weight.On("Recent", mock.Anything, env.userID, "2024-01-15", int64(historyLimit)).Return([]models.WeightEntry{
		{Date: "2024-01-15", Weight: 79},
		{Date: "2024-01-08", Weight: 80},
		{Date: "2024-01-01", Weight: 81},
	}, nil)

	rec := env.do(http.MethodGet, "/weight/history?date=2024-01-15", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Entries []models.WeightEntry `json:"entries"`
		models.WeightTrend
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Entries, 3)
	assert.Equal(t, 80.0, resp.AverageWeight)
	assert.Equal(t, -2.0, resp.WeightChange)
	assert.Equal(t, models.TrendDown, resp.TrendDirection)
}

func TestWeightHistoryEmptyOmitsTrend(t *testing.T) {
	env := newTestEnv()
	env.weight.On("Recent", mock.Anything, env.userID, "2024-01-15", int64(historyLimit)).Return([]models.WeightEntry{}, nil)

	rec := env.do(http.MethodGet, "/weight/history", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"date":"2024-01-15","entries":[]}`, rec.Body.String())
}

func TestSleepTrackAndHistory(t *testing.T) {
	env := newTestEnv()
	var stored *models.SleepEntry
	env.sleep.On("Create", mock.Anything, mock.AnythingOfType("*models.SleepEntry")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.SleepEntry) }).
		Return(nil)

	rec := env.do(http.MethodPost, "/sleep/track",
		`{"startTime":"2024-01-14T23:00:00Z","endTime":"2024-01-15T06:30:00Z","quality":7,"tags":[" restless "]}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, stored)
	assert.Equal(t, "2024-01-15", stored.Date)
	assert.Equal(t, 450, stored.Duration)
	assert.Equal(t, 5, stored.Cycles)
	assert.Equal(t, []string{"restless"}, stored.Tags)

	nap := models.SleepEntry{
		Date:      "2024-01-15",
		StartTime: time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		Duration:  30,
	}
	env.sleep.On("FindByDate", mock.Anything, env.userID, "2024-01-15").Return([]models.SleepEntry{nap, *stored}, nil)

	rec = env.do(http.MethodGet, "/sleep/history?date=2024-01-15", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		TotalMinutes int                 `json:"totalMinutes"`
		Entries      []models.SleepEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 480, resp.TotalMinutes)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, 450, resp.Entries[0].Duration, "the night that began the previous day comes first")
}

func TestSleepTrackRejectsInvertedWindow(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/sleep/track",
		`{"startTime":"2024-01-15T06:30:00Z","endTime":"2024-01-14T23:00:00Z","quality":7}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rule":"gtfield"`)
}

func TestTrackingUnknownUser(t *testing.T) {
	env := newTestEnv()
	delete(env.users.users, env.userID)

	rec := env.do(http.MethodPost, "/water/track", `{"amount":250,"time":"09:15","date":"2024-01-15"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"user not found"}`, rec.Body.String())
}

func TestReadRoutesUnknownUser(t *testing.T) {
	routes := []string{
		"/nutrition/history?date=2024-01-15",
		"/nutrition/recent?date=2024-01-15",
		"/nutrition/stats",
		"/water/history?date=2024-01-15",
		"/weight/history?date=2024-01-15",
		"/sleep/history?date=2024-01-15",
	}

	for _, target := range routes {
		t.Run(target, func(t *testing.T) {
			// No store expectations are set, so any query would fail the mock.
			env := newTestEnv()
			delete(env.users.users, env.userID)

			rec := env.do(http.MethodGet, target, "")

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"user not found"}`, rec.Body.String())
		})
	}
}

func TestMalformedBody(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/water/track", `{"amount":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"invalid request body"}`, rec.Body.String())
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv()
	env.resolver = stubResolver{}

	routes := []struct{ method, path string }{
		{http.MethodGet, "/user/details"},
		{http.MethodPut, "/user/details"},
		{http.MethodPost, "/nutrition/analyze"},
		{http.MethodGet, "/nutrition/history"},
		{http.MethodGet, "/nutrition/recent"},
		{http.MethodGet, "/nutrition/stats"},
		{http.MethodPost, "/water/track"},
		{http.MethodGet, "/water/history"},
		{http.MethodPost, "/weight/track"},
		{http.MethodGet, "/weight/history"},
		{http.MethodPost, "/sleep/track"},
		{http.MethodGet, "/sleep/history"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := env.do(rt.method, rt.path, `{"amount":250,"time":"09:15","date":"2024-01-15"}`)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"not authenticated"}`, rec.Body.String())
		})
	}
	env.water.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHealth(t *testing.T) {
	env := newTestEnv()
	env.resolver = stubResolver{}

	rec := env.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"fit1-backend"}`, rec.Body.String())
}

