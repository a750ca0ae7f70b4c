package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"fit1-backend/internal/models"
)

var (
	ErrEmptyResponse     = errors.New("empty response from language model")
	ErrMalformedResponse = errors.New("malformed response from language model")
)

const (
	nutritionistPrompt = "You are a precise nutritionist AI that analyzes food intake and provides detailed nutritional information. Always respond with valid JSON matching the requested shape."
	hydrationPrompt    = "You are a hydration coach AI. Always respond with valid JSON matching the requested shape."
	metricsPrompt      = "You are a fitness and nutrition expert. Always respond with valid JSON matching the requested shape."
	coachPrompt        = "You are a supportive fitness coach. Reply with 2-3 short sentences of plain text, no lists and no JSON."
)

// OpenAIStrategy asks a chat-completion model for each analysis.
type OpenAIStrategy struct {
	client *openai.Client
	model  string
}

// NewOpenAIStrategy returns nil when apiKey is empty so callers can pass the
// result straight to NewEnricher.
func NewOpenAIStrategy(apiKey, baseURL, model string) Strategy {
	if apiKey == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIStrategy{client: openai.NewClientWithConfig(cfg), model: model}
}

func (s *OpenAIStrategy) complete(ctx context.Context, system, prompt string, jsonOnly bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	}
	if jsonOnly {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	} else {
		req.Temperature = 0.7
		req.MaxTokens = 150
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

func (s *OpenAIStrategy) completeJSON(ctx context.Context, system, prompt string, out interface{}) error {
	content, err := s.complete(ctx, system, prompt, true)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// nutritionReply uses pointers for the fields that must be present.
type nutritionReply struct {
	TotalCalories   *float64              `json:"totalCalories"`
	Macros          *models.Macros        `json:"macros"`
	Meal            *models.MealAnalysis  `json:"meal"`
	Foods           []models.MealAnalysis `json:"foods"`
	Recommendations []string              `json:"recommendations"`
}

func (s *OpenAIStrategy) AnalyzeFood(ctx context.Context, req FoodRequest) (models.NutritionAnalysis, error) {
	prompt := `Analyze the following food intake and provide detailed nutritional information including calories and macros.
Reply with a JSON object of this shape:
{
  "totalCalories": number,
  "macros": {"protein": number, "carbs": number, "fats": number, "fiber": number},
  "meal": {"name": string, "calories": number, "macros": {"protein": number, "carbs": number, "fats": number}},
  "foods": [{"name": string, "calories": number, "macros": {"protein": number, "carbs": number, "fats": number}}],
  "recommendations": [string]
}
"meal" is the meal of the day, "foods" is the dish-by-dish breakdown. Macros are grams.

Food intake details:
` + mustJSON(req)

	var reply nutritionReply
	if err := s.completeJSON(ctx, nutritionistPrompt, prompt, &reply); err != nil {
		return models.NutritionAnalysis{}, err
	}
	if reply.TotalCalories == nil || reply.Macros == nil || reply.Meal == nil {
		return models.NutritionAnalysis{}, fmt.Errorf("%w: missing totalCalories, macros or meal", ErrMalformedResponse)
	}
	return models.NutritionAnalysis{
		TotalCalories:   *reply.TotalCalories,
		Macros:          *reply.Macros,
		Meal:            *reply.Meal,
		Foods:           reply.Foods,
		Recommendations: reply.Recommendations,
	}, nil
}

type waterReply struct {
	TotalIntake     *float64              `json:"totalIntake"`
	Goal            *float64              `json:"goal"`
	CompletionRate  *float64              `json:"completionRate"`
	IntakePattern   *models.IntakePattern `json:"intakePattern"`
	Recommendations []string              `json:"recommendations"`
	HydrationStatus string                `json:"hydrationStatus"`
}

func (s *OpenAIStrategy) AnalyzeWater(ctx context.Context, req WaterRequest) (models.WaterAnalysis, error) {
	prompt := `Analyze today's water intake against the daily goal (mL).
Reply with a JSON object of this shape:
{
  "totalIntake": number,
  "goal": number,
  "completionRate": number,
  "intakePattern": {"morning": number, "afternoon": number, "evening": number},
  "recommendations": [string],
  "hydrationStatus": "optimal" | "adequate" | "insufficient"
}

Intake details:
` + mustJSON(req)

	var reply waterReply
	if err := s.completeJSON(ctx, hydrationPrompt, prompt, &reply); err != nil {
		return models.WaterAnalysis{}, err
	}
	if reply.TotalIntake == nil || reply.Goal == nil || reply.CompletionRate == nil || reply.IntakePattern == nil {
		return models.WaterAnalysis{}, fmt.Errorf("%w: missing water totals", ErrMalformedResponse)
	}
	return models.WaterAnalysis{
		TotalIntake:     *reply.TotalIntake,
		Goal:            *reply.Goal,
		CompletionRate:  *reply.CompletionRate,
		IntakePattern:   *reply.IntakePattern,
		Recommendations: reply.Recommendations,
		HydrationStatus: reply.HydrationStatus,
	}, nil
}

type metricsReply struct {
	DailyCalories *float64 `json:"dailyCalories"`
	WaterIntake   *float64 `json:"waterIntake"`
	SleepDuration *float64 `json:"sleepDuration"`
}

func (s *OpenAIStrategy) CalculateMetrics(ctx context.Context, profile models.Profile) (models.DerivedMetrics, error) {
	prompt := `Based on the following user profile, calculate personalised daily targets.
Reply with a JSON object of this shape:
{"dailyCalories": number (kcal), "waterIntake": number (mL), "sleepDuration": number (hours)}

User profile:
` + mustJSON(profile)

	var reply metricsReply
	if err := s.completeJSON(ctx, metricsPrompt, prompt, &reply); err != nil {
		return models.DerivedMetrics{}, err
	}
	if reply.DailyCalories == nil || reply.WaterIntake == nil || reply.SleepDuration == nil {
		return models.DerivedMetrics{}, fmt.Errorf("%w: missing metric", ErrMalformedResponse)
	}
	return models.DerivedMetrics{
		DailyCalories: *reply.DailyCalories,
		WaterIntake:   *reply.WaterIntake,
		SleepDuration: *reply.SleepDuration,
	}, nil
}

func (s *OpenAIStrategy) Feedback(ctx context.Context, req FeedbackRequest) (string, error) {
	prompt := fmt.Sprintf(`Write brief, encouraging feedback (2-3 sentences) on this %s entry, taking the user's profile and goal into account.

User profile:
%s

Entry:
%s`, req.Domain, mustJSON(req.Profile), mustJSON(req.Entry))

	return s.complete(ctx, coachPrompt, prompt, false)
}
