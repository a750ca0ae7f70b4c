package handlers

import (
	"net/http"

	"fit1-backend/internal/enrichment"
	"fit1-backend/internal/models"
	"fit1-backend/internal/tracking"
	"fit1-backend/internal/validation"
)

type NutritionHandler struct {
	tracker
	entries NutritionStore
}

func NewNutritionHandler(entries NutritionStore, users UserStore, enricher Enrichment) *NutritionHandler {
	return &NutritionHandler{tracker: newTracker(users, enricher), entries: entries}
}

// --- POST /nutrition/analyze ---

func (h *NutritionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req validation.FoodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.loadUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	profile := profileFor(req.UserDetails, user)

	intake := req.Intake()
	entry := &models.NutritionEntry{
		UserID:     userID,
		FoodIntake: intake,
		Analysis:   h.enricher.AnalyzeFood(r.Context(), enrichment.FoodRequest{Intake: intake, Profile: profile}),
	}
	if err := h.entries.Create(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, trackResponse{
		Success:    true,
		Data:       entry,
		AIFeedback: h.feedback(r.Context(), enrichment.DomainNutrition, entry, profile),
	})
}

// --- GET /nutrition/history ---

func (h *NutritionHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := h.existingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	date, err := tracking.ResolveDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.entries.FindByDate(r.Context(), userID, date)
	if err != nil {
		writeError(w, err)
		return
	}
	day := tracking.SummarizeDay(entries,
		func(e models.NutritionEntry) string { return e.FoodIntake.Time },
		func(e models.NutritionEntry) float64 { return e.Analysis.TotalCalories },
	)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"date":          date,
		"totalCalories": day.Total,
		"entries":       day.Entries,
	})
}

// --- GET /nutrition/recent ---

func (h *NutritionHandler) Recent(w http.ResponseWriter, r *http.Request) {
	userID, err := h.existingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	date, err := tracking.ResolveDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.entries.Recent(r.Context(), userID, date, historyLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"date":    date,
		"entries": entries,
	})
}

// --- GET /nutrition/stats ---

func (h *NutritionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, err := h.existingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	stats, err := h.entries.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*models.NutritionStats
	}{true, stats})
}
