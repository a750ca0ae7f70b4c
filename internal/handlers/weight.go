package handlers

import (
	"log"
	"net/http"

	"fit1-backend/internal/enrichment"
	"fit1-backend/internal/models"
	"fit1-backend/internal/tracking"
	"fit1-backend/internal/validation"
)

type WeightHandler struct {
	tracker
	entries WeightStore
}

func NewWeightHandler(entries WeightStore, users UserStore, enricher Enrichment) *WeightHandler {
	return &WeightHandler{tracker: newTracker(users, enricher), entries: entries}
}

// --- POST /weight/track ---

func (h *WeightHandler) Track(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req validation.WeightRequest
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

	entry := req.Entry()
	entry.UserID = userID
	if entry.BMI == nil && profile != nil {
		if bmi, ok := tracking.CalculateBMI(entry.Weight, profile.Height); ok {
			entry.BMI = &bmi
		}
	}
	if err := h.entries.Create(r.Context(), &entry); err != nil {
		writeError(w, err)
		return
	}

	// The entry is already stored; a stale profile weight is not worth failing the request.
	if err := h.users.UpdateCurrentWeight(r.Context(), userID, entry.Weight); err != nil {
		log.Printf("⚠️  Failed to update current weight: %v", err)
	}
	if profile != nil {
		profile.Weight = entry.Weight
	}

	writeJSON(w, http.StatusCreated, trackResponse{
		Success:    true,
		Data:       entry,
		AIFeedback: h.feedback(r.Context(), enrichment.DomainWeight, entry, profile),
	})
}

// --- GET /weight/history ---

func (h *WeightHandler) History(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, struct {
		Success bool                 `json:"success"`
		Date    string               `json:"date"`
		Entries []models.WeightEntry `json:"entries"`
		*models.WeightTrend
	}{true, date, entries, tracking.SummarizeWeights(entries)})
}
