package handlers

import (
	"net/http"

	"fit1-backend/internal/enrichment"
	"fit1-backend/internal/models"
	"fit1-backend/internal/tracking"
	"fit1-backend/internal/validation"
)

type WaterHandler struct {
	tracker
	entries WaterStore
}

func NewWaterHandler(entries WaterStore, users UserStore, enricher Enrichment) *WaterHandler {
	return &WaterHandler{tracker: newTracker(users, enricher), entries: entries}
}

// --- POST /water/track ---

func (h *WaterHandler) Track(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req validation.WaterRequest
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
	sameDay, err := h.entries.FindByDate(r.Context(), userID, intake.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	earlier := make([]models.WaterIntake, 0, len(sameDay))
	for _, e := range sameDay {
		earlier = append(earlier, e.Intake)
	}

	entry := &models.WaterEntry{
		UserID: userID,
		Intake: intake,
		Analysis: h.enricher.AnalyzeWater(r.Context(), enrichment.WaterRequest{
			Intake:  intake,
			Earlier: earlier,
			Goal:    waterGoal(user, profile),
		}),
	}
	if err := h.entries.Create(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, trackResponse{
		Success:    true,
		Data:       entry,
		AIFeedback: h.feedback(r.Context(), enrichment.DomainWater, entry, profile),
	})
}

// waterGoal uses the stored target, then one derived from a submitted
// profile. Zero lets the enricher apply its default.
func waterGoal(user *models.User, profile *models.Profile) float64 {
	if user.Details != nil && user.Details.WaterIntake > 0 {
		return user.Details.WaterIntake
	}
	if profile != nil {
		return enrichment.Metrics(*profile).WaterIntake
	}
	return 0
}

// --- GET /water/history ---

func (h *WaterHandler) History(w http.ResponseWriter, r *http.Request) {
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
		func(e models.WaterEntry) string { return e.Intake.Time },
		func(e models.WaterEntry) float64 { return e.Intake.Amount },
	)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"date":        date,
		"totalIntake": day.Total,
		"entries":     day.Entries,
	})
}
