package handlers

import (
	"net/http"
	"sort"

	"fit1-backend/internal/enrichment"
	"fit1-backend/internal/tracking"
	"fit1-backend/internal/validation"
)

type SleepHandler struct {
	tracker
	entries SleepStore
}

func NewSleepHandler(entries SleepStore, users UserStore, enricher Enrichment) *SleepHandler {
	return &SleepHandler{tracker: newTracker(users, enricher), entries: entries}
}

// --- POST /sleep/track ---

func (h *SleepHandler) Track(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req validation.SleepRequest
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
	if err := h.entries.Create(r.Context(), &entry); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, trackResponse{
		Success:    true,
		Data:       entry,
		AIFeedback: h.feedback(r.Context(), enrichment.DomainSleep, entry, profile),
	})
}

// --- GET /sleep/history ---

// History lists the sleeps that ended on the date. They are ordered by
// start instant rather than time of day because a night's sleep starts on
// the previous date.
func (h *SleepHandler) History(w http.ResponseWriter, r *http.Request) {
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
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime.Before(entries[j].StartTime)
	})
	total := 0
	for _, e := range entries {
		total += e.Duration
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"date":         date,
		"totalMinutes": total,
		"entries":      entries,
	})
}
