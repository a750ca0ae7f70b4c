package handlers

import (
	"net/http"

	"fit1-backend/internal/models"
	"fit1-backend/internal/validation"
)

type UserHandler struct {
	tracker
}

func NewUserHandler(users UserStore, enricher Enrichment) *UserHandler {
	return &UserHandler{tracker: newTracker(users, enricher)}
}

type userDetailsResponse struct {
	Success     bool                `json:"success"`
	UserDetails *models.UserDetails `json:"userDetails"`
}

// --- GET /user/details ---

func (h *UserHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.loadUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userDetailsResponse{Success: true, UserDetails: user.Details})
}

// --- PUT /user/details ---

func (h *UserHandler) PutDetails(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req validation.ProfileInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		writeError(w, err)
		return
	}

	profile := req.Profile()
	details := models.UserDetails{
		Profile:        profile,
		DerivedMetrics: h.enricher.CalculateMetrics(r.Context(), profile),
	}

	user, err := h.users.ReplaceDetails(r.Context(), userID, details)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeError(w, errUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, userDetailsResponse{Success: true, UserDetails: user.Details})
}
