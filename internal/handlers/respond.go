package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"

	"fit1-backend/internal/apperr"
	"fit1-backend/internal/middleware"
)

const maxBodyBytes = 1 << 20

// historyLimit bounds the trailing-history endpoints.
const historyLimit = 7

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	httpErr := apperr.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Printf("❌ Request failed: %v", err)
	}
	writeJSON(w, httpErr.StatusCode, httpErr.ToErrorResponse())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

// currentUserID reads the identity SessionAuth put on the request.
func currentUserID(r *http.Request) (bson.ObjectID, error) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		return bson.ObjectID{}, apperr.ErrUnauthenticated
	}
	return id.UserID, nil
}

// trackResponse is returned by every ingestion endpoint.
type trackResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	AIFeedback string      `json:"aiFeedback,omitempty"`
}
