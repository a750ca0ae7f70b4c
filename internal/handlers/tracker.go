package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"fit1-backend/internal/apperr"
	"fit1-backend/internal/enrichment"
	"fit1-backend/internal/models"
	"fit1-backend/internal/validation"
)

var errUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)

// tracker holds what every domain handler needs besides its own store.
type tracker struct {
	users    UserStore
	enricher Enrichment
	now      func() time.Time
}

func newTracker(users UserStore, enricher Enrichment) tracker {
	return tracker{users: users, enricher: enricher, now: time.Now}
}

func (t tracker) loadUser(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	user, err := t.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserNotFound
	}
	return user, nil
}

// existingUser resolves the session user for read routes so a deleted
// account gets a 404 rather than an empty history.
func (t tracker) existingUser(r *http.Request) (bson.ObjectID, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return bson.ObjectID{}, err
	}
	if _, err := t.loadUser(r.Context(), userID); err != nil {
		return bson.ObjectID{}, err
	}
	return userID, nil
}

// profileFor prefers the profile sent with the submission and falls back to
// the stored one. It returns nil when neither exists.
func profileFor(input *validation.ProfileInput, user *models.User) *models.Profile {
	if input != nil {
		p := input.Profile()
		return &p
	}
	if user != nil && user.Details != nil {
		p := user.Details.Profile
		return &p
	}
	return nil
}

// feedback is only generated for users with a profile.
func (t tracker) feedback(ctx context.Context, domain string, entry interface{}, profile *models.Profile) string {
	if profile == nil {
		return ""
	}
	return t.enricher.Feedback(ctx, enrichment.FeedbackRequest{
		Domain:  domain,
		Entry:   entry,
		Profile: *profile,
	})
}
