package session

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Identity is a verified session.
type Identity struct {
	UserID    bson.ObjectID
	TokenID   string
	ExpiresAt time.Time
}

// ExtractCookie finds name= in a raw Cookie header and returns the value up to
// the next ';'. It returns "" when the cookie is absent.
func ExtractCookie(header, name string) string {
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		key, value, ok := strings.Cut(part, "=")
		if ok && key == name {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Revocations reports whether a token id was revoked at sign-out.
type Revocations interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Resolver turns a Cookie header into an Identity.
type Resolver struct {
	issuer  *Issuer
	revoked Revocations
}

func NewResolver(issuer *Issuer, revoked Revocations) *Resolver {
	return &Resolver{issuer: issuer, revoked: revoked}
}

// Resolve never returns a zero-value Identity with ok=true.
func (r *Resolver) Resolve(ctx context.Context, cookieHeader string) (Identity, bool) {
	token := ExtractCookie(cookieHeader, CookieName)
	if token == "" {
		return Identity{}, false
	}

	claims, err := r.issuer.Verify(token)
	if err != nil {
		return Identity{}, false
	}

	if r.revoked != nil {
		revoked, err := r.revoked.IsRevoked(ctx, claims.ID)
		if err != nil || revoked {
			return Identity{}, false
		}
	}

	userID, err := bson.ObjectIDFromHex(claims.Subject)
	if err != nil || userID.IsZero() {
		return Identity{}, false
	}

	return Identity{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}
