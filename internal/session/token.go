package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	CookieName        = "fit1-session"
	AccessTokenCookie = "fit1-access-token"
	RefreshCookie     = "fit1-refresh-token"

	// TTL applies to the session token and every auth cookie.
	TTL = 7 * 24 * time.Hour

	issuer = "fit1"
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims are carried in the session cookie. Subject is the internal user id.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with an HMAC secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), now: time.Now}
}

// Issue returns a signed token for userID and its token id.
func (i *Issuer) Issue(userID bson.ObjectID) (string, string, error) {
	now := i.now()
	jti := uuid.NewString()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        jti,
		Issuer:    issuer,
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
	}}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, jti, nil
}

// Verify checks signature, issuer and expiry and returns the claims.
func (i *Issuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := bson.ObjectIDFromHex(claims.Subject); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ProviderSessionID reads the "sid" claim from a provider access token without
// verifying it. The value is only used to build a logout redirect.
func ProviderSessionID(accessToken string) string {
	if accessToken == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}
