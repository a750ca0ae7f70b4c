package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s stubRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], s.err
}

func TestExtractCookie(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"only cookie", "fit1-session=abc", "abc"},
		{"among others", "theme=dark; fit1-session=abc; fit1-access-token=zzz", "abc"},
		{"prefix collision", "old-fit1-session=nope; fit1-session=yes", "yes"},
		{"absent", "theme=dark", ""},
		{"empty header", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCookie(tt.header, CookieName))
		})
	}
}

func TestIssueAndResolve(t *testing.T) {
	issuer := NewIssuer(testSecret)
	userID := bson.NewObjectID()

	token, jti, err := issuer.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	resolver := NewResolver(issuer, nil)
	identity, ok := resolver.Resolve(context.Background(), "theme=dark; "+CookieName+"="+token)
	require.True(t, ok)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, jti, identity.TokenID)
	assert.WithinDuration(t, time.Now().Add(TTL), identity.ExpiresAt, time.Minute)
}

func TestResolveRejects(t *testing.T) {
	issuer := NewIssuer(testSecret)
	userID := bson.NewObjectID()
	token, jti, err := issuer.Issue(userID)
	require.NoError(t, err)

	forged, _, err := NewIssuer("another-secret-another-secret-xx").Issue(userID)
	require.NoError(t, err)

	expiredIssuer := NewIssuer(testSecret)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	expired, _, err := expiredIssuer.Issue(userID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		revoked Revocations
	}{
		{"no cookie", "theme=dark", nil},
		{"raw user id", CookieName + "=" + userID.Hex(), nil},
		{"wrong secret", CookieName + "=" + forged, nil},
		{"expired", CookieName + "=" + expired, nil},
		{"revoked", CookieName + "=" + token, stubRevocations{revoked: map[string]bool{jti: true}}},
		{"revocation lookup failed", CookieName + "=" + token, stubRevocations{err: errors.New("down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, ok := NewResolver(issuer, tt.revoked).Resolve(context.Background(), tt.header)
			assert.False(t, ok)
			assert.True(t, identity.UserID.IsZero())
		})
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.MapClaims{"sub": bson.NewObjectID().Hex(), "iss": "fit1", "exp": time.Now().Add(time.Hour).Unix()}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewIssuer(testSecret).Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestProviderSessionID(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sid": "session_01H"}).SignedString([]byte("provider-key"))
	require.NoError(t, err)

	assert.Equal(t, "session_01H", ProviderSessionID(token))
	assert.Empty(t, ProviderSessionID(""))
	assert.Empty(t, ProviderSessionID("not-a-jwt"))
}

func TestNilRevocationStoreIsNoop(t *testing.T) {
	store := NewRevocationStore("", "", 0)
	assert.Nil(t, store)

	revoked, err := store.IsRevoked(context.Background(), "jti")
	assert.NoError(t, err)
	assert.False(t, revoked)
	assert.NoError(t, store.Revoke(context.Background(), "jti", time.Now().Add(time.Hour)))
	assert.NoError(t, store.Close())
}
