package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "fit1:revoked:"

// RevocationStore keeps signed-out token ids in Redis until they would have
// expired anyway. A nil store or an unreachable Redis behaves as "nothing
// revoked" so sessions keep working without Redis.
type RevocationStore struct {
	client *redis.Client
}

func NewRevocationStore(addr, password string, db int) *RevocationStore {
	if addr == "" {
		return nil
	}
	return &RevocationStore{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s == nil || s.client == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err()
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s == nil || s.client == nil {
		return false, nil
	}
	n, err := s.client.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		// fail open: redis is an optional hardening layer
		return false, nil
	}
	return n > 0, nil
}

func (s *RevocationStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
