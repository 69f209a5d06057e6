package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/filmtrack/internal/logger"
)

// RevocationRepository keeps revoked token IDs in Redis until their tokens would have expired anyway.
type RevocationRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewRevocationRepository creates a new repository instance backed by client.
func NewRevocationRepository(client *redis.Client) *RevocationRepository {
	return &RevocationRepository{
		client: client,
		now:    time.Now,
	}
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("revoked_token:%s", tokenID)
}

// Revoke marks tokenID as revoked until expiresAt. Tokens already past expiresAt are skipped.
func (r *RevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	key := revokedKey(tokenID)
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		logger.FromContext(ctx).Infow("revoke token",
			"key", key,
			"result", "skipped: already expired",
			"error", nil,
		)
		return nil
	}

	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.FromContext(ctx).Infow("revoke token",
		"key", key,
		"ttl", ttl,
		"result", "ok",
		"error", err,
	)

	return err
}

// IsRevoked reports whether tokenID has been revoked.
func (r *RevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedKey(tokenID)
	n, err := r.client.Exists(ctx, key).Result()

	logger.FromContext(ctx).Infow("check revoked token",
		"key", key,
		"result", n,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return n > 0, nil
}
