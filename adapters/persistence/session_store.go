package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-hub/internal/application/service"
)

type redisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) service.SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("revoked_token:%s", tokenID)
}

func (s *redisSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return storeError("failed to revoke session", err)
	}
	return nil
}

func (s *redisSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, storeError("failed to check session revocation", err)
	}
	return n > 0, nil
}

type redisConfirmationStore struct {
	rdb *redis.Client
}

func NewRedisConfirmationStore(rdb *redis.Client) service.ConfirmationStore {
	return &redisConfirmationStore{rdb: rdb}
}

func confirmationKey(token string) string {
	return fmt.Sprintf("email_confirmation:%s", token)
}

func (s *redisConfirmationStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, confirmationKey(token), userID.String(), ttl).Err(); err != nil {
		return storeError("failed to save confirmation token", err)
	}
	return nil
}

// Consume reads and deletes the token in one step, so a token works once.
func (s *redisConfirmationStore) Consume(ctx context.Context, token string) (uuid.UUID, bool, error) {
	val, err := s.rdb.GetDel(ctx, confirmationKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, storeError("failed to read confirmation token", err)
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, nil
	}
	return userID, true, nil
}
