package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-hub/internal/domain/profile"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
)

type redisDraftRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisDraftRepo stores drafts with a sliding ttl: every Save pushes the
// expiry out again.
func NewRedisDraftRepo(rdb *redis.Client, ttl time.Duration) profile.DraftRepository {
	return &redisDraftRepo{rdb: rdb, ttl: ttl}
}

func draftKey(id uuid.UUID) string {
	return fmt.Sprintf("profile_draft:%s", id)
}

func (r *redisDraftRepo) Save(ctx context.Context, d *profile.DraftRecord) error {
	data, err := json.Marshal(d)
	if err != nil {
		return apperror.NewInternal("failed to marshal draft", err)
	}
	if err := r.rdb.Set(ctx, draftKey(d.ID), data, r.ttl).Err(); err != nil {
		return storeError("failed to save draft", err)
	}
	return nil
}

func (r *redisDraftRepo) FindByID(ctx context.Context, id uuid.UUID) (*profile.DraftRecord, error) {
	data, err := r.rdb.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.NewNotFound("draft", id.String())
	}
	if err != nil {
		return nil, storeError("failed to load draft", err)
	}

	var d profile.DraftRecord
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal draft", err)
	}
	d.Draft = d.Draft.Clone()
	return &d, nil
}

func (r *redisDraftRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.rdb.Del(ctx, draftKey(id)).Err(); err != nil {
		return storeError("failed to delete draft", err)
	}
	return nil
}
