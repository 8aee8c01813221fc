package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-hub/internal/config"
	"github.com/khoahotran/portfolio-hub/internal/domain/profile"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	var cfg config.Config
	cfg.Redis.Addr = mr.Addr()

	rdb, err := NewRedisClient(context.Background(), cfg, logger.NewNopLogger())
	require.NoError(t, err)
	rdb.Close()

	mr.Close()
	_, err = NewRedisClient(context.Background(), cfg, logger.NewNopLogger())
	assert.ErrorIs(t, err, apperror.ErrTransport)
}

func TestSessionStoreRevoke(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewRedisSessionStore(rdb)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation should expire with the token")
}

func TestSessionStoreRevokeExpiredTokenIsNoop(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewRedisSessionStore(rdb)

	require.NoError(t, store.Revoke(context.Background(), "jti-old", 0))
	assert.False(t, mr.Exists(revokedKey("jti-old")))
}

func TestSessionStoreUnavailable(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewRedisSessionStore(rdb)
	mr.Close()

	_, err := store.IsRevoked(context.Background(), "jti-1")
	assert.ErrorIs(t, err, apperror.ErrTransport)
}

func TestConfirmationStoreConsumeOnce(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewRedisConfirmationStore(rdb)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Save(ctx, "tok", userID, time.Hour))

	got, ok, err := store.Consume(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	_, ok, err = store.Consume(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmationStoreExpired(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewRedisConfirmationStore(rdb)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok", uuid.New(), time.Hour))
	mr.FastForward(2 * time.Hour)

	_, ok, err := store.Consume(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDraftRepoRoundTrip(t *testing.T) {
	mr, rdb := newTestRedis(t)
	repo := NewRedisDraftRepo(rdb, time.Hour)
	ctx := context.Background()

	url := "https://example.com"
	rec := &profile.DraftRecord{
		ID:       uuid.New(),
		AuthorID: uuid.New(),
		Draft: profile.Draft{
			Name:     "Ada",
			Skills:   []string{"Go"},
			Socials:  profile.Socials{profile.SocialGitHub: "https://github.com/ada"},
			Projects: []profile.Project{{Title: "Engine", Description: "Analytical", URL: &url}},
		},
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Save(ctx, rec))
	assert.Equal(t, time.Hour, mr.TTL(draftKey(rec.ID)))

	got, err := repo.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.AuthorID, got.AuthorID)
	assert.Equal(t, rec.Draft.Name, got.Draft.Name)
	assert.Equal(t, rec.Draft.Socials, got.Draft.Socials)
	require.Len(t, got.Draft.Projects, 1)
	assert.Equal(t, url, *got.Draft.Projects[0].URL)
	assert.Nil(t, got.Draft.Projects[0].Image)
	assert.True(t, rec.UpdatedAt.Equal(got.UpdatedAt))

	require.NoError(t, repo.Delete(ctx, rec.ID))
	_, err = repo.FindByID(ctx, rec.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDraftRepoSaveSlidesExpiry(t *testing.T) {
	mr, rdb := newTestRedis(t)
	repo := NewRedisDraftRepo(rdb, time.Hour)
	ctx := context.Background()
	rec := &profile.DraftRecord{ID: uuid.New(), AuthorID: uuid.New()}

	require.NoError(t, repo.Save(ctx, rec))
	mr.FastForward(50 * time.Minute)
	require.NoError(t, repo.Save(ctx, rec))
	mr.FastForward(50 * time.Minute)

	_, err := repo.FindByID(ctx, rec.ID)
	assert.NoError(t, err)

	mr.FastForward(time.Hour)
	_, err = repo.FindByID(ctx, rec.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
