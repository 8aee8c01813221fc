package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/portfolio-hub/internal/config"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

func TestNewPostgresPoolRejectsBadURL(t *testing.T) {
	var cfg config.Config
	cfg.Backend.URL = "postgres://user:pw@localhost:notaport/db"

	_, err := NewPostgresPool(context.Background(), cfg, logger.NewNopLogger())
	assert.ErrorIs(t, err, apperror.ErrConfig)
}

func TestOpenStoreValidatesFirst(t *testing.T) {
	var cfg config.Config
	cfg.Backend.URL = "https://your-project.example.co"
	cfg.Backend.AnonKey = "your-anon-key"

	_, err := OpenStore(context.Background(), cfg, logger.NewNopLogger())
	assert.ErrorIs(t, err, apperror.ErrConfig)
}
