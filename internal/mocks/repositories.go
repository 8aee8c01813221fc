// Package mocks holds testify mocks of the domain repositories and
// application services.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/portfolio-hub/internal/domain/profile"
	"github.com/khoahotran/portfolio-hub/internal/domain/role"
	"github.com/khoahotran/portfolio-hub/internal/domain/user"
)

type UserRepository struct {
	mock.Mock
}

var _ user.Repository = (*UserRepository)(nil)

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserRepository) MarkEmailConfirmed(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type RoleRepository struct {
	mock.Mock
}

var _ role.Repository = (*RoleRepository)(nil)

func (m *RoleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*role.UserRole, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(*role.UserRole)
	return r, args.Error(1)
}

type ProfileRepository struct {
	mock.Mock
}

var _ profile.Repository = (*ProfileRepository)(nil)

func (m *ProfileRepository) List(ctx context.Context) ([]*profile.Profile, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*profile.Profile)
	return ps, args.Error(1)
}

func (m *ProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*profile.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepository) Create(ctx context.Context, d profile.Draft, ownerID uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, d, ownerID)
	p, _ := args.Get(0).(*profile.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepository) Update(ctx context.Context, id uuid.UUID, d profile.Draft) (*profile.Profile, error) {
	args := m.Called(ctx, id, d)
	p, _ := args.Get(0).(*profile.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type DraftRepository struct {
	mock.Mock
}

var _ profile.DraftRepository = (*DraftRepository)(nil)

func (m *DraftRepository) Save(ctx context.Context, r *profile.DraftRecord) error {
	return m.Called(ctx, r).Error(0)
}

func (m *DraftRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.DraftRecord, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*profile.DraftRecord)
	return r, args.Error(1)
}

func (m *DraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
