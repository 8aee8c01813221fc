package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an identity in auth_users.
type User struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (u *User) Confirmed() bool {
	return u.EmailConfirmedAt != nil
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	MarkEmailConfirmed(ctx context.Context, id uuid.UUID, at time.Time) error
}
