package role

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ErrAmbiguousRole means more than one user_roles row matched an identity.
var ErrAmbiguousRole = errors.New("more than one role record for user")

// UserRole is provisioned out of band. This service only reads it.
type UserRole struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Of returns the role of r, or "" when r is nil.
func Of(r *UserRole) Role {
	if r == nil {
		return ""
	}
	return r.Role
}

type Repository interface {
	// FindByUserID returns nil, nil when the identity has no role record.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*UserRole, error)
}
