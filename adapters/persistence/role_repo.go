package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-hub/internal/domain/role"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
)

type postgresRoleRepo struct {
	db DBTX
}

func NewPostgresRoleRepo(db DBTX) role.Repository {
	return &postgresRoleRepo{db: db}
}

// FindByUserID expects at most one row. It reads two so a duplicate shows up
// as an error rather than an arbitrary pick.
func (r *postgresRoleRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*role.UserRole, error) {
	query := `
		SELECT id, user_id, role, created_at
		FROM user_roles
		WHERE user_id = $1
		LIMIT 2
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, storeError("failed to query user role", err)
	}
	defer rows.Close()

	var found []*role.UserRole
	for rows.Next() {
		ur := &role.UserRole{}
		var roleName string
		if err := rows.Scan(&ur.ID, &ur.UserID, &roleName, &ur.CreatedAt); err != nil {
			return nil, storeError("failed to scan user role row", err)
		}
		ur.Role = role.Role(roleName)
		found = append(found, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating user role rows", err)
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	}
	return nil, apperror.NewInternal("user "+userID.String()+" has more than one role record", role.ErrAmbiguousRole)
}
