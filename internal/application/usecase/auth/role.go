package auth

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/internal/domain/role"
)

// GetUserRole returns the role record of userID, or nil. Read failures are
// logged and reported as no role.
func (uc *AuthUseCase) GetUserRole(ctx context.Context, userID uuid.UUID) *role.UserRole {
	ctx, span := tracer.Start(ctx, "GetUserRole")
	defer span.End()

	r, err := uc.roleRepo.FindByUserID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Error fetching user role", err, zap.String("user_id", userID.String()))
		return nil
	}
	return r
}

// GetCurrentUserRole is GetUser followed by GetUserRole. It returns nil for
// anonymous callers.
func (uc *AuthUseCase) GetCurrentUserRole(ctx context.Context) (*role.UserRole, error) {
	u, err := uc.GetUser(ctx)
	if err != nil || u == nil {
		return nil, err
	}
	return uc.GetUserRole(ctx, u.ID), nil
}

func (uc *AuthUseCase) IsAdmin(ctx context.Context, userID uuid.UUID) bool {
	return role.Of(uc.GetUserRole(ctx, userID)) == role.RoleAdmin
}
