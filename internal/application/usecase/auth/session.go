package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/internal/domain/user"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/auth"
)

type SignInInput struct {
	Email    string
	Password string
}

type SignInOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *user.User
}

func (uc *AuthUseCase) SignIn(ctx context.Context, input SignInInput) (*SignInOutput, error) {
	ctx, span := tracer.Start(ctx, "SignIn")
	defer span.End()

	u, err := uc.userRepo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			err = apperror.NewAuth("Invalid login credentials", nil)
		}
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		err := apperror.NewAuth("Invalid login credentials", nil)
		span.RecordError(err)
		return nil, err
	}
	if !u.Confirmed() {
		err := apperror.NewAuth("Email not confirmed", nil)
		span.RecordError(err)
		return nil, err
	}

	token, claims, err := uc.jwtSvc.GenerateToken(u.ID, u.Email)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()))

	return &SignInOutput{AccessToken: token, ExpiresAt: claims.ExpiresAtTime(), User: u}, nil
}

// SignOut revokes the token on ctx until it would have expired anyway. It is
// a no-op for anonymous callers.
func (uc *AuthUseCase) SignOut(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "SignOut")
	defer span.End()

	s := auth.SessionFromContext(ctx)
	if s == nil || s.Claims == nil {
		return nil
	}
	ttl := s.Claims.ExpiresAtTime().Sub(uc.now())
	if err := uc.sessions.Revoke(ctx, s.Claims.TokenID(), ttl); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Authenticate validates an access token and checks it has not been revoked.
// Any failure is an AuthError.
func (uc *AuthUseCase) Authenticate(ctx context.Context, accessToken string) (*auth.Session, error) {
	claims, err := uc.jwtSvc.ValidateToken(accessToken)
	if err != nil {
		return nil, apperror.NewAuth("Invalid or expired token", err)
	}
	revoked, err := uc.sessions.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperror.NewAuth("Session has been signed out", nil)
	}
	return &auth.Session{AccessToken: accessToken, Claims: claims}, nil
}

// GetSession returns the session on ctx, or nil.
func (uc *AuthUseCase) GetSession(ctx context.Context) *auth.Session {
	return auth.SessionFromContext(ctx)
}

// GetUser returns the signed-in identity, or nil when nobody is signed in or
// the identity no longer exists.
func (uc *AuthUseCase) GetUser(ctx context.Context) (*user.User, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, nil
	}
	u, err := uc.userRepo.FindByID(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
