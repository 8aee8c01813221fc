package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/adapters/event"
	"github.com/khoahotran/portfolio-hub/internal/domain/user"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/auth"
)

type SignUpInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type SignUpOutput struct {
	User *user.User
	// ConfirmationSent is true when a fresh confirmation token was stored and
	// its mail queued. The account can't sign in until the email is confirmed.
	ConfirmationSent bool
}

func (uc *AuthUseCase) SignUp(ctx context.Context, input SignUpInput) (*SignUpOutput, error) {
	ctx, span := tracer.Start(ctx, "SignUp")
	defer span.End()

	input.Email = strings.TrimSpace(input.Email)
	if err := uc.validate.Struct(input); err != nil {
		err := apperror.NewAuth(signUpValidationMessage(err), err)
		span.RecordError(err)
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(input.Email),
		PasswordHash: hash,
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		if !errors.Is(err, apperror.ErrConflict) {
			span.RecordError(err)
			return nil, err
		}
		// A repeat sign-up for an unconfirmed address resends the link. The
		// stored password is kept.
		existing, ferr := uc.userRepo.FindByEmail(ctx, u.Email)
		if ferr != nil || existing.Confirmed() {
			err = apperror.NewAuth("User already registered", err)
			span.RecordError(err)
			return nil, err
		}
		u = existing
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()))

	if err := uc.sendConfirmation(ctx, u); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &SignUpOutput{User: u, ConfirmationSent: true}, nil
}

// sendConfirmation stores a fresh token and queues the signed_up event that
// makes the worker mail it. A failed publish is only logged; signing up again
// retries.
func (uc *AuthUseCase) sendConfirmation(ctx context.Context, u *user.User) error {
	token := uuid.NewString()
	if err := uc.confirmations.Save(ctx, token, u.ID, uc.confirmationTTL); err != nil {
		uc.logger.Error("Failed to store confirmation token", err, zap.String("user_id", u.ID.String()))
		return err
	}

	go func() {
		err := uc.publisher.PublishAuthEvent(context.Background(), event.AuthEventPayload{
			EventType:         event.AuthEventTypeSignedUp,
			UserID:            u.ID,
			Email:             u.Email,
			ConfirmationToken: token,
		})
		if err != nil {
			uc.logger.Error("Failed to publish signed up event", err, zap.String("user_id", u.ID.String()))
		}
	}()
	return nil
}

func signUpValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid sign up request"
	}
	switch f := verrs[0]; {
	case f.Field() == "Email" && f.Tag() == "email":
		return "Unable to validate email address: invalid format"
	case f.Field() == "Password" && f.Tag() == "min":
		return "Password should be at least 6 characters"
	default:
		return "Email and password are required"
	}
}

func (uc *AuthUseCase) ConfirmEmail(ctx context.Context, token string) (*user.User, error) {
	ctx, span := tracer.Start(ctx, "ConfirmEmail")
	defer span.End()

	userID, ok, err := uc.confirmations.Consume(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !ok {
		return nil, apperror.NewAuth("Email link is invalid or has expired", nil)
	}

	if err := uc.userRepo.MarkEmailConfirmed(ctx, userID, uc.now().UTC()); err != nil {
		span.RecordError(err)
		return nil, err
	}

	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	go func() {
		err := uc.publisher.PublishAuthEvent(context.Background(), event.AuthEventPayload{
			EventType: event.AuthEventTypeEmailConfirmed,
			UserID:    u.ID,
			Email:     u.Email,
		})
		if err != nil {
			uc.logger.Error("Failed to publish email confirmed event", err, zap.String("user_id", u.ID.String()))
		}
	}()
	return u, nil
}
