package auth

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"

	"github.com/khoahotran/portfolio-hub/internal/application/service"
	"github.com/khoahotran/portfolio-hub/internal/domain/role"
	"github.com/khoahotran/portfolio-hub/internal/domain/user"
	"github.com/khoahotran/portfolio-hub/pkg/auth"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

var tracer = otel.Tracer("auth_usecase")

// AuthUseCase is the gateway to identities, sessions and roles.
type AuthUseCase struct {
	userRepo        user.Repository
	roleRepo        role.Repository
	jwtSvc          *auth.JWTService
	sessions        service.SessionStore
	confirmations   service.ConfirmationStore
	publisher       service.EventPublisher
	logger          logger.Logger
	validate        *validator.Validate
	confirmationTTL time.Duration
	now             func() time.Time
}

type Deps struct {
	UserRepo        user.Repository
	RoleRepo        role.Repository
	JWT             *auth.JWTService
	Sessions        service.SessionStore
	Confirmations   service.ConfirmationStore
	Publisher       service.EventPublisher
	Logger          logger.Logger
	ConfirmationTTL time.Duration
}

func NewAuthUseCase(d Deps) *AuthUseCase {
	return &AuthUseCase{
		userRepo:        d.UserRepo,
		roleRepo:        d.RoleRepo,
		jwtSvc:          d.JWT,
		sessions:        d.Sessions,
		confirmations:   d.Confirmations,
		publisher:       d.Publisher,
		logger:          d.Logger,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		confirmationTTL: d.ConfirmationTTL,
		now:             time.Now,
	}
}
