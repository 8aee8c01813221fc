package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/portfolio-hub/adapters/event"
	"github.com/khoahotran/portfolio-hub/internal/application/service"
	"github.com/khoahotran/portfolio-hub/internal/domain/profile"
	"github.com/khoahotran/portfolio-hub/internal/domain/role"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/auth"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

// RoleResolver looks up a viewer's role. A nil result means no role.
type RoleResolver interface {
	GetUserRole(ctx context.Context, userID uuid.UUID) *role.UserRole
}

type ProfileUseCase struct {
	profileRepo profile.Repository
	roles       RoleResolver
	publisher   service.EventPublisher
	logger      logger.Logger
}

var _ profile.Submitter = (*ProfileUseCase)(nil)

func NewProfileUseCase(repo profile.Repository, roles RoleResolver, publisher service.EventPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		roles:       roles,
		publisher:   publisher,
		logger:      log,
	}
}

// Item is a profile as shown to a particular viewer.
type Item struct {
	Profile   *profile.Profile
	CanModify bool
}

type DashboardOutput struct {
	Items []Item
	Role  role.Role
}

type viewer struct {
	id   uuid.UUID
	role role.Role
}

func (uc *ProfileUseCase) viewerOf(ctx context.Context) viewer {
	id, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return viewer{}
	}
	return viewer{id: id, role: role.Of(uc.roles.GetUserRole(ctx, id))}
}

func (v viewer) items(ps []*profile.Profile) []Item {
	out := make([]Item, len(ps))
	for i, p := range ps {
		out[i] = Item{Profile: p, CanModify: profile.CanModify(p, v.id, v.role)}
	}
	return out
}

// List returns every profile, newest first, marked for the optional viewer.
func (uc *ProfileUseCase) List(ctx context.Context) ([]Item, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	ps, err := uc.profileRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return uc.viewerOf(ctx).items(ps), nil
}

// Get never reports anything but not-found to the caller; other read
// failures are logged.
func (uc *ProfileUseCase) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()
	span.SetAttributes(attribute.String("profile_id", id.String()))

	p, err := uc.profileRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, apperror.ErrNotFound) {
			uc.logger.Error("Error fetching profile", err, zap.String("profile_id", id.String()))
		}
		return nil, apperror.NewNotFound("profile", id.String())
	}
	v := uc.viewerOf(ctx)
	return &Item{Profile: p, CanModify: profile.CanModify(p, v.id, v.role)}, nil
}

// Dashboard loads the list and the viewer's role together, then keeps what
// the viewer may see.
func (uc *ProfileUseCase) Dashboard(ctx context.Context) (*DashboardOutput, error) {
	ctx, span := tracer.Start(ctx, "Dashboard")
	defer span.End()

	viewerID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, apperror.NewAuth("Sign in to view the dashboard", nil)
	}

	var (
		all        []*profile.Profile
		viewerRole role.Role
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ps, err := uc.profileRepo.List(gctx)
		if err != nil {
			return err
		}
		all = ps
		return nil
	})
	g.Go(func() error {
		viewerRole = role.Of(uc.roles.GetUserRole(gctx, viewerID))
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	v := viewer{id: viewerID, role: viewerRole}
	return &DashboardOutput{
		Items: v.items(profile.VisibleTo(all, viewerID, viewerRole)),
		Role:  viewerRole,
	}, nil
}

// Create stores a new profile owned by ownerID. Only the signed-in user can
// be the owner.
func (uc *ProfileUseCase) Create(ctx context.Context, d profile.Draft, ownerID uuid.UUID) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "Create")
	defer span.End()

	viewerID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, apperror.NewAuth("Sign in to create a profile", nil)
	}
	if ownerID != viewerID {
		return nil, apperror.NewAuthorizationDenied("profiles can only be created for the signed-in user")
	}
	if err := d.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), err)
	}

	p, err := uc.profileRepo.Create(ctx, d, ownerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("profile_id", p.ID.String()))

	uc.publish(event.ProfileEventTypeCreated, p, viewerID)
	return p, nil
}

func (uc *ProfileUseCase) Update(ctx context.Context, id uuid.UUID, d profile.Draft) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "Update")
	defer span.End()
	span.SetAttributes(attribute.String("profile_id", id.String()))

	v, err := uc.authorize(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), err)
	}

	p, err := uc.profileRepo.Update(ctx, id, d)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.publish(event.ProfileEventTypeUpdated, p, v.id)
	return p, nil
}

func (uc *ProfileUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "Delete")
	defer span.End()
	span.SetAttributes(attribute.String("profile_id", id.String()))

	v, err := uc.authorize(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}
	target := v.target

	if err := uc.profileRepo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}

	uc.publish(event.ProfileEventTypeDeleted, target, v.id)
	return nil
}

type authorized struct {
	viewer
	target *profile.Profile
}

// authorize loads the target and runs CanModify for the signed-in viewer.
func (uc *ProfileUseCase) authorize(ctx context.Context, id uuid.UUID) (*authorized, error) {
	if _, ok := auth.UserIDFromContext(ctx); !ok {
		return nil, apperror.NewAuth("Sign in to modify a profile", nil)
	}
	target, err := uc.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := uc.viewerOf(ctx)
	if !profile.CanModify(target, v.id, v.role) {
		uc.logger.Warn("Profile modification denied",
			zap.String("profile_id", id.String()),
			zap.String("viewer_id", v.id.String()),
			zap.String("viewer_role", string(v.role)),
		)
		return nil, apperror.NewAuthorizationDenied("viewer is neither the owner nor an admin")
	}
	return &authorized{viewer: v, target: target}, nil
}

func (uc *ProfileUseCase) publish(t event.ProfileEventType, p *profile.Profile, actorID uuid.UUID) {
	payload := event.ProfileEventPayload{
		EventType: t,
		ProfileID: p.ID,
		OwnerID:   p.OwnerID,
		ActorID:   actorID,
	}
	go func() {
		if err := uc.publisher.PublishProfileEvent(context.Background(), payload); err != nil {
			uc.logger.Error("Failed to publish profile event", err,
				zap.String("event_type", string(payload.EventType)),
				zap.String("profile_id", payload.ProfileID.String()),
			)
		}
	}()
}
