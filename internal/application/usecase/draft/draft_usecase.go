package draft

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/internal/domain/profile"
	"github.com/khoahotran/portfolio-hub/internal/domain/role"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/auth"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

var tracer = otel.Tracer("draft_usecase")

type RoleResolver interface {
	GetUserRole(ctx context.Context, userID uuid.UUID) *role.UserRole
}

// DraftUseCase keeps profile forms between requests. Drafts belong to the
// user who opened them; to anyone else they do not exist.
type DraftUseCase struct {
	drafts      profile.DraftRepository
	profileRepo profile.Repository
	roles       RoleResolver
	submitter   profile.Submitter
	logger      logger.Logger
	now         func() time.Time
}

func NewDraftUseCase(drafts profile.DraftRepository, profileRepo profile.Repository, roles RoleResolver, submitter profile.Submitter, log logger.Logger) *DraftUseCase {
	return &DraftUseCase{
		drafts:      drafts,
		profileRepo: profileRepo,
		roles:       roles,
		submitter:   submitter,
		logger:      log,
		now:         time.Now,
	}
}

type CreateInput struct {
	// ProfileID seeds the draft from an existing profile. uuid.Nil starts an
	// empty draft for a new profile.
	ProfileID uuid.UUID
}

func (uc *DraftUseCase) Create(ctx context.Context, input CreateInput) (*profile.DraftRecord, error) {
	ctx, span := tracer.Start(ctx, "Create")
	defer span.End()

	authorID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, apperror.NewAuth("Sign in to edit profiles", nil)
	}

	var original *profile.Profile
	if input.ProfileID != uuid.Nil {
		p, err := uc.profileRepo.FindByID(ctx, input.ProfileID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		viewerRole := role.Of(uc.roles.GetUserRole(ctx, authorID))
		if !profile.CanModify(p, authorID, viewerRole) {
			return nil, apperror.NewAuthorizationDenied("viewer is neither the owner nor an admin")
		}
		original = p
	}

	form := profile.NewForm(original)
	originalID, _ := form.OriginalID()
	rec := &profile.DraftRecord{
		ID:         uuid.New(),
		AuthorID:   authorID,
		OriginalID: originalID,
	}
	rec.Apply(form, uc.now().UTC())

	if err := uc.drafts.Save(ctx, rec); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("draft_id", rec.ID.String()))
	return rec, nil
}

func (uc *DraftUseCase) Get(ctx context.Context, id uuid.UUID) (*profile.DraftRecord, error) {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()
	return uc.load(ctx, id)
}

func (uc *DraftUseCase) load(ctx context.Context, id uuid.UUID) (*profile.DraftRecord, error) {
	authorID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, apperror.NewAuth("Sign in to edit profiles", nil)
	}
	rec, err := uc.drafts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.AuthorID != authorID {
		return nil, apperror.NewNotFound("draft", id.String())
	}
	return rec, nil
}

// mutate loads the draft, applies fn to its form and saves the result. Any
// error from fn leaves the stored draft as it was.
func (uc *DraftUseCase) mutate(ctx context.Context, id uuid.UUID, op string, fn func(f *profile.Form) error) (*profile.DraftRecord, error) {
	ctx, span := tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.String("draft_id", id.String()))

	rec, err := uc.load(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	form := rec.Form()
	if err := fn(form); err != nil {
		err = formError(err)
		span.RecordError(err)
		return nil, err
	}
	rec.Apply(form, uc.now().UTC())

	if err := uc.drafts.Save(ctx, rec); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return rec, nil
}

func (uc *DraftUseCase) SetFields(ctx context.Context, id uuid.UUID, name, bio, photoURL string) (*profile.DraftRecord, error) {
	return uc.mutate(ctx, id, "SetFields", func(f *profile.Form) error {
		f.SetFields(name, bio, photoURL)
		return nil
	})
}

func (uc *DraftUseCase) AddSkill(ctx context.Context, id uuid.UUID, text string) (*profile.DraftRecord, error) {
	return uc.mutate(ctx, id, "AddSkill", func(f *profile.Form) error {
		f.AddSkill(text)
		return nil
	})
}

func (uc *DraftUseCase) RemoveSkill(ctx context.Context, id uuid.UUID, index int) (*profile.DraftRecord, error) {
	return uc.mutate(ctx, id, "RemoveSkill", func(f *profile.Form) error {
		return f.RemoveSkill(index)
	})
}

func (uc *DraftUseCase) SetSocial(ctx context.Context, id uuid.UUID, key, value string) (*profile.DraftRecord, error) {
	return uc.mutate(ctx, id, "SetSocial", func(f *profile.Form) error {
		k, err := profile.ParseSocialKey(key)
		if err != nil {
			return err
		}
		return f.SetSocial(k, value)
	})
}

// AddProject reports an incomplete project as a validation error so the
// caller can tell it was not added.
func (uc *DraftUseCase) AddProject(ctx context.Context, id uuid.UUID, p profile.Project) (*profile.DraftRecord, error) {
	return uc.mutate(ctx, id, "AddProject", func(f *profile.Form) error {
		if !f.AddProject(p) {
			return profile.ErrIncompleteProject
		}
		return nil
	})
}

func (uc *DraftUseCase) RemoveProject(ctx context.Context, id uuid.UUID, index int) (*profile.DraftRecord, error) {
	return uc.mutate(ctx, id, "RemoveProject", func(f *profile.Form) error {
		return f.RemoveProject(index)
	})
}

// Submit creates or updates the profile from the draft. The draft is only
// removed once the write went through.
func (uc *DraftUseCase) Submit(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "Submit")
	defer span.End()
	span.SetAttributes(attribute.String("draft_id", id.String()))

	rec, err := uc.load(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	p, err := rec.Form().Submit(ctx, uc.submitter, rec.AuthorID)
	if err != nil {
		err = formError(err)
		span.RecordError(err)
		return nil, err
	}

	if err := uc.drafts.Delete(ctx, id); err != nil {
		uc.logger.Warn("Failed to remove submitted draft", zap.String("draft_id", id.String()), zap.Error(err))
	}
	return p, nil
}

func (uc *DraftUseCase) Discard(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "Discard")
	defer span.End()

	if _, err := uc.load(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	return uc.drafts.Delete(ctx, id)
}

var formErrors = []error{
	profile.ErrIndexOutOfRange,
	profile.ErrUnknownSocialKey,
	profile.ErrIncompleteProject,
	profile.ErrMissingName,
	profile.ErrMissingBio,
	profile.ErrMissingPhotoURL,
}

// formError turns the domain's plain form errors into validation errors and
// passes everything else through.
func formError(err error) error {
	for _, fe := range formErrors {
		if errors.Is(err, fe) {
			return apperror.NewValidation(err.Error(), err)
		}
	}
	return err
}
