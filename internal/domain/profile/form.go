package profile

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Form is an editable draft of a profile. An empty original ID means the form
// creates a new profile on submit.
type Form struct {
	originalID uuid.UUID
	draft      Draft
}

// NewForm seeds a form from original, or from empty defaults when original is
// nil.
func NewForm(original *Profile) *Form {
	if original == nil {
		return &Form{draft: Draft{}.Clone()}
	}
	return &Form{originalID: original.ID, draft: original.Draft()}
}

// RestoreForm rebuilds a form from a stored snapshot.
func RestoreForm(originalID uuid.UUID, d Draft) *Form {
	return &Form{originalID: originalID, draft: d.Clone()}
}

func (f *Form) OriginalID() (uuid.UUID, bool) {
	return f.originalID, f.originalID != uuid.Nil
}

func (f *Form) IsEdit() bool {
	return f.originalID != uuid.Nil
}

// Draft returns a copy of the current state.
func (f *Form) Draft() Draft {
	return f.draft.Clone()
}

func (f *Form) SetFields(name, bio, photoURL string) {
	f.draft.Name = name
	f.draft.Bio = bio
	f.draft.PhotoURL = photoURL
}

// AddSkill appends the trimmed text. Empty input is ignored and duplicates are
// kept.
func (f *Form) AddSkill(text string) {
	s := strings.TrimSpace(text)
	if s == "" {
		return
	}
	f.draft.Skills = append(f.draft.Skills, s)
}

func (f *Form) RemoveSkill(index int) error {
	if index < 0 || index >= len(f.draft.Skills) {
		return ErrIndexOutOfRange
	}
	f.draft.Skills = slices.Delete(f.draft.Skills, index, index+1)
	return nil
}

// SetSocial upserts one link. An empty value clears the key.
func (f *Form) SetSocial(key SocialKey, value string) error {
	if !slices.Contains(SocialKeys, key) {
		return ErrUnknownSocialKey
	}
	if f.draft.Socials == nil {
		f.draft.Socials = Socials{}
	}
	value = strings.TrimSpace(value)
	if value == "" {
		delete(f.draft.Socials, key)
		return nil
	}
	f.draft.Socials[key] = value
	return nil
}

// AddProject appends p when both title and description are present and
// reports whether it did. Empty optional fields are stored as absent.
func (f *Form) AddProject(p Project) bool {
	if p.Title == "" || p.Description == "" {
		return false
	}
	f.draft.Projects = append(f.draft.Projects, Project{
		Title:       p.Title,
		Description: p.Description,
		URL:         nonEmpty(p.URL),
		Image:       nonEmpty(p.Image),
	})
	return true
}

func (f *Form) RemoveProject(index int) error {
	if index < 0 || index >= len(f.draft.Projects) {
		return ErrIndexOutOfRange
	}
	f.draft.Projects = slices.Delete(f.draft.Projects, index, index+1)
	return nil
}

// Submitter is what Submit hands the draft to: the repository itself, or a
// use case that checks the policy first.
type Submitter interface {
	Create(ctx context.Context, draft Draft, ownerID uuid.UUID) (*Profile, error)
	Update(ctx context.Context, id uuid.UUID, draft Draft) (*Profile, error)
}

// Submit validates the draft and creates or updates depending on whether the
// form was seeded from a profile. The form is left untouched on failure.
func (f *Form) Submit(ctx context.Context, s Submitter, ownerID uuid.UUID) (*Profile, error) {
	d := f.Draft()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if f.IsEdit() {
		return s.Update(ctx, f.originalID, d)
	}
	return s.Create(ctx, d, ownerID)
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
