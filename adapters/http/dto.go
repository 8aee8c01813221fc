package http

import (
	"time"

	"github.com/google/uuid"

	profileUC "github.com/khoahotran/portfolio-hub/internal/application/usecase/profile"
	"github.com/khoahotran/portfolio-hub/internal/domain/profile"
	"github.com/khoahotran/portfolio-hub/internal/domain/user"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
)

const (
	CardSkillPreview      = profileUC.CardSkills
	DashboardSkillPreview = 6
	allSkills             = -1
)

// Auth DTOs

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type confirmRequest struct {
	Token string `json:"token" binding:"required"`
}

type UserDTO struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{ID: u.ID, Email: u.Email, EmailConfirmedAt: u.EmailConfirmedAt, CreatedAt: u.CreatedAt}
}

type SessionDTO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
}

// Profile DTOs

type SocialLinkDTO struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ProjectDTO struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         *string `json:"url,omitempty"`
	Image       *string `json:"image,omitempty"`
}

type ProfileDTO struct {
	ID           uuid.UUID       `json:"id"`
	OwnerID      uuid.UUID       `json:"owner_id"`
	Name         string          `json:"name"`
	Bio          string          `json:"bio"`
	PhotoURL     string          `json:"photo_url"`
	Skills       []string        `json:"skills"`
	HiddenSkills int             `json:"hidden_skills"`
	Socials      []SocialLinkDTO `json:"socials"`
	Projects     []ProjectDTO    `json:"projects"`
	CanModify    bool            `json:"can_modify"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProfileDTO renders one item. preview caps the skills shown; a negative
// value shows them all.
func ToProfileDTO(item profileUC.Item, preview int) ProfileDTO {
	p := item.Profile
	skills, hidden := p.Skills, 0
	if preview >= 0 {
		skills, hidden = p.SkillPreview(preview)
	}

	links := p.Socials.Links()
	socials := make([]SocialLinkDTO, len(links))
	for i, l := range links {
		socials[i] = SocialLinkDTO{Key: string(l.Key), URL: l.URL}
	}

	return ProfileDTO{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		Bio:          p.Bio,
		PhotoURL:     p.PhotoURL,
		Skills:       nonNil(skills),
		HiddenSkills: hidden,
		Socials:      socials,
		Projects:     toProjectDTOs(p.Projects),
		CanModify:    item.CanModify,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToProfileDTOs(items []profileUC.Item, preview int) []ProfileDTO {
	out := make([]ProfileDTO, len(items))
	for i, item := range items {
		out[i] = ToProfileDTO(item, preview)
	}
	return out
}

func toProjectDTOs(ps []profile.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(ps))
	for i, p := range ps {
		out[i] = ProjectDTO{Title: p.Title, Description: p.Description, URL: p.URL, Image: p.Image}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type DashboardDTO struct {
	Role     *string      `json:"role"`
	Profiles []ProfileDTO `json:"profiles"`
}

// ProfileRequest is the full document sent on create and update.
type ProfileRequest struct {
	Name     string            `json:"name"`
	Bio      string            `json:"bio"`
	PhotoURL string            `json:"photo_url"`
	Skills   []string          `json:"skills"`
	Socials  map[string]string `json:"socials"`
	Projects []ProjectDTO      `json:"projects"`
}

// ToDraft runs the request through a Form so it gets the same trimming and
// normalization as an interactive edit.
func (r ProfileRequest) ToDraft() (profile.Draft, error) {
	f := profile.NewForm(nil)
	f.SetFields(r.Name, r.Bio, r.PhotoURL)
	for _, s := range r.Skills {
		f.AddSkill(s)
	}
	seen := make(map[profile.SocialKey]string, len(r.Socials))
	for k, v := range r.Socials {
		key, err := profile.ParseSocialKey(k)
		if err != nil {
			return profile.Draft{}, apperror.NewValidation("unknown social link key '"+k+"'", err)
		}
		if prev, dup := seen[key]; dup {
			return profile.Draft{}, apperror.NewValidation("social link keys '"+prev+"' and '"+k+"' both mean '"+string(key)+"'", nil)
		}
		seen[key] = k
		if err := f.SetSocial(key, v); err != nil {
			return profile.Draft{}, apperror.NewValidation(err.Error(), err)
		}
	}
	for _, p := range r.Projects {
		if !f.AddProject(profile.Project{Title: p.Title, Description: p.Description, URL: p.URL, Image: p.Image}) {
			return profile.Draft{}, apperror.NewValidation(profile.ErrIncompleteProject.Error(), profile.ErrIncompleteProject)
		}
	}
	return f.Draft(), nil
}

// Draft DTOs

type DraftBodyDTO struct {
	Name     string            `json:"name"`
	Bio      string            `json:"bio"`
	PhotoURL string            `json:"photo_url"`
	Skills   []string          `json:"skills"`
	Socials  map[string]string `json:"socials"`
	Projects []ProjectDTO      `json:"projects"`
}

type DraftDTO struct {
	ID         uuid.UUID    `json:"id"`
	OriginalID *uuid.UUID   `json:"original_id"`
	Draft      DraftBodyDTO `json:"draft"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func ToDraftDTO(r *profile.DraftRecord) DraftDTO {
	d := r.Draft.Clone()
	socials := make(map[string]string, len(d.Socials))
	for k, v := range d.Socials {
		socials[string(k)] = v
	}
	dto := DraftDTO{
		ID: r.ID,
		Draft: DraftBodyDTO{
			Name:     d.Name,
			Bio:      d.Bio,
			PhotoURL: d.PhotoURL,
			Skills:   d.Skills,
			Socials:  socials,
			Projects: toProjectDTOs(d.Projects),
		},
		UpdatedAt: r.UpdatedAt,
	}
	if r.OriginalID != uuid.Nil {
		id := r.OriginalID
		dto.OriginalID = &id
	}
	return dto
}

type createDraftRequest struct {
	ProfileID *uuid.UUID `json:"profile_id"`
}

type draftFieldsRequest struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photo_url"`
}

type addSkillRequest struct {
	Skill string `json:"skill"`
}

type setSocialRequest struct {
	URL string `json:"url"`
}
