package profile

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SocialKey string

const (
	SocialGitHub    SocialKey = "github"
	SocialLinkedIn  SocialKey = "linkedin"
	SocialTwitter   SocialKey = "twitter"
	SocialWebsite   SocialKey = "website"
	SocialFacebook  SocialKey = "facebook"
	SocialInstagram SocialKey = "instagram"
)

// SocialKeys is the fixed key set in display order.
var SocialKeys = []SocialKey{
	SocialGitHub,
	SocialLinkedIn,
	SocialTwitter,
	SocialWebsite,
	SocialFacebook,
	SocialInstagram,
}

var (
	ErrUnknownSocialKey  = errors.New("unknown social link key")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrMissingName       = errors.New("name is required")
	ErrMissingBio        = errors.New("bio is required")
	ErrMissingPhotoURL   = errors.New("photo_url is required")
	ErrIncompleteProject = errors.New("project title and description are required")
)

func ParseSocialKey(s string) (SocialKey, error) {
	k := SocialKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SocialKeys, k) {
		return k, nil
	}
	return "", ErrUnknownSocialKey
}

type Socials map[SocialKey]string

type SocialLink struct {
	Key SocialKey
	URL string
}

// Links returns the non-empty entries in SocialKeys order.
func (s Socials) Links() []SocialLink {
	links := make([]SocialLink, 0, len(s))
	for _, k := range SocialKeys {
		if url := s[k]; url != "" {
			links = append(links, SocialLink{Key: k, URL: url})
		}
	}
	return links
}

type Project struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         *string `json:"url,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Draft is the user-editable part of a profile. Create and Update always send
// the whole document.
type Draft struct {
	Name     string    `json:"name"`
	Bio      string    `json:"bio"`
	PhotoURL string    `json:"photo_url"`
	Skills   []string  `json:"skills"`
	Socials  Socials   `json:"socials"`
	Projects []Project `json:"projects"`
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(d.Bio) == "" {
		return ErrMissingBio
	}
	if strings.TrimSpace(d.PhotoURL) == "" {
		return ErrMissingPhotoURL
	}
	for _, p := range d.Projects {
		if p.Title == "" || p.Description == "" {
			return ErrIncompleteProject
		}
	}
	return nil
}

// Clone returns a deep copy so callers can't alias the slices or map.
func (d Draft) Clone() Draft {
	out := d
	out.Skills = slices.Clone(d.Skills)
	if out.Skills == nil {
		out.Skills = []string{}
	}
	out.Socials = maps.Clone(d.Socials)
	if out.Socials == nil {
		out.Socials = Socials{}
	}
	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		out.Projects[i] = Project{
			Title:       p.Title,
			Description: p.Description,
			URL:         clonePtr(p.URL),
			Image:       clonePtr(p.Image),
		}
	}
	return out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

type Profile struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	PhotoURL  string    `json:"photo_url"`
	Skills    []string  `json:"skills"`
	Socials   Socials   `json:"socials"`
	Projects  []Project `json:"projects"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) Draft() Draft {
	return Draft{
		Name:     p.Name,
		Bio:      p.Bio,
		PhotoURL: p.PhotoURL,
		Skills:   p.Skills,
		Socials:  p.Socials,
		Projects: p.Projects,
	}.Clone()
}

// SkillPreview returns the first n skills and how many were left out.
func (p *Profile) SkillPreview(n int) ([]string, int) {
	if n < 0 {
		n = 0
	}
	if len(p.Skills) <= n {
		return p.Skills, 0
	}
	return p.Skills[:n], len(p.Skills) - n
}

// Repository is the profiles table. All listings are newest first.
type Repository interface {
	List(ctx context.Context) ([]*Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	Create(ctx context.Context, draft Draft, ownerID uuid.UUID) (*Profile, error)
	Update(ctx context.Context, id uuid.UUID, draft Draft) (*Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
