package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAddSkill(t *testing.T) {
	f := NewForm(nil)

	f.AddSkill("")
	f.AddSkill("   ")
	assert.Empty(t, f.Draft().Skills)

	f.AddSkill(" Go ")
	f.AddSkill("Go")
	assert.Equal(t, []string{"Go", "Go"}, f.Draft().Skills)
}

func TestRemoveSkill(t *testing.T) {
	f := NewForm(nil)
	for _, s := range []string{"Go", "Rust", "SQL", "Kafka"} {
		f.AddSkill(s)
	}

	require.NoError(t, f.RemoveSkill(1))
	assert.Equal(t, []string{"Go", "SQL", "Kafka"}, f.Draft().Skills)

	require.NoError(t, f.RemoveSkill(2))
	assert.Equal(t, []string{"Go", "SQL"}, f.Draft().Skills)

	assert.ErrorIs(t, f.RemoveSkill(2), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.RemoveSkill(-1), ErrIndexOutOfRange)
	assert.Equal(t, []string{"Go", "SQL"}, f.Draft().Skills)
}

func TestSetSocial(t *testing.T) {
	f := NewForm(nil)

	require.NoError(t, f.SetSocial(SocialGitHub, "https://github.com/alice"))
	require.NoError(t, f.SetSocial(SocialGitHub, "https://github.com/alice2"))
	require.NoError(t, f.SetSocial(SocialWebsite, "https://alice.dev"))
	assert.Equal(t, Socials{
		SocialGitHub:  "https://github.com/alice2",
		SocialWebsite: "https://alice.dev",
	}, f.Draft().Socials)

	require.NoError(t, f.SetSocial(SocialWebsite, ""))
	assert.NotContains(t, f.Draft().Socials, SocialWebsite)

	assert.ErrorIs(t, f.SetSocial(SocialKey("myspace"), "x"), ErrUnknownSocialKey)
}

func TestAddProject(t *testing.T) {
	f := NewForm(nil)

	assert.False(t, f.AddProject(Project{Title: "", Description: "desc"}))
	assert.False(t, f.AddProject(Project{Title: "title", Description: ""}))
	assert.Empty(t, f.Draft().Projects)

	assert.True(t, f.AddProject(Project{Title: "Hub", Description: "Directory", URL: strPtr(""), Image: strPtr("  ")}))
	assert.True(t, f.AddProject(Project{Title: "Shop", Description: "Store", URL: strPtr("https://shop.dev")}))

	projects := f.Draft().Projects
	require.Len(t, projects, 2)
	assert.Nil(t, projects[0].URL)
	assert.Nil(t, projects[0].Image)
	assert.Equal(t, "https://shop.dev", *projects[1].URL)

	require.NoError(t, f.RemoveProject(0))
	assert.Equal(t, "Shop", f.Draft().Projects[0].Title)
	assert.ErrorIs(t, f.RemoveProject(5), ErrIndexOutOfRange)
}

func TestDraftIsACopy(t *testing.T) {
	original := &Profile{
		ID:      uuid.New(),
		Name:    "Alice",
		Skills:  []string{"Go"},
		Socials: Socials{SocialGitHub: "https://github.com/alice"},
	}
	f := NewForm(original)
	f.AddSkill("Rust")
	require.NoError(t, f.SetSocial(SocialTwitter, "https://twitter.com/alice"))

	assert.Equal(t, []string{"Go"}, original.Skills)
	assert.Len(t, original.Socials, 1)

	d := f.Draft()
	d.Skills[0] = "mutated"
	assert.Equal(t, "Go", f.Draft().Skills[0])
}

type recordingSubmitter struct {
	created []Draft
	updated map[uuid.UUID]Draft
	err     error
}

func (r *recordingSubmitter) Create(_ context.Context, d Draft, ownerID uuid.UUID) (*Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.created = append(r.created, d)
	return &Profile{ID: uuid.New(), OwnerID: ownerID, Name: d.Name}, nil
}

func (r *recordingSubmitter) Update(_ context.Context, id uuid.UUID, d Draft) (*Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.updated == nil {
		r.updated = map[uuid.UUID]Draft{}
	}
	r.updated[id] = d
	return &Profile{ID: id, Name: d.Name}, nil
}

func filledForm(original *Profile) *Form {
	f := NewForm(original)
	f.SetFields("Alice", "Builds things", "https://img.example.com/a.jpg")
	return f
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("create without original", func(t *testing.T) {
		s := &recordingSubmitter{}
		p, err := filledForm(nil).Submit(ctx, s, owner)
		require.NoError(t, err)
		assert.Equal(t, owner, p.OwnerID)
		assert.Len(t, s.created, 1)
		assert.Empty(t, s.updated)
	})

	t.Run("update with original", func(t *testing.T) {
		s := &recordingSubmitter{}
		original := &Profile{ID: uuid.New(), OwnerID: owner, Name: "Old"}
		_, err := filledForm(original).Submit(ctx, s, owner)
		require.NoError(t, err)
		assert.Empty(t, s.created)
		assert.Equal(t, "Alice", s.updated[original.ID].Name)
	})

	t.Run("missing required field", func(t *testing.T) {
		s := &recordingSubmitter{}
		f := NewForm(nil)
		f.SetFields("Alice", "", "https://img.example.com/a.jpg")
		_, err := f.Submit(ctx, s, owner)
		assert.ErrorIs(t, err, ErrMissingBio)
		assert.Empty(t, s.created)
	})

	t.Run("failure keeps the draft", func(t *testing.T) {
		boom := errors.New("store down")
		s := &recordingSubmitter{err: boom}
		f := filledForm(nil)
		f.AddSkill("Go")
		_, err := f.Submit(ctx, s, owner)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"Go"}, f.Draft().Skills)
		assert.Equal(t, "Alice", f.Draft().Name)
	})
}
