package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillPreview(t *testing.T) {
	p := &Profile{Skills: []string{"a", "b", "c", "d", "e", "f", "g"}}

	shown, hidden := p.SkillPreview(4)
	assert.Equal(t, []string{"a", "b", "c", "d"}, shown)
	assert.Equal(t, 3, hidden)

	shown, hidden = p.SkillPreview(10)
	assert.Len(t, shown, 7)
	assert.Zero(t, hidden)
}

func TestSocialLinksOrderAndOmission(t *testing.T) {
	s := Socials{
		SocialInstagram: "https://instagram.com/a",
		SocialGitHub:    "https://github.com/a",
		SocialTwitter:   "",
	}
	links := s.Links()
	assert.Equal(t, []SocialLink{
		{Key: SocialGitHub, URL: "https://github.com/a"},
		{Key: SocialInstagram, URL: "https://instagram.com/a"},
	}, links)
}

func TestParseSocialKey(t *testing.T) {
	k, err := ParseSocialKey(" LinkedIn ")
	assert.NoError(t, err)
	assert.Equal(t, SocialLinkedIn, k)

	_, err = ParseSocialKey("myspace")
	assert.ErrorIs(t, err, ErrUnknownSocialKey)
}
