package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-hub/internal/domain/profile"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
)

func validRequest() ProfileRequest {
	return ProfileRequest{
		Name:     "Ada",
		Bio:      "Engines",
		PhotoURL: "https://example.com/a.png",
		Skills:   []string{" Go ", ""},
	}
}

func TestProfileRequestToDraftNormalizes(t *testing.T) {
	req := validRequest()
	req.Socials = map[string]string{"GitHub": " https://github.com/ada ", "website": ""}

	d, err := req.ToDraft()
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, d.Skills)
	assert.Equal(t, profile.Socials{profile.SocialGitHub: "https://github.com/ada"}, d.Socials)
}

func TestProfileRequestToDraftRejectsDuplicateSocialKeys(t *testing.T) {
	req := validRequest()
	req.Socials = map[string]string{
		"GitHub": "https://github.com/ada",
		"github": "https://github.com/someone-else",
	}

	for range 20 {
		_, err := req.ToDraft()
		require.ErrorIs(t, err, apperror.ErrInvalidInput)
	}
}

func TestProfileRequestToDraftRejectsUnknownSocialKey(t *testing.T) {
	req := validRequest()
	req.Socials = map[string]string{"myspace": "https://myspace.com/ada"}

	_, err := req.ToDraft()
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
