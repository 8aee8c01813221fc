package profile

import (
	"context"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/internal/domain/profile"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

const (
	feedSize = 20
	// CardSkills is how many skills a profile card shows.
	CardSkills = 4
)

// FeedUseCase renders the newest profiles as an RSS/Atom feed.
type FeedUseCase struct {
	profileRepo profile.Repository
	publicURL   string
	logger      logger.Logger
	now         func() time.Time
}

func NewFeedUseCase(repo profile.Repository, publicURL string, log logger.Logger) *FeedUseCase {
	return &FeedUseCase{
		profileRepo: repo,
		publicURL:   strings.TrimRight(publicURL, "/"),
		logger:      log,
		now:         time.Now,
	}
}

func (uc *FeedUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	ctx, span := tracer.Start(ctx, "Feed")
	defer span.End()

	ps, err := uc.profileRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to list profiles for feed", err)
		return nil, err
	}
	if len(ps) > feedSize {
		ps = ps[:feedSize]
	}

	feed := &feeds.Feed{
		Title:       "Portfolio Hub",
		Link:        &feeds.Link{Href: uc.publicURL},
		Description: "Newest portfolios.",
		Created:     uc.now(),
	}

	for _, p := range ps {
		skills, _ := p.SkillPreview(CardSkills)
		desc := p.Bio
		if len(skills) > 0 {
			desc += "\n\nSkills: " + strings.Join(skills, ", ")
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.ID.String(),
			Title:       p.Name,
			Link:        &feeds.Link{Href: uc.publicURL + "/profiles/" + p.ID.String()},
			Description: desc,
			Created:     p.CreatedAt,
			Updated:     p.UpdatedAt,
		})
	}

	uc.logger.Debug("Feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
