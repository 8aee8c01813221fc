package http

import (
	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/portfolio-hub/internal/application/usecase/profile"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

type FeedHandler struct {
	feedUseCase *profileUC.FeedUseCase
	logger      logger.Logger
}

func NewFeedHandler(uc *profileUC.FeedUseCase, log logger.Logger) *FeedHandler {
	return &FeedHandler{feedUseCase: uc, logger: log}
}

func (h *FeedHandler) RSS(c *gin.Context) {
	feed, err := h.feedUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}

func (h *FeedHandler) Atom(c *gin.Context) {
	feed, err := h.feedUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", "application/atom+xml; charset=utf-8")
	if err := feed.WriteAtom(c.Writer); err != nil {
		h.logger.Error("Failed to write Atom feed to response", err)
	}
}
