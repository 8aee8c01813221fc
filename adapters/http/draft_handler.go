package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	draftUC "github.com/khoahotran/portfolio-hub/internal/application/usecase/draft"
	profileUC "github.com/khoahotran/portfolio-hub/internal/application/usecase/profile"
	"github.com/khoahotran/portfolio-hub/internal/domain/profile"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
)

type DraftHandler struct {
	draftUseCase *draftUC.DraftUseCase
}

func NewDraftHandler(uc *draftUC.DraftUseCase) *DraftHandler {
	return &DraftHandler{draftUseCase: uc}
}

func pathIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(apperror.NewValidation("index must be an integer", err))
		return 0, false
	}
	return i, true
}

func (h *DraftHandler) respond(c *gin.Context, rec *profile.DraftRecord, err error) {
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDraftDTO(rec))
}

func (h *DraftHandler) CreateDraft(c *gin.Context) {
	var req createDraftRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.NewValidation("invalid JSON body for draft", err))
			return
		}
	}
	input := draftUC.CreateInput{}
	if req.ProfileID != nil {
		input.ProfileID = *req.ProfileID
	}

	rec, err := h.draftUseCase.Create(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToDraftDTO(rec))
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	id, ok := pathID(c, "id", "draft")
	if !ok {
		return
	}
	rec, err := h.draftUseCase.Get(c.Request.Context(), id)
	h.respond(c, rec, err)
}

func (h *DraftHandler) SetFields(c *gin.Context) {
	id, ok := pathID(c, "id", "draft")
	if !ok {
		return
	}
	var req draftFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for draft fields", err))
		return
	}
	rec, err := h.draftUseCase.SetFields(c.Request.Context(), id, req.Name, req.Bio, req.PhotoURL)
	h.respond(c, rec, err)
}

func (h *DraftHandler) AddSkill(c *gin.Context) {
	id, ok := pathID(c, "id", "draft")
	if !ok {
		return
	}
	var req addSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for skill", err))
		return
	}
	rec, err := h.draftUseCase.AddSkill(c.Request.Context(), id, req.Skill)
	h.respond(c, rec, err)
}

func (h *DraftHandler) RemoveSkill(c *gin.Context) {
	id, ok := pathID(c, "id", "draft")
	if !ok {
		return
	}
	i, ok := pathIndex(c)
	if !ok {
		return
	}
	rec, err := h.draftUseCase.RemoveSkill(c.Request.Context(), id, i)
	h.respond(c, rec, err)
}

func (h *DraftHandler) SetSocial(c *gin.Context) {
	id, ok := pathID(c, "id", "draft")
	if !ok {
		return
	}
	var req setSocialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for social link", err))
		return
	}
	rec, err := h.draftUseCase.SetSocial(c.Request.Context(), id, c.Param("key"), req.URL)
	h.respond(c, rec, err)
}

func (h *DraftHandler) AddProject(c *gin.Context) {
	id, ok := pathID(c, "id", "draft")
	if !ok {
		return
	}
	var req ProjectDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for project", err))
		return
	}
	rec, err := h.draftUseCase.AddProject(c.Request.Context(), id, profile.Project{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Image:       req.Image,
	})
	h.respond(c, rec, err)
}

func (h *DraftHandler) RemoveProject(c *gin.Context) {
	id, ok := pathID(c, "id", "draft")
	if !ok {
		return
	}
	i, ok := pathIndex(c)
	if !ok {
		return
	}
	rec, err := h.draftUseCase.RemoveProject(c.Request.Context(), id, i)
	h.respond(c, rec, err)
}

func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	id, ok := pathID(c, "id", "draft")
	if !ok {
		return
	}
	p, err := h.draftUseCase.Submit(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(profileUC.Item{Profile: p, CanModify: true}, allSkills))
}

func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	id, ok := pathID(c, "id", "draft")
	if !ok {
		return
	}
	if err := h.draftUseCase.Discard(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
