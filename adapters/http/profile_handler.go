package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/khoahotran/portfolio-hub/internal/application/usecase/profile"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/auth"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
}

func NewProfileHandler(uc *profileUC.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: uc}
}

// pathID parses :name as a uuid. An id that can't parse can't exist, so it is
// reported as not found.
func pathID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.Error(apperror.NewNotFound(resource, raw))
		return uuid.Nil, false
	}
	return id, true
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	items, err := h.profileUseCase.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": ToProfileDTOs(items, CardSkillPreview)})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c, "id", "profile")
	if !ok {
		return
	}
	item, err := h.profileUseCase.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(*item, allSkills))
}

func (h *ProfileHandler) Dashboard(c *gin.Context) {
	out, err := h.profileUseCase.Dashboard(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	dto := DashboardDTO{Profiles: ToProfileDTOs(out.Items, DashboardSkillPreview)}
	if out.Role != "" {
		r := string(out.Role)
		dto.Role = &r
	}
	c.JSON(http.StatusOK, dto)
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for profile", err))
		return
	}
	d, err := req.ToDraft()
	if err != nil {
		c.Error(err)
		return
	}

	ownerID, _ := auth.UserIDFromContext(c.Request.Context())
	p, err := h.profileUseCase.Create(c.Request.Context(), d, ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToProfileDTO(profileUC.Item{Profile: p, CanModify: true}, allSkills))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := pathID(c, "id", "profile")
	if !ok {
		return
	}
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for profile", err))
		return
	}
	d, err := req.ToDraft()
	if err != nil {
		c.Error(err)
		return
	}

	p, err := h.profileUseCase.Update(c.Request.Context(), id, d)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(profileUC.Item{Profile: p, CanModify: true}, allSkills))
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, ok := pathID(c, "id", "profile")
	if !ok {
		return
	}
	if err := h.profileUseCase.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
