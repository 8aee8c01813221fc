package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/khoahotran/portfolio-hub/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
)

type AuthHandler struct {
	authUseCase *authUC.AuthUseCase
}

func NewAuthHandler(uc *authUC.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: uc}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for sign up", err))
		return
	}

	out, err := h.authUseCase.SignUp(c.Request.Context(), authUC.SignUpInput{Email: req.Email, Password: req.Password})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":                  ToUserDTO(out.User),
		"confirmation_required": true,
		"confirmation_sent":     out.ConfirmationSent,
	})
}

func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("token is required", err))
		return
	}

	u, err := h.authUseCase.ConfirmEmail(c.Request.Context(), req.Token)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": ToUserDTO(u)})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for sign in", err))
		return
	}

	out, err := h.authUseCase.SignIn(c.Request.Context(), authUC.SignInInput{Email: req.Email, Password: req.Password})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": SessionDTO{
			AccessToken: out.AccessToken,
			TokenType:   "bearer",
			ExpiresAt:   out.ExpiresAt,
			UserID:      out.User.ID,
			Email:       out.User.Email,
		},
		"user": ToUserDTO(out.User),
	})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.authUseCase.SignOut(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) GetSession(c *gin.Context) {
	s := h.authUseCase.GetSession(c.Request.Context())
	if s == nil {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": SessionDTO{
		AccessToken: s.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   s.Claims.ExpiresAtTime(),
		UserID:      s.Claims.UserID,
		Email:       s.Claims.Email,
	}})
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	u, err := h.authUseCase.GetUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": ToUserDTO(u)})
}

func (h *AuthHandler) GetRole(c *gin.Context) {
	r, err := h.authUseCase.GetCurrentUserRole(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if r == nil {
		c.JSON(http.StatusOK, gin.H{"role": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": string(r.Role)})
}
