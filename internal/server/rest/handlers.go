package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc    CredentialService
	logger logging.Logger
}

type signupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type principalResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if _, err := h.svc.Enroll(c.Request.Context(), req.Email, req.Password, req.ConfirmPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, messageResponse{Message: "Signup successful"})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token})
}

func (h *Handler) Protected(c *gin.Context) {
	c.JSON(http.StatusOK, messageResponse{Message: "This is a protected route."})
}

func (h *Handler) Me(c *gin.Context) {
	id, _ := PrincipalID(c)

	p, err := h.svc.Principal(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, principalResponse{ID: p.ID, Email: p.Email})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	id, _ := PrincipalID(c)
	if err := h.svc.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			abort(c, http.StatusUnauthorized, msgCurrentPassword)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Password changed"})
}
