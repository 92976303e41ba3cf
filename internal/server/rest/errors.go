package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgInternal           = "Internal server error"
	msgInvalidBody        = "Invalid request body"
	msgInvalidCredentials = "Invalid email or password"
	msgCurrentPassword    = "Current password is incorrect"
	msgConflict           = "User already exists"
	msgUnauthorized       = "Unauthorized"
	msgNotFound           = "User not found"
)

type messageResponse struct {
	Message string `json:"message"`
}

// statusFor maps a service error to an HTTP status and a stable message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict, msgConflict
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, msgTokenInvalid
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// "validation error: passwords do not match" -> "Passwords do not match"
func validationMessage(err error) string {
	_, detail, found := strings.Cut(err.Error(), common.ErrValidation.Error()+": ")
	if !found || detail == "" {
		return "Invalid input"
	}
	return strings.ToUpper(detail[:1]) + detail[1:]
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, messageResponse{Message: msg})
}

func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	abort(c, status, msg)
}
