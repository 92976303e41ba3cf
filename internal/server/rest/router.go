// Package rest exposes the credential service over HTTP (gin) and guards
// protected routes with a bearer-token middleware.
package rest

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/gin-gonic/gin"
)

// CredentialService is the part of services.CredentialService the HTTP API uses.
type CredentialService interface {
	TokenResolver
	Enroll(ctx context.Context, email, password, confirm string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ChangePassword(ctx context.Context, principalID, current, newPassword, confirm string) error
	Principal(ctx context.Context, principalID string) (*models.Principal, error)
}

// NewRouter builds the gin engine with public and guarded routes.
func NewRouter(svc CredentialService, strict bool, logger logging.Logger) *gin.Engine {
	h := &Handler{svc: svc, logger: logger.With("module", "rest")}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	r.GET("/healthz", h.Health)

	users := r.Group("/api/users")
	users.POST("/signup", h.Signup)
	users.POST("/login", h.Login)

	protected := users.Group("", Guard(svc, strict, h.logger))
	protected.GET("/protected", h.Protected)
	protected.GET("/me", h.Me)
	protected.POST("/password", h.ChangePassword)

	return r
}

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
