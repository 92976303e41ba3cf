package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const (
	msgTokenMissing = "Access denied. Token not provided."
	msgTokenInvalid = "Invalid token."

	principalIDKey = "principalID"
)

// TokenResolver turns a bearer token into a principal id. With mustExist the
// principal must still be present in the store.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string, mustExist bool) (string, error)
}

// Guard rejects requests without a valid bearer token before the handler
// runs. On success the principal id is available through PrincipalID and
// auth.PrincipalFromContext on the request context.
func Guard(resolver TokenResolver, strict bool, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := common.ParseBearer(c.GetHeader(common.AuthorizationHeader))
		if !ok {
			abort(c, http.StatusUnauthorized, msgTokenMissing)
			return
		}

		ctx := c.Request.Context()
		id, err := resolver.ResolveToken(ctx, token, strict)
		if err != nil {
			if errors.Is(err, common.ErrInvalidToken) {
				logger.Debug(ctx, "token rejected", "error", err)
				abort(c, http.StatusUnauthorized, msgTokenInvalid)
				return
			}
			logger.Error(ctx, "token resolution failed", "error", err)
			abort(c, http.StatusInternalServerError, msgInternal)
			return
		}

		c.Set(principalIDKey, id)
		c.Request = c.Request.WithContext(auth.WithPrincipal(ctx, id))
		c.Next()
	}
}

// PrincipalID returns the id attached by Guard.
func PrincipalID(c *gin.Context) (string, bool) {
	id := c.GetString(principalIDKey)
	return id, id != ""
}
