package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalfonso89/auth-currency-gateway/internal/models"
	"github.com/dalfonso89/auth-currency-gateway/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	authenticatedUserKey = "uid"

	msgMissingBearerToken = "missing bearer token"
	msgInvalidToken       = "invalid or expired token"
)

type contextKey string

const userContextKey = contextKey("authenticatedUser")

// RequireBearerToken rejects requests without a valid "Authorization: Bearer <token>"
// header. Verification is delegated to verifier; every verification failure is a
// plain 401 to the caller and the cause is only logged.
func RequireBearerToken(verifier service.TokenVerifier, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, _ := strings.Cut(c.GetHeader("Authorization"), " ")
		if scheme != "Bearer" || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: msgMissingBearerToken})
			return
		}

		user, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"path":       c.Request.URL.Path,
				"request_id": GetRequestID(c),
				"error":      err.Error(),
			}).Warn("Bearer token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: msgInvalidToken})
			return
		}

		c.Set(authenticatedUserKey, user.UID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userContextKey, user))
		c.Next()
	}
}

// UserFromContext returns the identity attached by RequireBearerToken
func UserFromContext(ctx context.Context) (models.AuthenticatedUser, bool) {
	user, ok := ctx.Value(userContextKey).(models.AuthenticatedUser)
	return user, ok
}
