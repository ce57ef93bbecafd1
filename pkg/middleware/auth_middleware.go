package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/auth"
	apperrors "github.com/sweetshop/inventory-service/pkg/errors"
)

// AuthMiddleware validates the Bearer token and attaches the caller identity.
func AuthMiddleware(jwtManager *auth.JWTManager, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apperrors.NewUnauthorized("Access token required"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apperrors.NewUnauthorized("Access token required"))
			return
		}

		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			log.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusForbidden,
				apperrors.NewForbidden("Invalid or expired token"))
			return
		}

		auth.SetIdentity(c, auth.Identity{
			ActorID: claims.UserID,
			Email:   claims.Email,
			Role:    claims.Role,
		})
		c.Next()
	}
}

// RequireRole guards a route group behind a single role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apperrors.NewUnauthorized("Access token required"))
			return
		}
		if id.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apperrors.NewForbidden("Admin access required"))
			return
		}
		c.Next()
	}
}
