package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/interfaces/http/response"
	"firmdesk.backend/pkg/jwt"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "user_email"
	ContextRole   = "user_role"
)

// Auth validates the Bearer token and stores operator identity on the
// request context.
func Auth(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, domainerrors.Unauthorized("authorization header required"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, domainerrors.Unauthorized("authorization header must be a Bearer token"))
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, domainerrors.Unauthorized("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID.String())
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects requests whose token does not carry one of the
// allowed roles. Must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		response.Error(c, domainerrors.Forbidden("insufficient permissions"))
		c.Abort()
	}
}
