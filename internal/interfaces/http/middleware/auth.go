package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chatwarden/internal/infrastructure/auth"
	"chatwarden/internal/shared/logger"
	"chatwarden/internal/shared/utils"
)

const (
	ContextKeyUserID  = "user_id"
	ContextKeyLogin   = "login"
	ContextKeyIsAdmin = "is_admin"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth validates the access token from the auth cookie, falling back
// to the Authorization header.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie)

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
				c.Abort()
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
				c.Abort()
				return
			}
			token = parts[1]
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyLogin, claims.Login)
		c.Set(ContextKeyIsAdmin, claims.IsAdmin)

		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextKeyIsAdmin) {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActingOwnerID resolves the tenant scope of a request: admins may act on
// another owner via the user_id query parameter, everyone else acts as
// themselves.
func ActingOwnerID(c *gin.Context) uint {
	ownerID := c.GetUint(ContextKeyUserID)
	if c.GetBool(ContextKeyIsAdmin) {
		if override, err := utils.ParseUintQuery(c, "user_id"); err == nil && override != 0 {
			return override
		}
	}
	return ownerID
}
