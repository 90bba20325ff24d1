package middleware

import (
	"context"
	"strings"

	"klinik-sentosa-server/internal/access"
	"klinik-sentosa-server/internal/models"
	"klinik-sentosa-server/internal/notify"
	"klinik-sentosa-server/internal/session"
	"klinik-sentosa-server/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sessionKey  = "session"
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// SessionResolver turns a bearer token into a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

// RoleLookup returns the single role of an identity.
type RoleLookup interface {
	LookupRole(ctx context.Context, userID string) (models.Role, error)
}

// AuthMiddleware requires a live session. Callers without one get a 401
// carrying only a redirect to the sign-in page.
func AuthMiddleware(sessions SessionResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.RedirectToAuth(c, access.AuthRoute)
			c.Abort()
			return
		}

		s, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.Debug("session rejected", zap.Error(err))
			utils.RedirectToAuth(c, access.AuthRoute)
			c.Abort()
			return
		}

		// Set session information in context for downstream handlers
		c.Set(sessionKey, s)
		c.Set(userIDKey, s.UserID)

		c.Next()
	}
}

// RoleAuthMiddleware allows only callers whose single role is one of
// allowedRoles. It must run after AuthMiddleware.
func RoleAuthMiddleware(roles RoleLookup, logger *zap.Logger, allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			utils.RedirectToAuth(c, access.AuthRoute)
			c.Abort()
			return
		}

		role, err := roles.LookupRole(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("role lookup failed", zap.String("user_id", userID), zap.Error(err))
			utils.Forbidden(c, "You do not have permission to access this resource.", notify.NoRole())
			c.Abort()
			return
		}

		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				isAllowed = true
				break
			}
		}
		if !isAllowed {
			utils.Forbidden(c, "You do not have permission to access this resource.", notify.NoRole())
			c.Abort()
			return
		}

		c.Set(userRoleKey, role)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// SessionFromContext returns the session set by AuthMiddleware.
func SessionFromContext(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}

// Helper function to get user ID from context
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	idStr, ok := userID.(string)
	return idStr, ok
}

// Helper function to get user role from context
func GetUserRoleFromContext(c *gin.Context) (models.Role, bool) {
	userRole, exists := c.Get(userRoleKey)
	if !exists {
		return "", false
	}
	role, ok := userRole.(models.Role)
	return role, ok
}
