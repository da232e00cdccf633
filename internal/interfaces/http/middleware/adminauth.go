package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"parlor/internal/infrastructure/auth"
	"parlor/internal/shared/utils"
)

const adminUsernameKey = "admin_username"

// AdminAuth verifies the Bearer token issued by the admin login endpoint.
func AdminAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtService.Verify(parts[1])
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(adminUsernameKey, claims.Username)
		c.Next()
	}
}

// AdminUsername returns the authenticated admin's username, if present.
func AdminUsername(c *gin.Context) string {
	if v, ok := c.Get(adminUsernameKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
