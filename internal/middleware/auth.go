package middleware

import (
	"net/http"
	"strings"

	"github.com/14kear/polls-api/internal/services/auth"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	authService *auth.Auth
}

func NewAuthMiddleware(authService *auth.Auth) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Middleware validates the bearer access token. When the token is rejected
// and the client supplied X-Refresh-Token, the pair is rotated and the new
// tokens are returned via X-New-Access-Token / X-New-Refresh-Token headers.
func (m *AuthMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Expose-Headers", "X-New-Access-Token, X-New-Refresh-Token")

		accessToken := extractTokenFromHeader(c.GetHeader("Authorization"))
		refreshToken := c.GetHeader("X-Refresh-Token")

		if accessToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
			return
		}

		ctx := c.Request.Context()

		userID, username, isStaff, err := m.authService.ValidateToken(ctx, accessToken)
		if err == nil {
			c.Set("userID", userID)
			c.Set("username", username)
			c.Set("isStaff", isStaff)
			c.Next()
			return
		}

		if refreshToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		newAccess, newRefresh, err := m.authService.RefreshTokens(ctx, refreshToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token refresh failed"})
			return
		}

		userID, username, isStaff, err = m.authService.ValidateToken(ctx, newAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token validation after refresh failed"})
			return
		}

		c.Header("X-New-Access-Token", newAccess)
		c.Header("X-New-Refresh-Token", newRefresh)

		c.Request.Header.Set("Authorization", "Bearer "+newAccess)
		c.Request.Header.Set("X-Refresh-Token", newRefresh)
		c.Set("userID", userID)
		c.Set("username", username)
		c.Set("isStaff", isStaff)

		c.Next()
	}
}

func extractTokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
