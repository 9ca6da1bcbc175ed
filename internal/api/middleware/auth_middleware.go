package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/auth"
	"resumeforge/internal/database"
)

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// UserProvisioner 在首次见到某个邮箱时建立账号行（首次登录建行）。
type UserProvisioner interface {
	EnsureByEmail(ctx context.Context, email, displayName string) (*database.User, error)
}

// AuthMiddleware 校验访问令牌并将 userID 注入上下文。
// 令牌由外部鉴权服务签发；首次出现的用户在这里落库。
func AuthMiddleware(verifier *auth.Verifier, users UserProvisioner) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		rawToken := parts[1]
		if strings.TrimSpace(rawToken) == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := verifier.ValidateToken(rawToken)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		user, err := users.EnsureByEmail(c.Request.Context(), claims.Email, claims.DisplayName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}
