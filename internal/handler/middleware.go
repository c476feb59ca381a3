package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thoughtcloud/thoughtcloud/internal/model"
	"github.com/thoughtcloud/thoughtcloud/internal/service"
)

const authUserKey = "auth_user"

// AuthMiddleware guards mutation routes. It verifies the bearer token and
// re-resolves the user so a deleted account cannot keep acting on a live
// token.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		user, err := authService.ResolveUser(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
