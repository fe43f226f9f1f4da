package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"askmira/internal/auth_service/service"
	"askmira/pkg/ratelimiter"
)

// Context keys set by AuthMiddleware.
const (
	ContextKeyUsername = "username"
	ContextKeyJTI      = "jti"
)

// AuthMiddleware 创建一个 Gin 中间件，用于验证 JWT 并检查黑名单。
func AuthMiddleware(svc *service.Service, tokens service.TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, err := svc.ParseToken(tokenString)
		if err != nil {
			var vErr *jwt.ValidationError
			if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		username, _ := claims["username"].(string)
		if username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		jti, _ := claims["jti"].(string)
		if tokens != nil && jti != "" {
			revoked, err := tokens.IsRevoked(c.Request.Context(), jti)
			if err != nil || revoked {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
				c.Abort()
				return
			}
		}

		c.Set(ContextKeyUsername, username)
		c.Set(ContextKeyJTI, jti)
		c.Next()
	}
}

// RateLimitMiddleware 创建一个基于令牌桶的限流中间件。
func RateLimitMiddleware(limiter ratelimiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
