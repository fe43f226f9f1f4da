package api

import (
	"github.com/gin-gonic/gin"

	"askmira/internal/auth_service/service"
	"askmira/pkg/ratelimiter"
)

// SetupRouter 配置并返回一个 Gin 引擎实例。limiter 为 nil 时不启用限流。
func SetupRouter(h *Handler, svc *service.Service, tokens service.TokenRevoker, limiter ratelimiter.RateLimiter) *gin.Engine {
	// 使用默认中间件 (logger, recovery) 创建一个 Gin 引擎。
	r := gin.Default()

	if limiter != nil {
		r.Use(RateLimitMiddleware(limiter))
	}

	authMiddleware := AuthMiddleware(svc, tokens)

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)

			protected := auth.Group("")
			protected.Use(authMiddleware)
			{
				protected.GET("/protected", h.Protected)
				protected.POST("/logout", h.Logout)
			}
		}
	}

	return r
}
