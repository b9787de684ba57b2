package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whatsuprobl9x-arch/novaurl/internal/services"
)

func (h *Handler) RateLimitMiddleware(limiter services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
