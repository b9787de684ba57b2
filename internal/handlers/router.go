package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/whatsuprobl9x-arch/novaurl/internal/services"
)

func (h *Handler) SetupRouter(rateLimiter services.RateLimiter) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(h.corsConfig()))

	// Middleware
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	// Routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	{
		api.POST("/urls", h.CreateURL)
		api.GET("/urls", h.ListURLs)
		api.DELETE("/urls/:short_code", h.DeleteURL)
		api.GET("/urls/:short_code/qr", h.LinkQRCode)
	}

	// Catch-all short code resolution
	r.GET("/:short_code", h.ResolveURL)

	return r
}

// corsConfig mirrors the browser-facing frontend setup: explicit origins when
// configured, otherwise echo whatever origin asks. Credentials stay enabled,
// so the wildcard case uses an origin func instead of "*".
func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := h.cfg.AllowedOrigins()
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
			break
		}
	}
	if wildcard || len(origins) == 0 {
		cfg.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}

	return cfg
}
