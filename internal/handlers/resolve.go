package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whatsuprobl9x-arch/novaurl/internal/services"
)

// ResolveURL serves a visited short link: the visit is recorded and the
// interstitial page with the timed redirect is returned.
func (h *Handler) ResolveURL(c *gin.Context) {
	shortCode := c.Param("short_code")

	meta := services.VisitMeta{
		ForwardedFor: c.GetHeader("X-Forwarded-For"),
		RealIP:       c.GetHeader("X-Real-IP"),
		RemoteAddr:   c.Request.RemoteAddr,
		UserAgent:    c.Request.UserAgent(),
	}

	html, err := h.visits.Resolve(c.Request.Context(), shortCode, meta)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
			return
		}
		h.logger.Error("Failed to resolve short URL", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve short URL"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
