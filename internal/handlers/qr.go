package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/whatsuprobl9x-arch/novaurl/internal/services"
)

// LinkQRCode renders a QR code pointing at the public short URL. The
// optional size query selects the image edge in pixels.
func (h *Handler) LinkQRCode(c *gin.Context) {
	shortCode := c.Param("short_code")

	if _, err := h.links.Get(c.Request.Context(), shortCode); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
			return
		}
		h.logger.Error("Failed to look up short URL", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	size, _ := strconv.Atoi(c.Query("size"))

	content := fmt.Sprintf("https://%s/%s", h.cfg.PublicDomain, shortCode)
	png, err := services.GenerateQRPNG(content, size)
	if err != nil {
		h.logger.Error("Failed to generate QR code", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
