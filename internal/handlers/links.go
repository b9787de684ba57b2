package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whatsuprobl9x-arch/novaurl/internal/services"
)

type CreateURLRequest struct {
	RedirectURL    string `form:"redirect_url" binding:"required"`
	DiscordWebhook string `form:"discord_webhook" binding:"required"`
	ShortCode      string `form:"short_code"`
}

// CreateURL handles the multipart form request to register a short URL,
// optionally with a custom HTML page to show before redirecting.
func (h *Handler) CreateURL(c *gin.Context) {
	var req CreateURLRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dto := services.CreateLinkDTO{
		RedirectURL:    req.RedirectURL,
		DiscordWebhook: req.DiscordWebhook,
		ShortCode:      req.ShortCode,
	}

	if file, err := c.FormFile("custom_html"); err == nil {
		content, err := readUpload(file)
		if err != nil {
			h.logger.Error("Failed to read uploaded file", "filename", file.Filename, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		dto.MarkupFilename = file.Filename
		dto.Markup = content
	}

	link, err := h.links.Create(c.Request.Context(), dto)
	if err != nil {
		switch {
		case services.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrCodeTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Short code already taken"})
		default:
			h.logger.Error("Failed to create short URL", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create short URL"})
		}
		return
	}

	c.JSON(http.StatusOK, link)
}

// ListURLs returns every registered link for the management frontend.
func (h *Handler) ListURLs(c *gin.Context) {
	links, err := h.links.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list short URLs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list short URLs"})
		return
	}

	c.JSON(http.StatusOK, links)
}

// DeleteURL removes a link by short code.
func (h *Handler) DeleteURL(c *gin.Context) {
	shortCode := c.Param("short_code")

	err := h.links.Delete(c.Request.Context(), shortCode)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
			return
		}
		h.logger.Error("Failed to delete short URL", "short_code", shortCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete short URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "URL deleted successfully"})
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
