package handlers

import (
	"bytes"
	"log/slog"
	"mime/multipart"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/whatsuprobl9x-arch/novaurl/internal/config"
	"github.com/whatsuprobl9x-arch/novaurl/internal/models"
	"github.com/whatsuprobl9x-arch/novaurl/internal/services"
)

func setupTestHandler() (*Handler, *gorm.DB) {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(&models.Link{}, &models.Visit{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		PublicDomain: "nova.test",
		CORSOrigins:  "*",
		// Closed port: geo lookups fail fast and resolve without location data
		GeoAPIURL: "http://127.0.0.1:1",
	}

	notifier := services.NewNotifier(cfg, logger)
	geo := services.NewGeoService(cfg, logger)
	links := services.NewLinkService(db, notifier, logger)
	visits := services.NewVisitService(db, geo, notifier, logger)

	h := NewHandler(cfg, logger, links, visits)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

// multipartForm builds a multipart body with the given fields, plus an
// optional file part named custom_html.
func multipartForm(t *testing.T, fields map[string]string, filename string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("custom_html", filename)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}
