package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatsuprobl9x-arch/novaurl/internal/models"
)

func TestResolveURLHandler(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	t.Run("Unknown short code", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/nosuch12", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "URL not found"}`, w.Body.String())
	})

	t.Run("Visit serves interstitial and records", func(t *testing.T) {
		link := createTestURL(t, r, map[string]string{
			"redirect_url":    "https://example.com/landing",
			"discord_webhook": testHook,
		})

		req, _ := http.NewRequest("GET", "/"+link.ShortCode, nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		req.Header.Set("User-Agent", "curl/8.5.0")
		req.RemoteAddr = "10.0.0.9:4321"

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "https://example.com/landing")
		assert.Contains(t, w.Body.String(), "Loading...")

		var visits []models.Visit
		db.Where("short_code = ?", link.ShortCode).Find(&visits)
		require.Len(t, visits, 1)
		assert.Equal(t, "203.0.113.7", visits[0].IPAddress)
		assert.Equal(t, "curl/8.5.0", visits[0].UserAgent)

		var reloaded models.Link
		require.NoError(t, db.Where("short_code = ?", link.ShortCode).First(&reloaded).Error)
		assert.EqualValues(t, 1, reloaded.ClickCount)
	})

	t.Run("Custom page is served", func(t *testing.T) {
		page := "<html><body><h1>Branded</h1></body></html>"
		body, contentType := multipartForm(t, map[string]string{
			"redirect_url":    "https://example.com/branded",
			"discord_webhook": testHook,
		}, "landing.html", []byte(page))
		req, _ := http.NewRequest("POST", "/api/urls", body)
		req.Header.Set("Content-Type", contentType)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var link models.Link
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))

		req, _ = http.NewRequest("GET", "/"+link.ShortCode, nil)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<h1>Branded</h1>")
		assert.Contains(t, w.Body.String(), `window.location.href = "https://example.com/branded"`)
	})

	t.Run("Each visit is counted", func(t *testing.T) {
		link := createTestURL(t, r, map[string]string{
			"redirect_url":    "https://example.com/counted",
			"discord_webhook": testHook,
		})

		for i := 0; i < 3; i++ {
			req, _ := http.NewRequest("GET", "/"+link.ShortCode, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		var reloaded models.Link
		require.NoError(t, db.Where("short_code = ?", link.ShortCode).First(&reloaded).Error)
		assert.EqualValues(t, 3, reloaded.ClickCount)
	})
}
