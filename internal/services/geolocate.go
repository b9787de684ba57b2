package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/whatsuprobl9x-arch/novaurl/internal/config"
	"github.com/whatsuprobl9x-arch/novaurl/internal/models"
)

// geoLookupTimeout bounds a single lookup; on expiry the visit proceeds
// without location data.
const geoLookupTimeout = 5 * time.Second

type GeoService struct {
	cfg    config.Config
	logger *slog.Logger
	client *http.Client
}

func NewGeoService(cfg config.Config, logger *slog.Logger) *GeoService {
	return &GeoService{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{Timeout: geoLookupTimeout},
	}
}

// Locate performs a single lookup of addr against the configured location
// service. Any failure (network error, non-200 status, malformed body)
// yields nil; the caller treats nil as "no data".
func (s *GeoService) Locate(ctx context.Context, addr string) *models.GeoLocation {
	endpoint := fmt.Sprintf("%s/%s", s.cfg.GeoAPIURL, url.PathEscape(addr))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		s.logger.Warn("GeoIP: failed to build lookup request", "address", addr, "error", err)
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("GeoIP: lookup failed", "address", addr, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("GeoIP: lookup returned non-200", "address", addr, "status", resp.StatusCode)
		return nil
	}

	var geo models.GeoLocation
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		s.logger.Warn("GeoIP: failed to decode lookup response", "address", addr, "error", err)
		return nil
	}

	return &geo
}
