package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"

	"github.com/whatsuprobl9x-arch/novaurl/internal/models"
	"github.com/whatsuprobl9x-arch/novaurl/pkg/utils"
)

// VisitMeta carries the request attributes a resolve needs. Proxy headers
// are trusted as-is; the service has no way to tell an honest proxy from a
// spoofed header.
type VisitMeta struct {
	ForwardedFor string
	RealIP       string
	RemoteAddr   string
	UserAgent    string
}

// ClientAddress picks the visitor address: first X-Forwarded-For entry,
// then X-Real-IP, then the connection peer.
func ClientAddress(meta VisitMeta) string {
	if meta.ForwardedFor != "" {
		first := meta.ForwardedFor
		if idx := strings.Index(first, ","); idx >= 0 {
			first = first[:idx]
		}
		return strings.TrimSpace(first)
	}
	if meta.RealIP != "" {
		return meta.RealIP
	}
	host, _, err := net.SplitHostPort(meta.RemoteAddr)
	if err != nil {
		return meta.RemoteAddr
	}
	return host
}

type VisitService struct {
	db       *gorm.DB
	geo      *GeoService
	notifier *Notifier
	logger   *slog.Logger
}

func NewVisitService(db *gorm.DB, geo *GeoService, notifier *Notifier, logger *slog.Logger) *VisitService {
	return &VisitService{
		db:       db,
		geo:      geo,
		notifier: notifier,
		logger:   logger,
	}
}

// Resolve handles a visit to a short code: it records the visit, bumps the
// click counter, dispatches the visit webhook in the background, and returns
// the interstitial page to serve. The visit row and the counter bump are
// durable before the page is returned; webhook delivery is not awaited.
func (s *VisitService) Resolve(ctx context.Context, shortCode string, meta VisitMeta) ([]byte, error) {
	var link models.Link
	err := s.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	addr := ClientAddress(meta)

	visit := models.Visit{
		ID:          utils.NewID(),
		ShortCode:   shortCode,
		IPAddress:   addr,
		UserAgent:   meta.UserAgent,
		Timestamp:   time.Now().UTC(),
		Geolocation: s.geo.Locate(ctx, addr),
	}
	s.enrichUserAgent(&visit)

	if err := s.db.WithContext(ctx).Create(&visit).Error; err != nil {
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&models.Link{}).
		Where("short_code = ?", shortCode).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1)).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update click count: %w", err)
	}

	go s.notifier.NotifyVisit(context.Background(), link.DiscordWebhook, shortCode, visit)

	s.logger.Info("Short URL visited", "short_code", shortCode, "ip", addr)

	return RenderInterstitial(link)
}

func (s *VisitService) enrichUserAgent(visit *models.Visit) {
	ua := user_agent.New(visit.UserAgent)
	browserName, browserVer := ua.Browser()
	visit.Browser = strings.TrimSpace(browserName + " " + browserVer)
	visit.OS = ua.OS()

	if ua.Mobile() {
		visit.DeviceType = "Mobile"
	} else if ua.Bot() {
		visit.DeviceType = "Bot"
	} else {
		visit.DeviceType = "Desktop"
	}
}
