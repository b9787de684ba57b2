package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/whatsuprobl9x-arch/novaurl/internal/config"
	"github.com/whatsuprobl9x-arch/novaurl/internal/models"
)

const (
	webhookTimeout = 5 * time.Second

	embedAuthorName = "NOVAURL"
	colorVisit      = 0x7289DA
	colorCreated    = 0x00FF00

	// maxUserAgentChars caps the user agent shown in a visit embed.
	maxUserAgentChars = 100
)

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedAuthor struct {
	Name string `json:"name"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Author    embedAuthor  `json:"author"`
	Fields    []embedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
}

type webhookMessage struct {
	Embeds []embed `json:"embeds"`
}

// Notifier posts embed-formatted messages to the per-link webhook target.
// Delivery is best effort: every failure is logged and swallowed, never
// surfaced to the caller.
type Notifier struct {
	cfg    config.Config
	logger *slog.Logger
	client *http.Client
}

func NewNotifier(cfg config.Config, logger *slog.Logger) *Notifier {
	return &Notifier{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{Timeout: webhookTimeout},
	}
}

// NotifyCreation announces a freshly created link.
func (n *Notifier) NotifyCreation(ctx context.Context, target, shortCode, redirectURL string) {
	msg := webhookMessage{Embeds: []embed{{
		Title:  "New Short URL Created",
		Color:  colorCreated,
		Author: embedAuthor{Name: embedAuthorName},
		Fields: []embedField{
			{Name: "Short URL", Value: n.shortURLBlock(shortCode), Inline: false},
			{Name: "Redirects to", Value: redirectURL, Inline: false},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}}}

	n.post(ctx, target, msg)
}

// NotifyVisit announces a resolved visit, including whatever geolocation data
// the lookup produced.
func (n *Notifier) NotifyVisit(ctx context.Context, target, shortCode string, visit models.Visit) {
	fields := []embedField{
		{Name: "Short URL", Value: n.shortURLBlock(shortCode), Inline: false},
		{Name: "IP Address", Value: orUnknown(visit.IPAddress), Inline: true},
		{Name: "User Agent", Value: truncateUserAgent(visit.UserAgent), Inline: false},
	}

	if geo := visit.Geolocation; geo != nil {
		location := fmt.Sprintf("%s, %s, %s", orUnknown(geo.City), orUnknown(geo.RegionName), orUnknown(geo.Country))
		fields = append(fields,
			embedField{Name: "Location", Value: location, Inline: true},
			embedField{Name: "ISP", Value: orUnknown(geo.ISP), Inline: true},
		)
	}

	msg := webhookMessage{Embeds: []embed{{
		Title:     "New URL Visit",
		Color:     colorVisit,
		Author:    embedAuthor{Name: embedAuthorName},
		Fields:    fields,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}}}

	n.post(ctx, target, msg)
}

func (n *Notifier) shortURLBlock(shortCode string) string {
	return fmt.Sprintf("```%s/%s```", n.cfg.PublicDomain, shortCode)
}

func (n *Notifier) post(ctx context.Context, target string, msg webhookMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		n.logger.Warn("Webhook: failed to encode message", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("Webhook: failed to build request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("Webhook: delivery failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.logger.Warn("Webhook: delivery rejected", "status", resp.StatusCode)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// truncateUserAgent shortens oversized user agent strings so the embed stays
// readable. Counting is by rune, not byte.
func truncateUserAgent(ua string) string {
	if ua == "" {
		return "Unknown"
	}
	runes := []rune(ua)
	if len(runes) > maxUserAgentChars {
		return string(runes[:maxUserAgentChars]) + "..."
	}
	return ua
}
