package models

import (
	"time"
)

type Link struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	ShortCode      string    `gorm:"uniqueIndex;not null;size:20" json:"short_code"`
	RedirectURL    string    `gorm:"not null;type:text" json:"redirect_url"`
	DiscordWebhook string    `gorm:"not null;type:text" json:"discord_webhook"`
	CustomHTML     *string   `gorm:"type:text" json:"custom_html,omitempty"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	ClickCount     int64     `gorm:"column:click_count;not null;default:0" json:"click_count"`
}

// TableName overrides the table name used by Link to `links`
func (Link) TableName() string {
	return "links"
}

// HasCustomHTML reports whether the link carries uploaded interstitial markup.
func (l *Link) HasCustomHTML() bool {
	return l.CustomHTML != nil && *l.CustomHTML != ""
}
