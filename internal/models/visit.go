package models

import (
	"time"
)

// GeoLocation is the payload returned by the ip-api style lookup service.
// It is stored on the visit row exactly as received; a nil pointer means the
// lookup failed or never ran.
type GeoLocation struct {
	Status      string  `json:"status,omitempty"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
	Region      string  `json:"region,omitempty"`
	RegionName  string  `json:"regionName,omitempty"`
	City        string  `json:"city,omitempty"`
	Zip         string  `json:"zip,omitempty"`
	Lat         float64 `json:"lat,omitempty"`
	Lon         float64 `json:"lon,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`
	ISP         string  `json:"isp,omitempty"`
	Org         string  `json:"org,omitempty"`
	AS          string  `json:"as,omitempty"`
	Query       string  `json:"query,omitempty"`
}

type Visit struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	ShortCode   string       `gorm:"index;not null;size:20" json:"short_code"`
	IPAddress   string       `gorm:"size:45" json:"ip_address"`
	UserAgent   string       `gorm:"type:text" json:"user_agent,omitempty"`
	Browser     string       `gorm:"size:100" json:"browser,omitempty"`
	OS          string       `gorm:"size:100" json:"os,omitempty"`
	DeviceType  string       `gorm:"size:50" json:"device_type,omitempty"`
	Timestamp   time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
	Geolocation *GeoLocation `gorm:"serializer:json;type:text" json:"geolocation,omitempty"`
}

// TableName overrides the table name used by Visit to `visits`
func (Visit) TableName() string {
	return "visits"
}
