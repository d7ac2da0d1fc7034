package entities

import "time"

// DateLayout is the calendar-date format used across series, alerts and the
// climate API. All date-only comparisons happen in the configured time zone.
const DateLayout = "2006-01-02"

// Location keeps coordinates as strings to preserve source precision.
type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Temperature is one daily temperature observation.
type Temperature struct {
	Date string  `json:"data"`
	Avg  float64 `json:"temperatura_media"`
	Min  float64 `json:"temperatura_min"`
	Max  float64 `json:"temperatura_max"`
}

// Rainfall is one daily precipitation observation in millimeters.
type Rainfall struct {
	Date string  `json:"data"`
	Mm   float64 `json:"pluviometria"`
}

// Crop is the aggregate root: a cultivated plot with tolerance thresholds and
// the weather history merged in by the refresh service. Series and alert lists
// are stored as JSON document columns, one row per crop.
type Crop struct {
	ID                string        `gorm:"primaryKey" json:"id"`
	UserID            string        `gorm:"index" json:"user_id"`
	Name              string        `json:"nome_cultivo"`
	Location          Location      `gorm:"serializer:json" json:"ponto_cultivo"`
	TemperatureMin    float64       `json:"temperatura_min"`
	TemperatureMax    float64       `json:"temperatura_max"`
	RainfallMin       float64       `json:"pluviometria_min"`
	RainfallMax       float64       `json:"pluviometria_max"`
	Temperatures      []Temperature `gorm:"serializer:json" json:"temperaturas"`
	Rainfalls         []Rainfall    `gorm:"serializer:json" json:"pluviometrias"`
	TemperatureAlerts []Temperature `gorm:"serializer:json" json:"alertas_temp"`
	RainfallAlerts    []Rainfall    `gorm:"serializer:json" json:"alertas_pluvi"`
	CreatedAt         time.Time     `json:"created_at"`
	LastUpdate        time.Time     `json:"last_update"`
	DeletedAt         *time.Time    `gorm:"index" json:"deleted_at,omitempty"`
}

// Deleted reports whether the crop is a soft-delete tombstone.
func (c *Crop) Deleted() bool { return c.DeletedAt != nil }
