package models

import (
	"time"

	"github.com/google/uuid"
)

// Report statuses. There is no enforced transition graph: any status may be
// set through the update handler, matching the observed lifecycle.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"
)

// RoadDamageReport is a citizen-submitted record of observed road damage.
// Reporter fields are free text supplied with the report and may differ from
// the owning user's profile. ReportDate is the calendar date of the observed
// damage, distinct from CreatedAt.
type RoadDamageReport struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ReporterName      string    `gorm:"not null;size:255" json:"reporter_name"`
	ReporterPhone     string    `gorm:"not null;size:50" json:"reporter_phone"`
	ReporterAddress   string    `gorm:"not null;size:500" json:"reporter_address"`
	ReportDate        time.Time `gorm:"not null" json:"report_date"`
	DamageDescription *string   `gorm:"type:text" json:"damage_description"`
	PhotoURL          string    `gorm:"not null;type:text" json:"photo_url"`
	Latitude          float64   `gorm:"not null" json:"latitude"`
	Longitude         float64   `gorm:"not null" json:"longitude"`
	Status            string    `gorm:"not null;size:20;default:'pending'" json:"status"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	User              User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// ValidStatus reports whether s is one of the four report statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}
