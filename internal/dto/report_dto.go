package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReportRequest struct {
	UserID            uuid.UUID `json:"user_id"`
	ReporterName      string    `json:"reporter_name"`
	ReporterPhone     string    `json:"reporter_phone"`
	ReporterAddress   string    `json:"reporter_address"`
	ReportDate        time.Time `json:"report_date"`
	DamageDescription *string   `json:"damage_description"`
	PhotoURL          string    `json:"photo_url"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
}

type UpdateReportRequest struct {
	ReporterName      *string        `json:"reporter_name"`
	ReporterPhone     *string        `json:"reporter_phone"`
	ReporterAddress   *string        `json:"reporter_address"`
	ReportDate        *time.Time     `json:"report_date"`
	DamageDescription OptionalString `json:"damage_description"`
	PhotoURL          *string        `json:"photo_url"`
	Latitude          *float64       `json:"latitude"`
	Longitude         *float64       `json:"longitude"`
	Status            *string        `json:"status"`
}

// ListReportsQuery carries the optional filters of the report query engine.
// The geographic filter applies only when latitude, longitude and radius_km
// are all present.
type ListReportsQuery struct {
	Status    *string  `query:"status"`
	UserID    *string  `query:"user_id"`
	Latitude  *float64 `query:"latitude"`
	Longitude *float64 `query:"longitude"`
	RadiusKm  *float64 `query:"radius_km"`
	Limit     *int     `query:"limit"`
	Offset    *int     `query:"offset"`
}

type ReportResponse struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	ReporterName      string    `json:"reporter_name"`
	ReporterPhone     string    `json:"reporter_phone"`
	ReporterAddress   string    `json:"reporter_address"`
	ReportDate        time.Time `json:"report_date"`
	DamageDescription *string   `json:"damage_description"`
	PhotoURL          string    `json:"photo_url"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	Status            string    `json:"status"`
	DistanceKm        *float64  `json:"distance_km,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ReportsListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type UploadResponse struct {
	PhotoURL string `json:"photo_url"`
}
