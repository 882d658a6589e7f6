package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jalanma/jalanma-backend/internal/dto"
	"github.com/jalanma/jalanma-backend/internal/events"
	"github.com/jalanma/jalanma-backend/internal/geo"
	"github.com/jalanma/jalanma-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound          = errors.New("report not found")
	ErrInvalidLatitude         = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude        = errors.New("longitude must be between -180 and 180")
	ErrInvalidStatus           = errors.New("status must be pending, in_progress, resolved or rejected")
	ErrInvalidRadius           = errors.New("radius_km must be positive")
	ErrInvalidLimit            = errors.New("limit must be between 1 and 100")
	ErrInvalidOffset           = errors.New("offset must be zero or positive")
	ErrInvalidUserID           = errors.New("user id is not a valid UUID")
	ErrReporterNameRequired    = errors.New("reporter name is required")
	ErrReporterPhoneTooShort   = errors.New("reporter phone must be at least 10 characters")
	ErrReporterAddressTooShort = errors.New("reporter address must be at least 5 characters")
	ErrInvalidPhotoURL         = errors.New("photo URL is not valid")
	ErrReportDateRequired      = errors.New("report date is required")
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// distancePredicate filters rows by great-circle distance from the query
// center, spherical law of cosines with R = 6371 km. The acos argument is
// clamped to [-1, 1]: rounding can push it past 1 when a report sits exactly
// at the query point. Placeholders: lat, lng, lat, radius_km.
const distancePredicate = `(6371 * acos(LEAST(1.0, GREATEST(-1.0,
	cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) +
	sin(radians(?)) * sin(radians(latitude))
)))) <= ?`

type ReportService struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewReportService(db *gorm.DB, publisher events.Publisher) *ReportService {
	return &ReportService{db: db, publisher: publisher}
}

// Create persists a new report owned by req.UserID. Status is always pending
// for new reports; callers cannot influence it.
func (s *ReportService) Create(req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if err := validateReportInput(req); err != nil {
		return nil, err
	}

	var owner models.User
	if err := s.db.First(&owner, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up report owner: %w", err)
	}

	report := models.RoadDamageReport{
		ID:                uuid.New(),
		UserID:            req.UserID,
		ReporterName:      req.ReporterName,
		ReporterPhone:     req.ReporterPhone,
		ReporterAddress:   req.ReporterAddress,
		ReportDate:        req.ReportDate,
		DamageDescription: req.DamageDescription,
		PhotoURL:          req.PhotoURL,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Status:            models.StatusPending,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.publisher.Publish(events.SubjectReportCreated, events.ReportEvent{
		ReportID:   report.ID.String(),
		UserID:     report.UserID.String(),
		Status:     report.Status,
		Latitude:   report.Latitude,
		Longitude:  report.Longitude,
		OccurredAt: report.CreatedAt,
	})

	resp := mapReportToResponse(&report)
	return &resp, nil
}

// List runs the report query engine: optional status, owner and geographic
// filters ANDed together, newest first with an id tie-break, paginated. The
// geographic filter is active only when latitude, longitude and radius_km are
// all present.
func (s *ReportService) List(q *dto.ListReportsQuery) (*dto.ReportsListResponse, error) {
	limit := defaultLimit
	if q.Limit != nil {
		if *q.Limit < 1 || *q.Limit > maxLimit {
			return nil, ErrInvalidLimit
		}
		limit = *q.Limit
	}
	offset := 0
	if q.Offset != nil {
		if *q.Offset < 0 {
			return nil, ErrInvalidOffset
		}
		offset = *q.Offset
	}

	query := s.db.Model(&models.RoadDamageReport{})

	if q.Status != nil {
		if !models.ValidStatus(*q.Status) {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", *q.Status)
	}

	if q.UserID != nil {
		ownerID, err := uuid.Parse(*q.UserID)
		if err != nil {
			return nil, ErrInvalidUserID
		}
		query = query.Where("user_id = ?", ownerID)
	}

	if q.Latitude != nil && (*q.Latitude < -90 || *q.Latitude > 90) {
		return nil, ErrInvalidLatitude
	}
	if q.Longitude != nil && (*q.Longitude < -180 || *q.Longitude > 180) {
		return nil, ErrInvalidLongitude
	}
	if q.RadiusKm != nil && *q.RadiusKm <= 0 {
		return nil, ErrInvalidRadius
	}

	geoActive := q.Latitude != nil && q.Longitude != nil && q.RadiusKm != nil
	if geoActive {
		query = query.Where(distancePredicate, *q.Latitude, *q.Longitude, *q.Latitude, *q.RadiusKm)
	}

	var reports []models.RoadDamageReport
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	resp := &dto.ReportsListResponse{
		Reports: make([]dto.ReportResponse, len(reports)),
		Limit:   limit,
		Offset:  offset,
	}
	for i := range reports {
		resp.Reports[i] = mapReportToResponse(&reports[i])
		if geoActive {
			d := geo.DistanceKm(*q.Latitude, *q.Longitude, reports[i].Latitude, reports[i].Longitude)
			resp.Reports[i].DistanceKm = &d
		}
	}

	return resp, nil
}

func (s *ReportService) GetByID(id uuid.UUID) (*dto.ReportResponse, error) {
	var report models.RoadDamageReport
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	resp := mapReportToResponse(&report)
	return &resp, nil
}

// ListByUser returns all reports owned by userID, newest first. An unknown
// user and a user without reports both yield an empty list.
func (s *ReportService) ListByUser(userID uuid.UUID) ([]dto.ReportResponse, error) {
	var reports []models.RoadDamageReport
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user reports: %w", err)
	}

	resp := make([]dto.ReportResponse, len(reports))
	for i := range reports {
		resp[i] = mapReportToResponse(&reports[i])
	}
	return resp, nil
}

// Update applies a partial update: only fields present in the request change,
// updated_at is always refreshed. The damage description is tri-state, an
// explicit null clears it while absence leaves it untouched. Status transitions
// are deliberately unrestricted: any of the four values may be set at any time.
// A status event is published only when the stored value actually changes.
func (s *ReportService) Update(id uuid.UUID, req *dto.UpdateReportRequest) (*dto.ReportResponse, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}

	if req.ReporterName != nil {
		if strings.TrimSpace(*req.ReporterName) == "" {
			return nil, ErrReporterNameRequired
		}
		updates["reporter_name"] = *req.ReporterName
	}
	if req.ReporterPhone != nil {
		if len(*req.ReporterPhone) < 10 {
			return nil, ErrReporterPhoneTooShort
		}
		updates["reporter_phone"] = *req.ReporterPhone
	}
	if req.ReporterAddress != nil {
		if len(*req.ReporterAddress) < 5 {
			return nil, ErrReporterAddressTooShort
		}
		updates["reporter_address"] = *req.ReporterAddress
	}
	if req.ReportDate != nil {
		if req.ReportDate.IsZero() {
			return nil, ErrReportDateRequired
		}
		updates["report_date"] = *req.ReportDate
	}
	if req.DamageDescription.Set {
		updates["damage_description"] = req.DamageDescription.Value
	}
	if req.PhotoURL != nil {
		if !validHTTPURL(*req.PhotoURL) {
			return nil, ErrInvalidPhotoURL
		}
		updates["photo_url"] = *req.PhotoURL
	}
	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 {
			return nil, ErrInvalidLatitude
		}
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		if *req.Longitude < -180 || *req.Longitude > 180 {
			return nil, ErrInvalidLongitude
		}
		updates["longitude"] = *req.Longitude
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *req.Status
	}

	var previous models.RoadDamageReport
	if err := s.db.First(&previous, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	result := s.db.Model(&models.RoadDamageReport{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrReportNotFound
	}

	var report models.RoadDamageReport
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch updated report: %w", err)
	}

	if req.Status != nil && *req.Status != previous.Status {
		s.publisher.Publish(events.SubjectReportStatusChanged, events.ReportEvent{
			ReportID:   report.ID.String(),
			UserID:     report.UserID.String(),
			Status:     report.Status,
			Latitude:   report.Latitude,
			Longitude:  report.Longitude,
			OccurredAt: report.UpdatedAt,
		})
	}

	resp := mapReportToResponse(&report)
	return &resp, nil
}

func validateReportInput(req *dto.CreateReportRequest) error {
	if strings.TrimSpace(req.ReporterName) == "" {
		return ErrReporterNameRequired
	}
	if len(req.ReporterPhone) < 10 {
		return ErrReporterPhoneTooShort
	}
	if len(req.ReporterAddress) < 5 {
		return ErrReporterAddressTooShort
	}
	if req.ReportDate.IsZero() {
		return ErrReportDateRequired
	}
	if !validHTTPURL(req.PhotoURL) {
		return ErrInvalidPhotoURL
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

func mapReportToResponse(r *models.RoadDamageReport) dto.ReportResponse {
	return dto.ReportResponse{
		ID:                r.ID,
		UserID:            r.UserID,
		ReporterName:      r.ReporterName,
		ReporterPhone:     r.ReporterPhone,
		ReporterAddress:   r.ReporterAddress,
		ReportDate:        r.ReportDate,
		DamageDescription: r.DamageDescription,
		PhotoURL:          r.PhotoURL,
		Latitude:          r.Latitude,
		Longitude:         r.Longitude,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
