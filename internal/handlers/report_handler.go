package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jalanma/jalanma-backend/internal/dto"
	"github.com/jalanma/jalanma-backend/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.UserID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "user_id is required",
		})
	}

	report, err := h.reportService.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if isReportValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create report",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	var q dto.ListReportsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid query parameters",
		})
	}

	resp, err := h.reportService.List(&q)
	if err != nil {
		if isReportValidationErr(err) || errors.Is(err, services.ErrInvalidUserID) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}

	return c.JSON(resp)
}

func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	report, err := h.reportService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch report",
		})
	}

	return c.JSON(report)
}

func (h *ReportHandler) ListUserReports(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	reports, err := h.reportService.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch user reports",
		})
	}

	return c.JSON(fiber.Map{"reports": reports})
}

// UpdateReport applies a partial update. There is deliberately no ownership
// check here: the observed behavior allows any caller to update any report.
func (h *ReportHandler) UpdateReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	var req dto.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.reportService.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if isReportValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update report",
		})
	}

	return c.JSON(report)
}

func isReportValidationErr(err error) bool {
	return errors.Is(err, services.ErrInvalidLatitude) ||
		errors.Is(err, services.ErrInvalidLongitude) ||
		errors.Is(err, services.ErrInvalidStatus) ||
		errors.Is(err, services.ErrInvalidRadius) ||
		errors.Is(err, services.ErrInvalidLimit) ||
		errors.Is(err, services.ErrInvalidOffset) ||
		errors.Is(err, services.ErrReporterNameRequired) ||
		errors.Is(err, services.ErrReporterPhoneTooShort) ||
		errors.Is(err, services.ErrReporterAddressTooShort) ||
		errors.Is(err, services.ErrInvalidPhotoURL) ||
		errors.Is(err, services.ErrReportDateRequired)
}
