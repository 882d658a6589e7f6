package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jalanma/jalanma-backend/internal/dto"
	"github.com/jalanma/jalanma-backend/internal/services"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadPhoto accepts a multipart photo, validates it and returns the
// synthesized public URL. The declared MIME type defaults to the part's
// Content-Type header when the form field is absent.
func (h *UploadHandler) UploadPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Photo file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read photo file",
		})
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read photo file",
		})
	}

	fileName := c.FormValue("file_name")
	if fileName == "" {
		fileName = fileHeader.Filename
	}
	mimeType := c.FormValue("mime_type")
	if mimeType == "" {
		mimeType = fileHeader.Header.Get("Content-Type")
	}

	photoURL, err := h.uploadService.UploadPhoto(payload, fileName, mimeType)
	if err != nil {
		if errors.Is(err, services.ErrFileTooLarge) {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{PhotoURL: photoURL})
}
