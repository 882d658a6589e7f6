package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jalanma/jalanma-backend/internal/config"
)

var (
	ErrEmptyFile           = errors.New("file buffer is required and cannot be empty")
	ErrFileNameRequired    = errors.New("file name is required")
	ErrMimeTypeRequired    = errors.New("mime type is required")
	ErrFileTooLarge        = errors.New("file exceeds the 10MB size limit")
	ErrUnsupportedMimeType = errors.New("mime type must be one of jpeg, jpg, png, webp or gif")
)

// MaxUploadBytes is the inclusive payload size limit: exactly 10 MiB passes.
const MaxUploadBytes = 10 * 1024 * 1024

var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadService validates photo payloads and synthesizes public URLs. Bytes
// are not durably stored: this is a stand-in for a real object-storage
// integration, kept behind the same contract.
type UploadService struct {
	baseURL string
}

func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{baseURL: strings.TrimRight(cfg.UploadBaseURL, "/")}
}

// UploadPhoto validates the payload and returns the synthesized public URL.
// Validation order is fixed, first failure wins: empty payload, blank
// filename, blank MIME type, size, MIME allow-list.
func (s *UploadService) UploadPhoto(file []byte, fileName, mimeType string) (string, error) {
	if len(file) == 0 {
		return "", ErrEmptyFile
	}
	if strings.TrimSpace(fileName) == "" {
		return "", ErrFileNameRequired
	}
	if strings.TrimSpace(mimeType) == "" {
		return "", ErrMimeTypeRequired
	}
	if len(file) > MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	normalized := strings.ToLower(strings.TrimSpace(mimeType))
	if _, ok := mimeExtensions[normalized]; !ok {
		return "", ErrUnsupportedMimeType
	}

	stored := fmt.Sprintf("road-damage-%d-%s%s",
		time.Now().UnixMilli(), uuid.New().String(), extensionFor(fileName, normalized))

	return s.baseURL + "/uploads/" + stored, nil
}

// extensionFor takes the extension from the original filename when it has
// one, falls back to the MIME table, and defaults to .jpg.
func extensionFor(fileName, mimeType string) string {
	name := strings.TrimSpace(fileName)
	if idx := strings.LastIndex(name, "."); idx >= 0 && idx < len(name)-1 {
		return name[idx:]
	}
	if ext, ok := mimeExtensions[mimeType]; ok {
		return ext
	}
	return ".jpg"
}
