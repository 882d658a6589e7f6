package services

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/jalanma/jalanma-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uploadURLPattern = regexp.MustCompile(`^https://storage\.jalanma\.app/uploads/road-damage-\d+-[0-9a-f-]{36}\.[a-z]+$`)

func newUploadService() *UploadService {
	return NewUploadService(testConfig())
}

func TestUploadPhoto(t *testing.T) {
	svc := newUploadService()

	url, err := svc.UploadPhoto([]byte("jpeg bytes"), "pothole.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Regexp(t, uploadURLPattern, url)
	assert.Contains(t, url, ".jpg")
}

func TestUploadPhotoUniqueNames(t *testing.T) {
	svc := newUploadService()

	first, err := svc.UploadPhoto([]byte("a"), "pothole.jpg", "image/jpeg")
	require.NoError(t, err)
	second, err := svc.UploadPhoto([]byte("a"), "pothole.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestUploadPhotoExtensionFromFilename(t *testing.T) {
	svc := newUploadService()

	cases := []struct {
		fileName string
		mimeType string
		wantExt  string
	}{
		{"crack.png", "image/png", ".png"},
		{"crack.webp", "image/webp", ".webp"},
		{"crack.gif", "image/gif", ".gif"},
		{"crack.jpeg", "image/jpeg", ".jpeg"},
	}

	for _, tc := range cases {
		t.Run(tc.fileName, func(t *testing.T) {
			url, err := svc.UploadPhoto([]byte("x"), tc.fileName, tc.mimeType)
			require.NoError(t, err)
			assert.True(t, len(url) > len(tc.wantExt) && url[len(url)-len(tc.wantExt):] == tc.wantExt, url)
		})
	}
}

func TestUploadPhotoExtensionFromMimeType(t *testing.T) {
	svc := newUploadService()

	// filename without an extension falls back to the MIME table
	url, err := svc.UploadPhoto([]byte("x"), "photo", "image/png")
	require.NoError(t, err)
	assert.Equal(t, ".png", url[len(url)-4:])

	url, err = svc.UploadPhoto([]byte("x"), "photo", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", url[len(url)-4:])
}

func TestUploadPhotoSizeLimit(t *testing.T) {
	svc := newUploadService()

	// exactly 10 MiB is allowed
	_, err := svc.UploadPhoto(bytes.Repeat([]byte{0xFF}, MaxUploadBytes), "big.jpg", "image/jpeg")
	assert.NoError(t, err)

	// one byte over is rejected
	_, err = svc.UploadPhoto(bytes.Repeat([]byte{0xFF}, MaxUploadBytes+1), "big.jpg", "image/jpeg")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadPhotoValidation(t *testing.T) {
	svc := newUploadService()

	cases := []struct {
		name     string
		file     []byte
		fileName string
		mimeType string
		wantErr  error
	}{
		{"empty file", nil, "pothole.jpg", "image/jpeg", ErrEmptyFile},
		{"empty file wins over blank name", nil, "", "", ErrEmptyFile},
		{"blank file name", []byte("x"), "   ", "image/jpeg", ErrFileNameRequired},
		{"blank mime type", []byte("x"), "pothole.jpg", "", ErrMimeTypeRequired},
		{"unsupported mime type", []byte("x"), "doc.pdf", "application/pdf", ErrUnsupportedMimeType},
		{"svg rejected", []byte("x"), "img.svg", "image/svg+xml", ErrUnsupportedMimeType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UploadPhoto(tc.file, tc.fileName, tc.mimeType)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUploadPhotoMimeTypeCaseInsensitive(t *testing.T) {
	svc := newUploadService()

	_, err := svc.UploadPhoto([]byte("x"), "pothole.png", "IMAGE/PNG")
	assert.NoError(t, err)
}

func TestUploadPhotoBaseURLTrimmed(t *testing.T) {
	svc := NewUploadService(&config.Config{UploadBaseURL: "https://cdn.example.com/"})

	url, err := svc.UploadPhoto([]byte("x"), "pothole.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Regexp(t, `^https://cdn\.example\.com/uploads/road-damage-`, url)
}
