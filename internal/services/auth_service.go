package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jalanma/jalanma-backend/internal/config"
	"github.com/jalanma/jalanma-backend/internal/dto"
	"github.com/jalanma/jalanma-backend/internal/identity"
	"github.com/jalanma/jalanma-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrNoMatch          = errors.New("no matching account for email and provider")
	ErrInvalidToken     = errors.New("invalid or expired refresh token")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidEmail     = errors.New("email is not valid")
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidProvider  = errors.New("provider must be google or email")
	ErrInvalidAvatarURL = errors.New("avatar URL is not valid")
)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	verifier identity.Verifier
}

func NewAuthService(db *gorm.DB, cfg *config.Config, verifier identity.Verifier) *AuthService {
	return &AuthService{db: db, cfg: cfg, verifier: verifier}
}

func (s *AuthService) CreateUser(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !validEmail(req.Email) {
		return nil, ErrInvalidEmail
	}
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if !models.ValidProvider(req.Provider) {
		return nil, ErrInvalidProvider
	}
	if req.AvatarURL != nil && !validHTTPURL(*req.AvatarURL) {
		return nil, ErrInvalidAvatarURL
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	user := models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Provider:  req.Provider,
	}

	if err := s.db.Create(&user).Error; err != nil {
		// the pre-check races with concurrent registrations; the unique
		// index on email is the authority
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateTokenPair(&user)
}

// Login looks up the user by exact email and requires the stored provider to
// match. The provider token is passed through the identity verifier, which is
// currently a trust-everything stub. A missing or mismatched account is an
// explicit no-match, never an internal error.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if !models.ValidProvider(req.Provider) {
		return nil, ErrInvalidProvider
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Provider != req.Provider {
		return nil, ErrNoMatch
	}

	if err := s.verifier.Verify(req.Provider, req.Email, req.ProviderToken); err != nil {
		return nil, ErrNoMatch
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (s *AuthService) GetUser(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	resp := mapUserToResponse(&user)
	return &resp, nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         mapUserToResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"provider": user.Provider,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

func mapUserToResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Provider:  u.Provider,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
