package models

import (
	"time"

	"github.com/google/uuid"
)

// Auth providers accepted at registration. Provider is immutable after
// creation: no update path exists.
const (
	ProviderGoogle = "google"
	ProviderEmail  = "email"
)

// User is a citizen account. There is no credential material here: identity
// is asserted by an external provider and trusted as-is (see internal/identity).
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	AvatarURL *string   `gorm:"type:text" json:"avatar_url"`
	Provider  string    `gorm:"not null;size:20" json:"provider"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidProvider reports whether p is one of the accepted auth providers.
func ValidProvider(p string) bool {
	return p == ProviderGoogle || p == ProviderEmail
}
