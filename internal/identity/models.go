package identity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is the provider-side identity record backing the local delegate.
type Account struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"`
	AvatarURL    string         `gorm:"size:255" json:"avatar_url"`
	Provider     string         `gorm:"size:50;not null;default:'password'" json:"provider"`
}

func (a *Account) principal() *Principal {
	return &Principal{
		Subject: a.ID.String(),
		Email:   a.Email,
		Name:    a.Name,
		Avatar:  a.AvatarURL,
	}
}
