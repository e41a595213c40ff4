package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailVerification stores the single pending OTP for an email address.
// The unique index on Email gives the "at most one code per address"
// guarantee; a resend overwrites the row instead of appending.
type EmailVerification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:text;uniqueIndex;not null"`
	OTP       string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (v *EmailVerification) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the code can no longer be redeemed.
func (v *EmailVerification) Expired() bool {
	return !time.Now().Before(v.ExpiresAt)
}
