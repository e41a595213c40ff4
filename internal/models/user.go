package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account on the platform.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Name            string    `gorm:"type:text;not null" json:"name"`
	PasswordHash    string    `gorm:"type:text;not null" json:"-"`
	Institute       string    `gorm:"type:text" json:"institute"`
	Major           string    `gorm:"type:text" json:"major"`
	IsEmailVerified bool      `gorm:"not null;default:false" json:"emailVerified"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"-"`

	Resources []Resource `gorm:"foreignKey:UploaderID" json:"-"`
	Comments  []Comment  `gorm:"foreignKey:UserID" json:"-"`
	Hypes     []Hype     `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate assigns the primary key client-side so the schema stays
// portable across Postgres and the sqlite driver used in tests.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
