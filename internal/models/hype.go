package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hype is a like. The composite unique index enforces one hype per user
// per resource; toggling off deletes the row.
type Hype struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_hypes_user_resource" json:"userId"`
	ResourceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_hypes_user_resource" json:"resourceId"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (h *Hype) BeforeCreate(_ *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
