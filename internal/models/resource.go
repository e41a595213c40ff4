package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resource is an academic document shared on the platform. The file itself
// lives in object storage; FileKey points at the bucket object and FileURL
// carries an externally hosted location when no key is set.
type Resource struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UploaderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"uploaderId"`
	Title        string    `gorm:"type:text;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	FileKey      string    `gorm:"type:text" json:"-"`
	FileURL      string    `gorm:"type:text" json:"fileUrl"`
	University   string    `gorm:"type:text;index" json:"university"`
	Department   string    `gorm:"type:text;index" json:"department"`
	Semester     int       `json:"semester"`
	CourseCode   string    `gorm:"type:text" json:"courseCode"`
	CourseName   string    `gorm:"type:text" json:"courseName"`
	ResourceType string    `gorm:"type:text" json:"resourceType"`
	Views        int64     `gorm:"not null;default:0" json:"views"`
	Downloads    int64     `gorm:"not null;default:0" json:"downloads"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`

	Uploader User      `gorm:"foreignKey:UploaderID" json:"-"`
	Comments []Comment `gorm:"foreignKey:ResourceID" json:"-"`
	Hypes    []Hype    `gorm:"foreignKey:ResourceID" json:"-"`
}

func (r *Resource) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
