package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string     `gorm:"type:text;primaryKey" json:"id"`
	CreatedAt *time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP;not null" json:"createdAt,omitempty"`
	UpdatedAt *time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP;onUpdate:CURRENT_TIMESTAMP;not null" json:"-"`
}

// UUID version 4, unless the caller picked an id.
func (bm *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if bm.ID == "" {
		bm.ID = uuid.NewString()
	}
	return
}
