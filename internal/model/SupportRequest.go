package model

import (
	"time"

	"github.com/SeakMengs/FacultyCert/internal/constant"
)

type SupportRequest struct {
	BaseModel
	ReferenceCode string                        `gorm:"type:varchar(20);not null;uniqueIndex" json:"referenceCode"`
	Subject       string                        `gorm:"type:varchar(200);not null" json:"subject"`
	Description   string                        `gorm:"type:text;not null" json:"description"`
	Category      string                        `gorm:"type:varchar(20);not null;default:'other'" json:"category"`
	Priority      string                        `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status        constant.SupportRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Resolution    string                        `gorm:"type:text;not null;default:''" json:"resolution"`
	ResolvedAt    *time.Time                    `gorm:"type:timestamptz;default:null" json:"resolvedAt"`

	RequesterID  string  `gorm:"type:text;not null;index" json:"requesterId"`
	Requester    *User   `gorm:"foreignKey:RequesterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"requester,omitempty"`
	AssignedToID *string `gorm:"type:text;default:null;index" json:"assignedToId"`
	AssignedTo   *User   `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"assignedTo,omitempty"`
}

func (sr SupportRequest) TableName() string {
	return "support_requests"
}
