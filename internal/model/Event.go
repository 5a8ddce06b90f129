package model

import "time"

type Event struct {
	BaseModel
	Title                string    `gorm:"type:varchar(200);not null" json:"title"`
	Description          string    `gorm:"type:text;not null;default:''" json:"description"`
	EventType            string    `gorm:"type:varchar(20);not null;default:'other';index" json:"eventType"`
	Location             string    `gorm:"type:varchar(200);not null;default:''" json:"location"`
	StartAt              time.Time `gorm:"type:timestamptz;not null;index" json:"startAt"`
	EndAt                time.Time `gorm:"type:timestamptz;not null" json:"endAt"`
	RegistrationRequired bool      `gorm:"not null;default:false" json:"registrationRequired"`
	MaxParticipants      *int      `gorm:"default:null" json:"maxParticipants"`

	OrganizerID string `gorm:"type:text;not null;index" json:"organizerId"`
	Organizer   *User  `gorm:"foreignKey:OrganizerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"organizer,omitempty"`
}

func (e Event) TableName() string {
	return "events"
}
