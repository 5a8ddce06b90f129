package model

import "time"

type News struct {
	BaseModel
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Summary     string     `gorm:"type:varchar(500);not null;default:''" json:"summary"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Category    string     `gorm:"type:varchar(20);not null;default:'general';index" json:"category"`
	ImageURL    string     `gorm:"type:text;not null;default:''" json:"imageUrl"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time `gorm:"type:timestamptz;default:null" json:"publishedAt"`

	AuthorID string `gorm:"type:text;not null;index" json:"authorId"`
	Author   *User  `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`
}

func (n News) TableName() string {
	return "news"
}
