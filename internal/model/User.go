package model

import (
	"strings"

	"github.com/SeakMengs/FacultyCert/internal/constant"
)

type User struct {
	BaseModel
	Email        string            `gorm:"unique;not null;type:citext" json:"email" form:"email" binding:"required"`
	FirstName    string            `gorm:"type:varchar(30);not null;" json:"firstName" form:"firstName" binding:"required"`
	LastName     string            `gorm:"type:varchar(30);not null;" json:"lastName" form:"lastName" binding:"required"`
	ProfileURL   string            `gorm:"type:text;not null;default:''" json:"profileURL" form:"profileURL"`
	PasswordHash string            `gorm:"type:text;not null;default:''" json:"-"`
	UserType     constant.UserType `gorm:"type:varchar(20);not null;default:'student';index" json:"userType" form:"userType"`
	// External id used by the course history, set for professors only
	ProfessorID *string `gorm:"type:varchar(9);uniqueIndex" json:"professorId" form:"professorId"`
}

func (u User) TableName() string {
	return "users"
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) ExternalProfessorID() string {
	if u.ProfessorID == nil {
		return ""
	}
	return *u.ProfessorID
}
