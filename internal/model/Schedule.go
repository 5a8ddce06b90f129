package model

// Schedule is a weekly class slot.
type Schedule struct {
	BaseModel
	SubjectName string `gorm:"type:varchar(200);not null" json:"subjectName"`
	SubjectCode string `gorm:"type:varchar(20);not null;default:''" json:"subjectCode"`
	DayOfWeek   string `gorm:"type:varchar(10);not null;index" json:"dayOfWeek"`
	// HH:MM, 24 hour clock
	StartTime string `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"endTime"`
	Classroom string `gorm:"type:varchar(50);not null;default:''" json:"classroom"`
	Semester  string `gorm:"type:varchar(6);not null;index" json:"semester"`

	ProfessorUserID string `gorm:"type:text;not null;index" json:"professorUserId"`
	Professor       *User  `gorm:"foreignKey:ProfessorUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"professor,omitempty"`
}

func (s Schedule) TableName() string {
	return "schedules"
}
