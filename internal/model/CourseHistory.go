package model

import (
	"time"

	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
)

// CourseHistory is one course section taught by a professor. A section is identified by
// professor, reference number and term, which is also the upsert key of imports.
type CourseHistory struct {
	BaseModel
	ProfessorID     string    `gorm:"type:varchar(9);not null;uniqueIndex:idx_course_histories_section,priority:1" json:"professorId"`
	ProfessorName   string    `gorm:"type:varchar(200);not null;index" json:"professorName"`
	Term            string    `gorm:"type:varchar(6);not null;uniqueIndex:idx_course_histories_section,priority:3;index" json:"term"`
	Subject         string    `gorm:"type:varchar(200);not null" json:"subject"`
	SubjectCode     string    `gorm:"type:varchar(20);not null" json:"subjectCode"`
	ReferenceNumber string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_course_histories_section,priority:2" json:"referenceNumber"`
	StartDate       time.Time `gorm:"type:date;not null" json:"startDate"`
	EndDate         time.Time `gorm:"type:date;not null" json:"endDate"`
	ContactHours    int       `gorm:"not null;default:0" json:"contactHours"`
	CrossListCode   string    `gorm:"type:varchar(5);not null;default:'';index" json:"crossListCode"`

	// Descriptive columns of the import sheet, unused by certificates.
	Level       string `gorm:"type:varchar(50);not null;default:''" json:"level"`
	Campus      string `gorm:"type:varchar(100);not null;default:''" json:"campus"`
	Section     string `gorm:"type:varchar(20);not null;default:''" json:"section"`
	Credits     int    `gorm:"not null;default:0" json:"credits"`
	WeeklyHours int    `gorm:"not null;default:0" json:"weeklyHours"`
	Days        string `gorm:"type:varchar(50);not null;default:''" json:"days"`
	Schedule    string `gorm:"type:varchar(100);not null;default:''" json:"schedule"`
	Classroom   string `gorm:"type:varchar(50);not null;default:''" json:"classroom"`
}

func (c CourseHistory) TableName() string {
	return "course_histories"
}

func (c CourseHistory) ToCourseRecord() facultycert.CourseRecord {
	return facultycert.CourseRecord{
		ProfessorID:     c.ProfessorID,
		ProfessorName:   c.ProfessorName,
		Term:            c.Term,
		Subject:         c.Subject,
		SubjectCode:     c.SubjectCode,
		ReferenceNumber: c.ReferenceNumber,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		ContactHours:    c.ContactHours,
		CrossListCode:   c.CrossListCode,
	}
}

func ToCourseRecords(histories []CourseHistory) []facultycert.CourseRecord {
	records := make([]facultycert.CourseRecord, len(histories))
	for i, h := range histories {
		records[i] = h.ToCourseRecord()
	}
	return records
}

// ProfessorSummary is one distinct professor of the course history.
type ProfessorSummary struct {
	ProfessorID   string `json:"professorId"`
	ProfessorName string `json:"professorName"`
	CourseCount   int64  `json:"courseCount"`
	LatestTerm    string `json:"latestTerm"`
	TotalHours    int64  `json:"totalHours"`
}
