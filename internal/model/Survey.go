package model

import (
	"time"

	"gorm.io/datatypes"
)

type Survey struct {
	BaseModel
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	// all, or a single user type
	TargetAudience string     `gorm:"type:varchar(20);not null;default:'all';index" json:"targetAudience"`
	IsActive       bool       `gorm:"not null;index" json:"isActive"`
	StartsAt       *time.Time `gorm:"type:timestamptz;default:null" json:"startsAt"`
	EndsAt         *time.Time `gorm:"type:timestamptz;default:null" json:"endsAt"`

	CreatedByID string           `gorm:"type:text;not null" json:"createdById"`
	CreatedBy   *User            `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Questions   []SurveyQuestion `gorm:"foreignKey:SurveyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"questions,omitempty"`
}

func (s Survey) TableName() string {
	return "surveys"
}

// Open reports whether responses are accepted at t.
func (s Survey) Open(t time.Time) bool {
	if !s.IsActive {
		return false
	}
	if s.StartsAt != nil && t.Before(*s.StartsAt) {
		return false
	}
	if s.EndsAt != nil && t.After(*s.EndsAt) {
		return false
	}
	return true
}

type SurveyQuestion struct {
	BaseModel
	SurveyID     string         `gorm:"type:text;not null;index" json:"surveyId"`
	Text         string         `gorm:"type:text;not null" json:"text"`
	QuestionType string         `gorm:"type:varchar(20);not null" json:"questionType"`
	Required     bool           `gorm:"not null;default:false" json:"required"`
	Position     int            `gorm:"not null;default:0" json:"position"`
	Options      []SurveyOption `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"options,omitempty"`
}

func (q SurveyQuestion) TableName() string {
	return "survey_questions"
}

type SurveyOption struct {
	BaseModel
	QuestionID string `gorm:"type:text;not null;index" json:"questionId"`
	Text       string `gorm:"type:varchar(200);not null" json:"text"`
	Position   int    `gorm:"not null;default:0" json:"position"`
}

func (o SurveyOption) TableName() string {
	return "survey_options"
}

// SurveyResponse is unique per survey and respondent.
type SurveyResponse struct {
	BaseModel
	SurveyID     string         `gorm:"type:text;not null;uniqueIndex:idx_survey_responses_respondent,priority:1" json:"surveyId"`
	RespondentID string         `gorm:"type:text;not null;uniqueIndex:idx_survey_responses_respondent,priority:2" json:"respondentId"`
	SubmittedAt  time.Time      `gorm:"type:timestamptz;not null" json:"submittedAt"`
	Survey       *Survey        `gorm:"foreignKey:SurveyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Respondent   *User          `gorm:"foreignKey:RespondentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Answers      []SurveyAnswer `gorm:"foreignKey:ResponseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"answers,omitempty"`
}

func (r SurveyResponse) TableName() string {
	return "survey_responses"
}

type SurveyAnswer struct {
	BaseModel
	ResponseID   string `gorm:"type:text;not null;index" json:"responseId"`
	QuestionID   string `gorm:"type:text;not null;index" json:"questionId"`
	TextAnswer   string `gorm:"type:text;not null;default:''" json:"textAnswer"`
	RatingAnswer *int   `gorm:"default:null" json:"ratingAnswer"`
	// JSON array of selected option ids
	OptionIDs datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"optionIds"`
}

func (a SurveyAnswer) TableName() string {
	return "survey_answers"
}
