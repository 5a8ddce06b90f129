package constant

const (
	NewsCategoryGeneral      = "general"
	NewsCategoryAcademic     = "academic"
	NewsCategoryEvent        = "event"
	NewsCategoryAnnouncement = "announcement"
)

const (
	EventTypeAcademic   = "academic"
	EventTypeCultural   = "cultural"
	EventTypeSports     = "sports"
	EventTypeConference = "conference"
	EventTypeWorkshop   = "workshop"
	EventTypeOther      = "other"
)

type SupportRequestStatus string

const (
	SupportRequestStatusPending    SupportRequestStatus = "pending"
	SupportRequestStatusInProgress SupportRequestStatus = "in_progress"
	SupportRequestStatusResolved   SupportRequestStatus = "resolved"
	SupportRequestStatusClosed     SupportRequestStatus = "closed"
)

const (
	SurveyQuestionText           = "text"
	SurveyQuestionSingleChoice   = "single_choice"
	SurveyQuestionMultipleChoice = "multiple_choice"
	SurveyQuestionRating         = "rating"

	SurveyAudienceAll = "all"

	SurveyRatingMin = 1
	SurveyRatingMax = 5
)

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
