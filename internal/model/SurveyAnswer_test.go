package model

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/constant"
)

func intPtr(i int) *int {
	return &i
}

func testSurvey() Survey {
	return Survey{
		BaseModel: BaseModel{ID: "s1"},
		Title:     "Course feedback",
		IsActive:  true,
		Questions: []SurveyQuestion{
			{BaseModel: BaseModel{ID: "q1"}, Text: "Comments", QuestionType: constant.SurveyQuestionText},
			{BaseModel: BaseModel{ID: "q2"}, Text: "Rate the course", QuestionType: constant.SurveyQuestionRating, Required: true},
			{
				BaseModel: BaseModel{ID: "q3"}, Text: "Favourite day", QuestionType: constant.SurveyQuestionSingleChoice,
				Options: []SurveyOption{{BaseModel: BaseModel{ID: "o1"}, Text: "Monday"}, {BaseModel: BaseModel{ID: "o2"}, Text: "Friday"}},
			},
			{
				BaseModel: BaseModel{ID: "q4"}, Text: "Topics", QuestionType: constant.SurveyQuestionMultipleChoice,
				Options: []SurveyOption{{BaseModel: BaseModel{ID: "o3"}, Text: "Go"}, {BaseModel: BaseModel{ID: "o4"}, Text: "SQL"}},
			},
		},
	}
}

func TestValidateAnswers(t *testing.T) {
	survey := testSurvey()

	tests := []struct {
		name    string
		answers []SurveyAnswer
		wantErr bool
	}{
		{
			name: "complete",
			answers: []SurveyAnswer{
				{QuestionID: "q1", TextAnswer: "Great"},
				{QuestionID: "q2", RatingAnswer: intPtr(4)},
				{QuestionID: "q3", OptionIDs: OptionIDsToJSON([]string{"o2"})},
				{QuestionID: "q4", OptionIDs: OptionIDsToJSON([]string{"o3", "o4"})},
			},
		},
		{
			name:    "only required",
			answers: []SurveyAnswer{{QuestionID: "q2", RatingAnswer: intPtr(1)}},
		},
		{name: "missing required", answers: []SurveyAnswer{{QuestionID: "q1", TextAnswer: "x"}}, wantErr: true},
		{name: "rating out of range", answers: []SurveyAnswer{{QuestionID: "q2", RatingAnswer: intPtr(6)}}, wantErr: true},
		{
			name: "two options on single choice",
			answers: []SurveyAnswer{
				{QuestionID: "q2", RatingAnswer: intPtr(3)},
				{QuestionID: "q3", OptionIDs: OptionIDsToJSON([]string{"o1", "o2"})},
			},
			wantErr: true,
		},
		{
			name: "option of another question",
			answers: []SurveyAnswer{
				{QuestionID: "q2", RatingAnswer: intPtr(3)},
				{QuestionID: "q4", OptionIDs: OptionIDsToJSON([]string{"o1"})},
			},
			wantErr: true,
		},
		{
			name: "duplicate question",
			answers: []SurveyAnswer{
				{QuestionID: "q2", RatingAnswer: intPtr(3)},
				{QuestionID: "q2", RatingAnswer: intPtr(2)},
			},
			wantErr: true,
		},
		{name: "unknown question", answers: []SurveyAnswer{{QuestionID: "nope"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := survey.ValidateAnswers(tt.answers)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSurveyAnswer) {
					t.Fatalf("ValidateAnswers() error = %v, want ErrInvalidSurveyAnswer", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateAnswers() unexpected error: %v", err)
			}
		})
	}
}

func TestSurveyResults(t *testing.T) {
	survey := testSurvey()
	answers := []SurveyAnswer{
		{QuestionID: "q1", TextAnswer: " Great "},
		{QuestionID: "q2", RatingAnswer: intPtr(4)},
		{QuestionID: "q2", RatingAnswer: intPtr(5)},
		{QuestionID: "q3", OptionIDs: OptionIDsToJSON([]string{"o2"})},
		{QuestionID: "q4", OptionIDs: OptionIDsToJSON([]string{"o3", "o4"})},
		{QuestionID: "q4", OptionIDs: OptionIDsToJSON([]string{"o3"})},
	}

	results := survey.Results(answers, 2)
	if results.ResponseCount != 2 || len(results.Questions) != 4 {
		t.Fatalf("unexpected results: %+v", results)
	}

	if got := results.Questions[0].TextAnswers; !reflect.DeepEqual(got, []string{"Great"}) {
		t.Errorf("text answers = %v", got)
	}

	rating := results.Questions[1]
	if rating.AverageRating == nil || *rating.AverageRating != 4.5 {
		t.Errorf("average rating = %v, want 4.5", rating.AverageRating)
	}
	if !reflect.DeepEqual(rating.RatingCounts, map[int]int{4: 1, 5: 1}) {
		t.Errorf("rating counts = %v", rating.RatingCounts)
	}

	if want := map[string]int{"o1": 0, "o2": 1}; !reflect.DeepEqual(results.Questions[2].OptionCounts, want) {
		t.Errorf("single choice counts = %v, want %v", results.Questions[2].OptionCounts, want)
	}
	if want := map[string]int{"o3": 2, "o4": 1}; !reflect.DeepEqual(results.Questions[3].OptionCounts, want) {
		t.Errorf("multiple choice counts = %v, want %v", results.Questions[3].OptionCounts, want)
	}
}

func TestSurveyOpen(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name   string
		survey Survey
		want   bool
	}{
		{"inactive", Survey{IsActive: false}, false},
		{"no window", Survey{IsActive: true}, true},
		{"inside window", Survey{IsActive: true, StartsAt: &before, EndsAt: &after}, true},
		{"not started", Survey{IsActive: true, StartsAt: &after}, false},
		{"ended", Survey{IsActive: true, EndsAt: &before}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.survey.Open(now); got != tt.want {
				t.Errorf("Open() = %v, want %v", got, tt.want)
			}
		})
	}
}
