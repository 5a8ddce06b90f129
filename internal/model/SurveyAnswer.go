package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SeakMengs/FacultyCert/internal/constant"
	"gorm.io/datatypes"
)

var ErrInvalidSurveyAnswer = errors.New("invalid survey answer")

func (a SurveyAnswer) SelectedOptions() []string {
	var ids []string
	if len(a.OptionIDs) > 0 {
		_ = json.Unmarshal(a.OptionIDs, &ids)
	}
	return ids
}

func OptionIDsToJSON(ids []string) datatypes.JSON {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	return datatypes.JSON(data)
}

func invalidAnswer(q SurveyQuestion, format string, args ...interface{}) error {
	return fmt.Errorf("%w: question %q %s", ErrInvalidSurveyAnswer, q.Text, fmt.Sprintf(format, args...))
}

// ValidateAnswers checks the answers against the question types. Every required
// question needs an answer and a question may be answered once.
func (s Survey) ValidateAnswers(answers []SurveyAnswer) error {
	questions := make(map[string]SurveyQuestion, len(s.Questions))
	for _, q := range s.Questions {
		questions[q.ID] = q
	}

	answered := make(map[string]bool, len(answers))
	for _, a := range answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			return fmt.Errorf("%w: question %s is not part of the survey", ErrInvalidSurveyAnswer, a.QuestionID)
		}
		if answered[a.QuestionID] {
			return invalidAnswer(q, "is answered twice")
		}
		answered[a.QuestionID] = true

		if err := q.validateAnswer(a); err != nil {
			return err
		}
	}

	for _, q := range s.Questions {
		if q.Required && !answered[q.ID] {
			return invalidAnswer(q, "is required")
		}
	}

	return nil
}

func (q SurveyQuestion) validateAnswer(a SurveyAnswer) error {
	selected := a.SelectedOptions()

	switch q.QuestionType {
	case constant.SurveyQuestionText:
		if q.Required && strings.TrimSpace(a.TextAnswer) == "" {
			return invalidAnswer(q, "needs a text answer")
		}
		if len(selected) > 0 || a.RatingAnswer != nil {
			return invalidAnswer(q, "only accepts text")
		}
	case constant.SurveyQuestionRating:
		if a.RatingAnswer == nil {
			return invalidAnswer(q, "needs a rating")
		}
		if *a.RatingAnswer < constant.SurveyRatingMin || *a.RatingAnswer > constant.SurveyRatingMax {
			return invalidAnswer(q, "needs a rating between %d and %d", constant.SurveyRatingMin, constant.SurveyRatingMax)
		}
		if len(selected) > 0 {
			return invalidAnswer(q, "does not accept options")
		}
	case constant.SurveyQuestionSingleChoice, constant.SurveyQuestionMultipleChoice:
		if q.QuestionType == constant.SurveyQuestionSingleChoice && len(selected) != 1 {
			return invalidAnswer(q, "needs exactly one option")
		}
		if len(selected) == 0 {
			return invalidAnswer(q, "needs at least one option")
		}
		if a.RatingAnswer != nil {
			return invalidAnswer(q, "does not accept a rating")
		}

		valid := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			valid[o.ID] = true
		}
		seen := make(map[string]bool, len(selected))
		for _, id := range selected {
			if !valid[id] {
				return invalidAnswer(q, "has no option %s", id)
			}
			if seen[id] {
				return invalidAnswer(q, "has option %s selected twice", id)
			}
			seen[id] = true
		}
	default:
		return invalidAnswer(q, "has unknown type %s", q.QuestionType)
	}

	return nil
}

type SurveyQuestionResult struct {
	QuestionID    string         `json:"questionId"`
	Text          string         `json:"text"`
	QuestionType  string         `json:"questionType"`
	AnswerCount   int            `json:"answerCount"`
	OptionCounts  map[string]int `json:"optionCounts,omitempty"`
	RatingCounts  map[int]int    `json:"ratingCounts,omitempty"`
	AverageRating *float64       `json:"averageRating,omitempty"`
	TextAnswers   []string       `json:"textAnswers,omitempty"`
}

type SurveyResults struct {
	SurveyID      string                 `json:"surveyId"`
	ResponseCount int64                  `json:"responseCount"`
	Questions     []SurveyQuestionResult `json:"questions"`
}

// Results tallies answers per question in question order. Option counts are keyed by option id.
func (s Survey) Results(answers []SurveyAnswer, responseCount int64) SurveyResults {
	results := make([]SurveyQuestionResult, len(s.Questions))
	index := make(map[string]int, len(s.Questions))
	for i, q := range s.Questions {
		index[q.ID] = i
		results[i] = SurveyQuestionResult{QuestionID: q.ID, Text: q.Text, QuestionType: q.QuestionType}

		switch q.QuestionType {
		case constant.SurveyQuestionSingleChoice, constant.SurveyQuestionMultipleChoice:
			results[i].OptionCounts = make(map[string]int, len(q.Options))
			for _, o := range q.Options {
				results[i].OptionCounts[o.ID] = 0
			}
		case constant.SurveyQuestionRating:
			results[i].RatingCounts = make(map[int]int)
		}
	}

	ratingSums := make(map[int]int)
	for _, a := range answers {
		i, ok := index[a.QuestionID]
		if !ok {
			continue
		}
		r := &results[i]
		r.AnswerCount++

		switch r.QuestionType {
		case constant.SurveyQuestionText:
			if text := strings.TrimSpace(a.TextAnswer); text != "" {
				r.TextAnswers = append(r.TextAnswers, text)
			}
		case constant.SurveyQuestionRating:
			if a.RatingAnswer != nil {
				r.RatingCounts[*a.RatingAnswer]++
				ratingSums[i] += *a.RatingAnswer
			}
		default:
			for _, id := range a.SelectedOptions() {
				r.OptionCounts[id]++
			}
		}
	}

	for i := range results {
		if results[i].QuestionType != constant.SurveyQuestionRating {
			continue
		}
		n := 0
		for _, c := range results[i].RatingCounts {
			n += c
		}
		if n > 0 {
			avg := float64(ratingSums[i]) / float64(n)
			results[i].AverageRating = &avg
		}
	}

	return SurveyResults{SurveyID: s.ID, ResponseCount: responseCount, Questions: results}
}
