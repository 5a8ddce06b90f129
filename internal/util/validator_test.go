package util

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type validationSample struct {
	Name       string `validate:"strNotEmpty,cmax=10"`
	Term       string `validate:"termCode"`
	Color      string `validate:"omitempty,hexColor"`
	StartTime  string `validate:"clockTime"`
	Department string `validate:"cmin=3"`
}

func TestCustomValidations(t *testing.T) {
	v := validator.New()
	RegisterValidations(v)

	valid := validationSample{Name: "Jane", Term: "202525", Color: "#1F3A5F", StartTime: "08:30", Department: " Math "}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(s *validationSample)
		field  string
	}{
		{"blank name", func(s *validationSample) { s.Name = "   " }, "Name"},
		{"long name", func(s *validationSample) { s.Name = "  abcdefghijk  " }, "Name"},
		{"short term", func(s *validationSample) { s.Term = "2025" }, "Term"},
		{"bad color", func(s *validationSample) { s.Color = "blue" }, "Color"},
		{"bad time", func(s *validationSample) { s.StartTime = "25:99" }, "StartTime"},
		{"short department", func(s *validationSample) { s.Department = " ab  " }, "Department"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := v.Struct(s)
			if err == nil {
				t.Fatal("expected validation error")
			}

			messages := GenerateErrorMessages(err)
			if len(messages) != 1 || messages[0].Field != tt.field {
				t.Errorf("expected one error on %s, got %+v", tt.field, messages)
			}
		})
	}
}

func TestGenerateErrorMessagesFallbacks(t *testing.T) {
	notFound := GenerateErrorMessages(gorm.ErrRecordNotFound)
	if notFound[0].Message != "Record not found" {
		t.Errorf("unexpected message %+v", notFound)
	}

	type limited struct {
		Title string `validate:"cmax=3"`
	}
	v := validator.New()
	RegisterValidations(v)
	msgs := GenerateErrorMessages(v.Struct(limited{Title: "abcd"}))
	if msgs[0].Message != "Title must be at most 3 non-whitespace characters" {
		t.Errorf("unexpected message %+v", msgs)
	}

	named := GenerateErrorMessages(errors.New("boom"), "file")
	if named[0].Field != "file" || named[0].Message != "boom" {
		t.Errorf("unexpected message %+v", named)
	}
}
