package calendar

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/SeakMengs/FacultyCert/internal/model"
)

func TestEventFeed(t *testing.T) {
	start := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	events := []model.Event{
		{
			BaseModel:   model.BaseModel{ID: "evt-1"},
			Title:       "Faculty meeting",
			Description: "Term planning",
			Location:    "Room 101",
			StartAt:     start,
			EndAt:       start.Add(2 * time.Hour),
			Organizer:   &model.User{Email: "dean@example.edu", FirstName: "Grace", LastName: "Hopper"},
		},
		{
			BaseModel: model.BaseModel{ID: "evt-2"},
			Title:     "Open day",
			StartAt:   start.AddDate(0, 0, 7),
			EndAt:     start.AddDate(0, 0, 7).Add(8 * time.Hour),
		},
	}

	feed := EventFeed("University events", "example.edu", events, start)

	cal, err := ics.ParseCalendar(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("feed does not parse: %v", err)
	}

	parsed := cal.Events()
	if len(parsed) != 2 {
		t.Fatalf("got %d events, want 2", len(parsed))
	}

	if uid := parsed[0].Id(); uid != "evt-1@example.edu" {
		t.Errorf("uid = %q", uid)
	}
	if summary := parsed[0].GetProperty(ics.ComponentPropertySummary); summary == nil || summary.Value != "Faculty meeting" {
		t.Errorf("summary = %v", summary)
	}
	gotStart, err := parsed[0].GetStartAt()
	if err != nil || !gotStart.Equal(start) {
		t.Errorf("start = %v, %v", gotStart, err)
	}
	if loc := parsed[1].GetProperty(ics.ComponentPropertyLocation); loc != nil {
		t.Errorf("event without location has %q", loc.Value)
	}
	if !strings.Contains(feed, "mailto:dean@example.edu") {
		t.Error("organizer missing from feed")
	}
}

func TestEventFeedEmpty(t *testing.T) {
	feed := EventFeed("University events", "example.edu", nil, time.Now())
	if !strings.Contains(feed, "BEGIN:VCALENDAR") || strings.Contains(feed, "BEGIN:VEVENT") {
		t.Errorf("unexpected empty feed:\n%s", feed)
	}
}
