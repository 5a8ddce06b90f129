// Package calendar renders events as an iCalendar (RFC 5545) feed.
package calendar

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/SeakMengs/FacultyCert/internal/model"
)

const productID = "-//FacultyCert//Events//EN"

// EventFeed returns the events as one VCALENDAR. UIDs are stable across calls so calendar
// clients update instead of duplicating entries.
func EventFeed(name, domain string, events []model.Event, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)

	for _, e := range events {
		vevent := cal.AddEvent(e.ID + "@" + domain)
		vevent.SetDtStampTime(now)
		if e.CreatedAt != nil {
			vevent.SetCreatedTime(*e.CreatedAt)
		}
		vevent.SetStartAt(e.StartAt)
		vevent.SetEndAt(e.EndAt)
		vevent.SetSummary(e.Title)
		if e.Description != "" {
			vevent.SetDescription(e.Description)
		}
		if e.Location != "" {
			vevent.SetLocation(e.Location)
		}
		if e.Organizer != nil && e.Organizer.Email != "" {
			vevent.SetOrganizer("mailto:"+e.Organizer.Email, ics.WithCN(e.Organizer.FullName()))
		}
	}

	return cal.Serialize()
}
