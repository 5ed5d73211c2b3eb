package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	log "github.com/sirupsen/logrus"
)

const icsProductId = "-//klokku//planner//EN"

// WriteICS renders events as an iCalendar feed. The event type goes into CATEGORIES
// and the cached color into COLOR.
func WriteICS(w io.Writer, events []Event, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductId)

	for _, e := range events {
		ve := cal.AddEvent(e.Id)
		ve.SetDtStampTime(stamp)
		ve.SetSummary(e.Subject)
		if e.IsAllDay {
			ve.SetAllDayStartAt(e.StartTime)
			ve.SetAllDayEndAt(e.EndTime)
		} else {
			ve.SetStartAt(e.StartTime)
			ve.SetEndAt(e.EndTime)
		}
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.EventTypeId != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, e.EventTypeId)
		}
		if e.Color != "" {
			ve.SetProperty(ical.ComponentPropertyColor, e.Color)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("could not write calendar: %w", err)
	}
	return nil
}

// ParseICS reads the VEVENTs of an iCalendar payload. The returned events carry no id;
// CATEGORIES, when present, becomes the event type id.
func ParseICS(r io.Reader) ([]Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse calendar: %w", err)
	}

	events := make([]Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		e, err := parseVEvent(ve)
		if err != nil {
			log.Warnf("skipping vevent: %v", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (Event, error) {
	var e Event
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		e.Subject = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		e.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		e.EventTypeId = strings.TrimSpace(strings.Split(p.Value, ",")[0])
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return Event{}, errors.New("missing DTSTART")
	}
	e.IsAllDay = isDateValue(dtStart)

	var err error
	if e.IsAllDay {
		if e.StartTime, err = ve.GetAllDayStartAt(); err != nil {
			return Event{}, fmt.Errorf("invalid DTSTART: %w", err)
		}
		if e.EndTime, err = ve.GetAllDayEndAt(); err != nil {
			e.EndTime = e.StartTime.AddDate(0, 0, 1)
		}
	} else {
		if e.StartTime, err = ve.GetStartAt(); err != nil {
			return Event{}, fmt.Errorf("invalid DTSTART: %w", err)
		}
		if e.EndTime, err = ve.GetEndAt(); err != nil {
			e.EndTime = e.StartTime
		}
	}
	return e, nil
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// Import creates every event through Create. Events without a category get eventTypeId.
// It returns the created events.
func (s *Store) Import(ctx context.Context, events []Event, eventTypeId string) ([]Event, error) {
	created := make([]Event, 0, len(events))
	for _, e := range events {
		if e.EventTypeId == "" {
			e.EventTypeId = eventTypeId
		}
		c, err := s.Create(ctx, e)
		if err != nil {
			return created, fmt.Errorf("could not import %q: %w", e.Subject, err)
		}
		created = append(created, c)
	}
	return created, nil
}
