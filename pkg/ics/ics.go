// Package ics converts calendar events to and from iCalendar files. Events are written as all-day
// VEVENTs; the DTEND of an all-day VEVENT is the day after the last day, per RFC 5545.
package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	// embedded zone database for TZID lookups
	_ "time/tzdata"

	ical "github.com/arran4/golang-ical"
	"github.com/rs/zerolog/log"

	"github.com/matt-steen/pocket-calendar/pkg/calendar"
)

const productID = "-//matt-steen//pocket-calendar//EN"

// Export writes every event of cal to w as an iCalendar document. now stamps DTSTAMP.
func Export(w io.Writer, cal *calendar.Calendar, now time.Time) error {
	doc := ical.NewCalendar()
	doc.SetMethod(ical.MethodPublish)
	doc.SetProductId(productID)

	for id, e := range cal.Events() {
		vevent := doc.AddEvent(fmt.Sprintf("event-%d-%s@pocket-calendar", id, e.Start.ISO()))
		vevent.SetDtStampTime(now)
		vevent.SetSummary(e.Name)
		vevent.SetAllDayStartAt(e.Start.Time(time.UTC))
		vevent.SetAllDayEndAt(e.End.AddDays(1).Time(time.UTC))

		if e.Location != "" {
			vevent.SetLocation(e.Location)
		}

		if e.URL != "" {
			vevent.SetURL(e.URL)
		}

		if e.Notes != "" {
			vevent.SetDescription(e.Notes)
		}

		if category, ok := cal.EventCategory(e); ok {
			vevent.SetProperty(ical.ComponentPropertyCategories, category.Name)
		}
	}

	if _, err := io.WriteString(w, doc.Serialize()); err != nil {
		return fmt.Errorf("error writing ics: %w", err)
	}

	return nil
}

// Import parses an iCalendar document and creates one event per VEVENT. VEVENTs that cannot be
// read or fail validation are logged and skipped. It returns the identifiers of the new events.
func Import(ctx context.Context, r io.Reader, cal *calendar.Calendar) ([]int, error) {
	doc, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing ics: %w", err)
	}

	categories := map[string]int{}
	for id, category := range cal.Categories() {
		if _, ok := categories[strings.ToLower(category.Name)]; !ok {
			categories[strings.ToLower(category.Name)] = id
		}
	}

	ids := []int{}

	for _, vevent := range doc.Events() {
		e, err := parseVEvent(vevent, categories, time.Local)
		if err != nil {
			log.Warn().Err(err).Str("uid", vevent.Id()).Msg("skipping vevent")

			continue
		}

		id, err := cal.CreateEvent(ctx, e)

		switch {
		case errors.Is(err, calendar.ErrValidation):
			log.Warn().Err(err).Str("uid", vevent.Id()).Msg("skipping vevent")

			continue
		case err != nil:
			return ids, err
		}

		ids = append(ids, id)
	}

	log.Info().Int("imported", len(ids)).Int("vevents", len(doc.Events())).Msg("ics import completed")

	return ids, nil
}

// parseVEvent reads one VEVENT. categories maps lower-case category names to identifiers; the first
// CATEGORIES entry found there becomes the event's category. Times are converted to local, the
// location whose civil days the event is placed on.
func parseVEvent(vevent *ical.VEvent, categories map[string]int, local *time.Location) (calendar.Event, error) {
	e := calendar.Event{CategoryID: calendar.NoCategory}

	if p := vevent.GetProperty(ical.ComponentPropertySummary); p != nil {
		e.Name = p.Value
	}

	if p := vevent.GetProperty(ical.ComponentPropertyLocation); p != nil {
		e.Location = p.Value
	}

	if p := vevent.GetProperty(ical.ComponentPropertyUrl); p != nil {
		e.URL = p.Value
	}

	if p := vevent.GetProperty(ical.ComponentPropertyDescription); p != nil {
		e.Notes = p.Value
	}

	for _, p := range vevent.GetProperties(ical.ComponentPropertyCategories) {
		if id, ok := matchCategory(p.Value, categories); ok {
			e.CategoryID = id

			break
		}
	}

	startProp := vevent.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return e, errors.New("missing DTSTART")
	}

	start, allDay, err := parseTime(startProp, local)
	if err != nil {
		return e, fmt.Errorf("error parsing DTSTART: %w", err)
	}

	e.Start = calendar.Today(start)
	e.End = e.Start

	if endProp := vevent.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
		end, _, err := parseTime(endProp, local)
		if err != nil {
			return e, fmt.Errorf("error parsing DTEND: %w", err)
		}

		// DTEND is exclusive: the end of an all-day span, or a timed event ending at midnight,
		// belongs to the previous day
		if end.After(start) && (allDay || isMidnight(end)) {
			end = end.AddDate(0, 0, -1)
		}

		if end.After(start) {
			e.End = calendar.Today(end)
		}
	}

	return e, nil
}

// matchCategory looks up each comma separated name of a CATEGORIES value.
func matchCategory(value string, categories map[string]int) (int, bool) {
	for _, name := range strings.Split(value, ",") {
		if id, ok := categories[strings.ToLower(strings.TrimSpace(name))]; ok {
			return id, true
		}
	}

	return calendar.NoCategory, false
}

// parseTime reads DATE and DATE-TIME values and returns them in local. UTC times and times with a
// TZID are converted; floating times and dates are read as local wall-clock times.
func parseTime(prop *ical.IANAProperty, local *time.Location) (time.Time, bool, error) {
	value := strings.TrimSpace(prop.Value)

	switch {
	case value == "":
		return time.Time{}, false, errors.New("empty time value")
	case strings.HasSuffix(value, "Z"):
		t, err := time.Parse("20060102T150405Z", value)

		return t.In(local), false, err
	case strings.Contains(value, "T"):
		loc := local

		if tzids := prop.ICalParameters[string(ical.ParameterTzid)]; len(tzids) > 0 {
			zone, err := time.LoadLocation(tzids[0])
			if err != nil {
				log.Warn().Err(err).Str("tzid", tzids[0]).Msg("unknown time zone, reading time as local")
			} else {
				loc = zone
			}
		}

		t, err := time.ParseInLocation("20060102T150405", value, loc)

		return t.In(local), false, err
	default:
		t, err := time.ParseInLocation("20060102", value, local)

		return t, true, err
	}
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}
