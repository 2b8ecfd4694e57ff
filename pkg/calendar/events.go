package calendar

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Events returns a copy of all events; an event's identifier is its index.
func (c *Calendar) Events() []Event {
	events := make([]Event, len(c.events))
	copy(events, c.events)

	return events
}

// Event returns the event with the given identifier.
func (c *Calendar) Event(id int) (Event, error) {
	if id < 0 || id >= len(c.events) {
		return Event{}, fmt.Errorf("%w: event %d", ErrNotFound, id)
	}

	return c.events[id], nil
}

// CreateEvent validates e, appends it and indexes its dates. It returns the new identifier.
func (c *Calendar) CreateEvent(ctx context.Context, e Event) (int, error) {
	e, err := c.prepareEvent(e)
	if err != nil {
		return -1, err
	}

	id := len(c.events)
	c.events = append(c.events, e)
	c.index.Synchronize(id, ListEventDates(e), nil)

	log.Debug().Int("eventID", id).Str("name", e.Name).Msg("created event")

	if err := c.save(ctx, KeyEvents, KeyEventDates); err != nil {
		return id, err
	}

	return id, nil
}

// UpdateEvent replaces the event with the given identifier and moves its index entries.
func (c *Calendar) UpdateEvent(ctx context.Context, id int, e Event) error {
	old, err := c.Event(id)
	if err != nil {
		return err
	}

	e, err = c.prepareEvent(e)
	if err != nil {
		return err
	}

	c.events[id] = e
	c.index.Synchronize(id, ListEventDates(e), ListEventDates(old))

	log.Debug().Int("eventID", id).Str("name", e.Name).Msg("updated event")

	return c.save(ctx, KeyEvents, KeyEventDates)
}

// DeleteEvent removes the event with the given identifier. Every later event moves down one
// position, and the date index is renumbered to match.
func (c *Calendar) DeleteEvent(ctx context.Context, id int) error {
	old, err := c.Event(id)
	if err != nil {
		return err
	}

	// the event's own entries must be gone before renumbering, or id+1 would collapse onto them
	c.index.Synchronize(id, nil, ListEventDates(old))
	c.events = append(c.events[:id], c.events[id+1:]...)
	c.index.RenumberAfterDelete(id)

	log.Debug().Int("eventID", id).Str("name", old.Name).Msg("deleted event")

	return c.save(ctx, KeyEvents, KeyEventDates)
}

// EventsOn returns the events occupying date, in index order.
func (c *Calendar) EventsOn(date Date) []IndexedEvent {
	ids := c.index.IDs(date.ISO())
	events := make([]IndexedEvent, 0, len(ids))

	for _, id := range ids {
		if id < 0 || id >= len(c.events) {
			log.Warn().Int("eventID", id).Str("date", date.ISO()).Msg("date index refers to a missing event")

			continue
		}

		events = append(events, IndexedEvent{ID: id, Event: c.events[id]})
	}

	return events
}

// prepareEvent applies the input rules: trimmed non-empty name, truncated text fields, a known
// category, and normalized dates with start <= end.
func (c *Calendar) prepareEvent(e Event) (Event, error) {
	e.Name = truncate(strings.TrimSpace(e.Name), MaxLength)
	if e.Name == "" {
		return e, fmt.Errorf("%w: event name is empty", ErrValidation)
	}

	if e.CategoryID < NoCategory || e.CategoryID >= len(c.categories) {
		return e, fmt.Errorf("%w: category %d does not exist", ErrValidation, e.CategoryID)
	}

	e.Location = truncate(strings.TrimSpace(e.Location), MaxLength)
	e.URL = truncate(strings.TrimSpace(e.URL), MaxLength)
	e.Notes = truncate(strings.TrimSpace(e.Notes), MaxLength)

	return normalizeDates(e), nil
}

// normalizeDates rolls both dates into range and swaps them if the event ends before it starts.
func normalizeDates(e Event) Event {
	e.Start = e.Start.Normalize()
	e.End = e.End.Normalize()

	if e.End.Before(e.Start) {
		e.Start, e.End = e.End, e.Start
	}

	return e
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}
