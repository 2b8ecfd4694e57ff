// Package calendar holds the event and category stores, the date index derived from them, and the
// month grid generator that the views are drawn from.
package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Keys under which the three collections are persisted.
const (
	KeyCategories = "categories"
	KeyEvents     = "events"
	KeyEventDates = "eventDates"
)

// KeyValue is the persistence collaborator. Get reports ok=false for a key that was never set.
type KeyValue interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Calendar owns the events, categories and date index for one user. It is loaded once from a
// KeyValue store and writes the affected collections back after every mutation.
type Calendar struct {
	store      KeyValue
	events     []Event
	categories []Category
	index      *DateIndex
	weekStart  time.Weekday
	now        func() time.Time
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithWeekStart sets the weekday shown in the first grid column.
func WithWeekStart(day time.Weekday) Option {
	return func(c *Calendar) {
		c.weekStart = day
	}
}

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(c *Calendar) {
		c.now = now
	}
}

// New loads a Calendar from store. A date index that disagrees with the loaded events is rebuilt
// and written back.
func New(ctx context.Context, store KeyValue, opts ...Option) (*Calendar, error) {
	c := Calendar{
		store:      store,
		events:     []Event{},
		categories: []Category{},
		index:      NewDateIndex(),
		weekStart:  time.Sunday,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(&c)
	}

	if err := c.load(ctx); err != nil {
		return nil, err
	}

	if err := c.index.Check(c.events); err != nil {
		log.Warn().Err(err).Msg("rebuilding date index")

		c.index.Rebuild(c.events)

		if err := c.save(ctx, KeyEventDates); err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("events", len(c.events)).
		Int("categories", len(c.categories)).
		Int("dates", len(c.index.dates)).
		Msg("calendar loaded")

	return &c, nil
}

// WeekStart returns the weekday shown in the first grid column.
func (c *Calendar) WeekStart() time.Weekday {
	return c.weekStart
}

// Today returns the current civil date.
func (c *Calendar) Today() Date {
	return Today(c.now())
}

// Index returns the date index. Callers must treat it as read-only.
func (c *Calendar) Index() *DateIndex {
	return c.index
}

func (c *Calendar) load(ctx context.Context) error {
	var categories []Category
	if err := c.loadKey(ctx, KeyCategories, &categories); err != nil {
		return err
	}

	var records []eventRecord
	if err := c.loadKey(ctx, KeyEvents, &records); err != nil {
		return err
	}

	if err := c.loadKey(ctx, KeyEventDates, c.index); err != nil {
		return err
	}

	if categories != nil {
		c.categories = categories
	}

	for id, r := range records {
		e := normalizeDates(r.event())
		if e != r.event() {
			log.Warn().Int("eventID", id).Msg("normalized stored event dates")
		}

		c.events = append(c.events, e)
	}

	return nil
}

func (c *Calendar) loadKey(ctx context.Context, key string, dest interface{}) error {
	value, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("error loading %s: %w", key, err)
	}

	if !ok || value == "" {
		return nil
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return fmt.Errorf("error decoding %s: %w", key, err)
	}

	return nil
}

// save writes the given collections back to the store.
func (c *Calendar) save(ctx context.Context, keys ...string) error {
	var errs []error

	for _, key := range keys {
		var value interface{}

		switch key {
		case KeyCategories:
			value = c.categories
		case KeyEvents:
			records := make([]eventRecord, len(c.events))
			for i, e := range c.events {
				records[i] = newEventRecord(e)
			}

			value = records
		case KeyEventDates:
			value = c.index
		default:
			return fmt.Errorf("unknown key %s", key)
		}

		data, err := json.Marshal(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("error encoding %s: %w", key, err))

			continue
		}

		if err := c.store.Set(ctx, key, string(data)); err != nil {
			errs = append(errs, fmt.Errorf("error saving %s: %w", key, err))
		}
	}

	return errors.Join(errs...)
}

// eventRecord is the persisted shape of an Event.
type eventRecord struct {
	Name       string `json:"name"`
	CategoryID int    `json:"categoryID"`
	StartYear  int    `json:"startYear"`
	StartMonth int    `json:"startMonth"`
	StartDay   int    `json:"startDay"`
	EndYear    int    `json:"endYear"`
	EndMonth   int    `json:"endMonth"`
	EndDay     int    `json:"endDay"`
	Location   string `json:"location"`
	URL        string `json:"url"`
	Notes      string `json:"notes"`
	Completed  bool   `json:"completed"`
}

func newEventRecord(e Event) eventRecord {
	return eventRecord{
		Name:       e.Name,
		CategoryID: e.CategoryID,
		StartYear:  e.Start.Year,
		StartMonth: e.Start.Month,
		StartDay:   e.Start.Day,
		EndYear:    e.End.Year,
		EndMonth:   e.End.Month,
		EndDay:     e.End.Day,
		Location:   e.Location,
		URL:        e.URL,
		Notes:      e.Notes,
		Completed:  e.Completed,
	}
}

func (r eventRecord) event() Event {
	return Event{
		Name:       r.Name,
		CategoryID: r.CategoryID,
		Start:      Date{Year: r.StartYear, Month: r.StartMonth, Day: r.StartDay},
		End:        Date{Year: r.EndYear, Month: r.EndMonth, Day: r.EndDay},
		Location:   r.Location,
		URL:        r.URL,
		Notes:      r.Notes,
		Completed:  r.Completed,
	}
}
