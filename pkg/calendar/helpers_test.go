package calendar_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matt-steen/pocket-calendar/pkg/calendar"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

// memStore is an in-memory KeyValue.
type memStore struct {
	values map[string]string
	fail   bool
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Get(ctx context.Context, key string) (string, bool, error) {
	if m.fail {
		return "", false, errStoreDown
	}

	value, ok := m.values[key]

	return value, ok, nil
}

func (m *memStore) Set(ctx context.Context, key, value string) error {
	if m.fail {
		return errStoreDown
	}

	m.values[key] = value

	return nil
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)
}

func newCalendar(t *testing.T, store *memStore) *calendar.Calendar {
	t.Helper()

	cal, err := calendar.New(context.Background(), store, calendar.WithClock(fixedClock))
	require.NoError(t, err)

	return cal
}

func date(year, month, day int) calendar.Date {
	return calendar.Date{Year: year, Month: month, Day: day}
}

func event(name string, start, end calendar.Date) calendar.Event {
	return calendar.Event{Name: name, CategoryID: calendar.NoCategory, Start: start, End: end}
}
