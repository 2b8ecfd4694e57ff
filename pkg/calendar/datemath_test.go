package calendar_test

import (
	"testing"
	"time"

	"github.com/matt-steen/pocket-calendar/pkg/calendar"
	"github.com/stretchr/testify/assert"
)

func TestMonthLength(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(31, calendar.MonthLength(2024, 0))
	assert.Equal(29, calendar.MonthLength(2024, 1))
	assert.Equal(28, calendar.MonthLength(2023, 1))
	assert.Equal(28, calendar.MonthLength(1900, 1))
	assert.Equal(29, calendar.MonthLength(2000, 1))
	assert.Equal(30, calendar.MonthLength(2024, 3))
	assert.Equal(31, calendar.MonthLength(2024, 11))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(date(2023, 11, 1), calendar.Normalize(2024, -1, 1))
	assert.Equal(date(2025, 0, 1), calendar.Normalize(2024, 12, 1))
	assert.Equal(date(2024, 0, 31), calendar.Normalize(2024, 1, 0))
	assert.Equal(date(2024, 2, 1), calendar.Normalize(2024, 1, 30))
	assert.Equal(date(2023, 0, 31), calendar.Normalize(2024, -11, 0))
	assert.Equal(date(2024, 5, 15), calendar.Normalize(2024, 5, 15))
}

func TestFirstWeekday(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	// February 1, 2024 was a Thursday
	assert.Equal(4, calendar.FirstWeekday(2024, 1, time.Sunday))
	assert.Equal(3, calendar.FirstWeekday(2024, 1, time.Monday))

	// September 1, 2024 was a Sunday
	assert.Equal(0, calendar.FirstWeekday(2024, 8, time.Sunday))
	assert.Equal(6, calendar.FirstWeekday(2024, 8, time.Monday))
}

func TestDateISO(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("2024-03-04", date(2024, 2, 4).ISO())
	assert.Equal("2024-03-01", date(2024, 1, 30).ISO())
	assert.Equal("March 4, 2024", date(2024, 2, 4).String())

	d, err := calendar.ParseISO("2024-12-31")
	assert.Nil(err)
	assert.Equal(date(2024, 11, 31), d)

	_, err = calendar.ParseISO("2024-13-01")
	assert.NotNil(err)
}

func TestDateArithmetic(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(date(2024, 1, 29), date(2024, 0, 31).AddMonths(1))
	assert.Equal(date(2023, 1, 28), date(2024, 1, 29).AddMonths(-12))
	assert.Equal(date(2023, 11, 4), date(2024, 2, 4).AddMonths(-3))
	assert.Equal(date(2024, 0, 1), date(2023, 11, 31).AddDays(1))
	assert.Equal(date(2024, 1, 29), date(2024, 2, 1).AddDays(-1))

	assert.True(date(2024, 0, 31).Before(date(2024, 1, 1)))
	assert.False(date(2024, 1, 1).Before(date(2024, 0, 32)))
	assert.Equal(0, date(2024, 1, 1).Compare(date(2024, 0, 32)))
	assert.Equal(1, date(2025, 0, 1).Compare(date(2024, 11, 31)))
	assert.Equal(time.Monday, date(2024, 2, 4).Weekday())
}

func TestToday(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, time.March, 4, 23, 30, 0, 0, loc)

	assert.Equal(date(2024, 2, 4), calendar.Today(now))
}
