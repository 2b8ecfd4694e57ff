package calendar

import (
	"fmt"
	"time"
)

const isoLayout = "2006-01-02"

// Date is a civil calendar day. Month is 0-based (0 is January) to match the persisted layout.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Normalize returns the canonical date reached by calendar rollover, so month -1 is December of the
// previous year and day 0 is the last day of the previous month.
func Normalize(year, month, day int) Date {
	return dateOf(civil(year, month, day))
}

// MonthLength returns the number of days in the given month.
func MonthLength(year, month int) int {
	// day zero of the following month is the last day of this one
	return civil(year, month+1, 0).Day()
}

// FirstWeekday returns the column (0-6) of the 1st of the month in a week that begins on weekStart.
func FirstWeekday(year, month int, weekStart time.Weekday) int {
	return weekdayColumn(civil(year, month, 1).Weekday(), weekStart)
}

func weekdayColumn(day, weekStart time.Weekday) int {
	return (int(day) - int(weekStart) + 7) % 7
}

// Today returns the civil date of now in now's location.
func Today(now time.Time) Date {
	return Date{Year: now.Year(), Month: int(now.Month()) - 1, Day: now.Day()}
}

// ParseISO parses a YYYY-MM-DD string.
func ParseISO(s string) (Date, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("error parsing date %q: %w", s, err)
	}

	return dateOf(t), nil
}

// ISO formats the date as YYYY-MM-DD. The date is normalized first.
func (d Date) ISO() string {
	return civil(d.Year, d.Month, d.Day).Format(isoLayout)
}

// Normalize returns d with month and day rolled into range.
func (d Date) Normalize() Date {
	return Normalize(d.Year, d.Month, d.Day)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Normalize(d.Year, d.Month, d.Day+n)
}

// AddMonths returns the date n months after d, with the day clamped to the target month's length.
func (d Date) AddMonths(n int) Date {
	first := Normalize(d.Year, d.Month+n, 1)
	day := d.Day

	if length := MonthLength(first.Year, first.Month); day > length {
		day = length
	}

	return Date{Year: first.Year, Month: first.Month, Day: day}
}

// Compare returns -1, 0 or 1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	a := d.Normalize()
	b := other.Normalize()

	switch {
	case a == b:
		return 0
	case a.Year < b.Year,
		a.Year == b.Year && a.Month < b.Month,
		a.Year == b.Year && a.Month == b.Month && a.Day < b.Day:
		return -1
	default:
		return 1
	}
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, loc)
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	return civil(d.Year, d.Month, d.Day).Weekday()
}

// String formats the date for display, e.g. "March 4, 2024".
func (d Date) String() string {
	return civil(d.Year, d.Month, d.Day).Format("January 2, 2006")
}

// civil works in UTC so that DST transitions never skip or repeat a day.
func civil(year, month, day int) time.Time {
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
}

func dateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
}
