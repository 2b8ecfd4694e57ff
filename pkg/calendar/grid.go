package calendar

import "time"

// Segment tells which month a grid cell belongs to.
type Segment int

// Segments in the order a month grid passes through them.
const (
	LastMonth Segment = iota
	ThisMonth
	NextMonth
)

func (s Segment) String() string {
	switch s {
	case LastMonth:
		return "last-month"
	case ThisMonth:
		return "this-month"
	case NextMonth:
		return "next-month"
	}

	return "unknown"
}

// EventCounter reports how many events occupy an ISO date. *DateIndex implements it.
type EventCounter interface {
	EventCount(date string) int
}

// GridOptions are the inputs of a month grid besides the month itself.
type GridOptions struct {
	// Small grids are drawn inside the year view: narrow weekday labels and no event counts.
	Small     bool
	Today     Date
	WeekStart time.Weekday
}

// Cell is one day of a month grid.
type Cell struct {
	Date    Date
	Segment Segment
	// Column is the position within the week, 0 being the configured first weekday.
	Column     int
	Today      bool
	EventCount int
}

// MonthGrid is a month laid out in whole weeks, padded with the neighbouring months' days.
type MonthGrid struct {
	Year      int
	Month     int
	Small     bool
	WeekStart time.Weekday
	Weeks     [][7]Cell
}

// Weekdays returns the weekday of each column.
func (g *MonthGrid) Weekdays() [7]time.Weekday {
	var days [7]time.Weekday
	for col := range days {
		days[col] = time.Weekday((int(g.WeekStart) + col) % 7)
	}

	return days
}

// BuildMonthGrid lays out the given month (0-based, normalized first) as rows of seven cells. Cells
// before the 1st count up to the end of the previous month, cells after the last day count up from
// 1. counter may be nil; event counts are only filled in for non-small grids.
func BuildMonthGrid(year, month int, opts GridOptions, counter EventCounter) *MonthGrid {
	first := Normalize(year, month, 1)
	prev := first.AddMonths(-1)
	next := first.AddMonths(1)

	offset := FirstWeekday(first.Year, first.Month, opts.WeekStart)
	length := MonthLength(first.Year, first.Month)
	prevLength := MonthLength(prev.Year, prev.Month)

	grid := &MonthGrid{
		Year:      first.Year,
		Month:     first.Month,
		Small:     opts.Small,
		WeekStart: opts.WeekStart,
		Weeks:     make([][7]Cell, 0, (length+offset+6)/7),
	}

	state := LastMonth
	day := 0

	for {
		var week [7]Cell

		for col := 0; col < 7; col++ {
			if state == LastMonth && col == offset {
				state = ThisMonth
				day = 0
			}

			var date Date

			switch state {
			case LastMonth:
				date = Date{Year: prev.Year, Month: prev.Month, Day: prevLength - (offset - col - 1)}
			case ThisMonth:
				day++
				date = Date{Year: first.Year, Month: first.Month, Day: day}
			case NextMonth:
				day++
				date = Date{Year: next.Year, Month: next.Month, Day: day}
			}

			cell := Cell{
				Date:    date,
				Segment: state,
				Column:  col,
				Today:   date == opts.Today,
			}

			if !opts.Small && counter != nil {
				cell.EventCount = counter.EventCount(date.ISO())
			}

			week[col] = cell

			if state == ThisMonth && day >= length {
				state = NextMonth
				day = 0
			}
		}

		grid.Weeks = append(grid.Weeks, week)

		if state == NextMonth {
			break
		}
	}

	return grid
}

// BuildYearGrids lays out all twelve months of year as small grids.
func BuildYearGrids(year int, opts GridOptions, counter EventCounter) [12]*MonthGrid {
	opts.Small = true

	var grids [12]*MonthGrid
	for month := range grids {
		grids[month] = BuildMonthGrid(year, month, opts, counter)
	}

	return grids
}

// RenderableGrid returns the grid for a month view, marked with today's date and event counts.
func (c *Calendar) RenderableGrid(year, month int, small bool) *MonthGrid {
	opts := GridOptions{
		Small:     small,
		Today:     c.Today(),
		WeekStart: c.weekStart,
	}

	return BuildMonthGrid(year, month, opts, c.index)
}

// RenderableYear returns the twelve small grids of a year view.
func (c *Calendar) RenderableYear(year int) [12]*MonthGrid {
	opts := GridOptions{
		Today:     c.Today(),
		WeekStart: c.weekStart,
	}

	return BuildYearGrids(year, opts, c.index)
}
