package calendar_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matt-steen/pocket-calendar/pkg/calendar"
	"github.com/stretchr/testify/assert"
)

func TestListEventDatesSingleDay(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	dates := calendar.ListEventDates(event("standup", date(2024, 2, 4), date(2024, 2, 4)))
	assert.Equal([]string{"2024-03-04"}, dates)
}

func TestListEventDatesAcrossMonths(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	dates := calendar.ListEventDates(event("trip", date(2024, 0, 30), date(2024, 1, 2)))
	assert.Equal([]string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}, dates)

	dates = calendar.ListEventDates(event("leap", date(2024, 1, 28), date(2024, 2, 1)))
	assert.Equal([]string{"2024-02-28", "2024-02-29", "2024-03-01"}, dates)

	dates = calendar.ListEventDates(event("no leap", date(2023, 1, 28), date(2023, 2, 1)))
	assert.Equal([]string{"2023-02-28", "2023-03-01"}, dates)
}

func TestListEventDatesAcrossYears(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	dates := calendar.ListEventDates(event("holidays", date(2023, 11, 30), date(2024, 0, 2)))
	assert.Equal([]string{"2023-12-30", "2023-12-31", "2024-01-01", "2024-01-02"}, dates)
}

func TestListEventDatesNeverEmpty(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	dates := calendar.ListEventDates(event("backwards", date(2024, 2, 4), date(2024, 2, 1)))
	assert.Equal([]string{"2024-03-04"}, dates)
}

func TestSynchronizeAddAndMove(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	index := calendar.NewDateIndex()
	index.Synchronize(0, []string{"2024-03-04", "2024-03-05"}, nil)
	index.Synchronize(1, []string{"2024-03-05"}, nil)

	assert.Equal([]int{0}, index.IDs("2024-03-04"))
	assert.Equal([]int{0, 1}, index.IDs("2024-03-05"))

	index.Synchronize(0, []string{"2024-03-05", "2024-03-06"}, []string{"2024-03-04", "2024-03-05"})

	assert.Empty(index.IDs("2024-03-04"))
	assert.Equal([]int{0, 1}, index.IDs("2024-03-05"))
	assert.Equal([]int{0}, index.IDs("2024-03-06"))
	assert.Equal([]string{"2024-03-05", "2024-03-06"}, index.Dates())
}

func TestSynchronizeIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	dates := []string{"2024-03-04", "2024-03-05"}

	index := calendar.NewDateIndex()
	index.Synchronize(0, dates, nil)

	before, err := json.Marshal(index)
	assert.Nil(err)

	index.Synchronize(0, dates, dates)

	after, err := json.Marshal(index)
	assert.Nil(err)
	assert.JSONEq(string(before), string(after))
}

func TestSynchronizeDuplicateAdd(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	index := calendar.NewDateIndex()
	index.Synchronize(3, []string{"2024-03-04"}, nil)
	index.Synchronize(3, []string{"2024-03-04"}, nil)

	assert.Equal([]int{3}, index.IDs("2024-03-04"))
	assert.Equal(1, index.EventCount("2024-03-04"))
}

func TestSynchronizeMissingRemoval(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	index := calendar.NewDateIndex()
	index.Synchronize(1, []string{"2024-03-04"}, nil)

	// neither the date nor the identifier is indexed; both are skipped
	index.Synchronize(0, nil, []string{"2024-03-04", "2024-03-09"})

	assert.Equal([]int{1}, index.IDs("2024-03-04"))
	assert.Equal(0, index.EventCount("2024-03-09"))
}

func TestRenumberAfterDelete(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	index := calendar.NewDateIndex()
	index.Synchronize(0, []string{"2024-03-04"}, nil)
	index.Synchronize(1, []string{"2024-03-04", "2024-03-05"}, nil)
	index.Synchronize(2, []string{"2024-03-05"}, nil)

	index.Synchronize(1, nil, []string{"2024-03-04", "2024-03-05"})
	index.RenumberAfterDelete(1)

	assert.Equal([]int{0}, index.IDs("2024-03-04"))
	assert.Equal([]int{1}, index.IDs("2024-03-05"))
}

func TestIDsReturnsCopy(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	index := calendar.NewDateIndex()
	index.Synchronize(0, []string{"2024-03-04"}, nil)

	ids := index.IDs("2024-03-04")
	ids[0] = 42

	assert.Equal([]int{0}, index.IDs("2024-03-04"))
}

func TestCheckAndRebuild(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	events := []calendar.Event{
		event("a", date(2024, 2, 4), date(2024, 2, 5)),
		event("b", date(2024, 2, 5), date(2024, 2, 5)),
	}

	index := calendar.NewDateIndex()
	index.Synchronize(0, []string{"2024-03-04"}, nil)

	err := index.Check(events)
	assert.True(errors.Is(err, calendar.ErrIndexInconsistency))

	index.Rebuild(events)
	assert.Nil(index.Check(events))
	assert.Equal([]int{0, 1}, index.IDs("2024-03-05"))

	index.Synchronize(7, []string{"2024-03-05"}, nil)
	assert.True(errors.Is(index.Check(events), calendar.ErrIndexInconsistency))
}

func TestDateIndexJSON(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	index := calendar.NewDateIndex()
	assert.Nil(json.Unmarshal([]byte(`{"2024-03-04":[0,2],"2024-03-05":[]}`), index))

	assert.Equal([]int{0, 2}, index.IDs("2024-03-04"))
	assert.Equal([]string{"2024-03-04"}, index.Dates())

	data, err := json.Marshal(index)
	assert.Nil(err)
	assert.JSONEq(`{"2024-03-04":[0,2]}`, string(data))

	assert.Nil(json.Unmarshal([]byte(`null`), index))
	index.Synchronize(0, []string{"2024-03-04"}, nil)
	assert.Equal([]int{0}, index.IDs("2024-03-04"))
}
