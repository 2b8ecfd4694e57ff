package calendar

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

// DateIndex maps ISO dates to the identifiers of the events occupying them. It is derived from the
// event list and never decides whether an event exists.
type DateIndex struct {
	dates map[string][]int
}

// NewDateIndex returns an empty index.
func NewDateIndex() *DateIndex {
	return &DateIndex{dates: map[string][]int{}}
}

// ListEventDates returns every ISO date from the event's start to its end, inclusive. The result
// always holds at least the start date.
func ListEventDates(e Event) []string {
	start := e.Start.Normalize()
	end := e.End.Normalize()
	dates := []string{start.ISO()}

	for offset := 1; ; offset++ {
		date := start.AddDays(offset)
		if end.Before(date) {
			break
		}

		dates = append(dates, date.ISO())
	}

	return dates
}

// Synchronize moves id from the dates only in oldDates to the dates only in newDates. Missing
// removals and duplicate adds are logged and skipped: the index already has the wanted state.
func (x *DateIndex) Synchronize(id int, newDates, oldDates []string) {
	for _, date := range difference(oldDates, newDates) {
		ids, ok := x.dates[date]
		if !ok {
			log.Warn().Int("eventID", id).Str("date", date).Msg("date not found in index")

			continue
		}

		pos := indexOf(ids, id)
		if pos == -1 {
			log.Warn().Int("eventID", id).Str("date", date).Msg("event not found for date")

			continue
		}

		log.Debug().Int("eventID", id).Str("date", date).Msg("removing event from date")

		ids = append(ids[:pos], ids[pos+1:]...)
		if len(ids) == 0 {
			delete(x.dates, date)
		} else {
			x.dates[date] = ids
		}
	}

	for _, date := range difference(newDates, oldDates) {
		if indexOf(x.dates[date], id) != -1 {
			log.Warn().Int("eventID", id).Str("date", date).Msg("event already indexed for date")

			continue
		}

		log.Debug().Int("eventID", id).Str("date", date).Msg("adding event to date")

		x.dates[date] = append(x.dates[date], id)
	}
}

// RenumberAfterDelete decrements every identifier greater than deleted. The deleted event's own
// entries must already have been removed.
func (x *DateIndex) RenumberAfterDelete(deleted int) {
	for date, ids := range x.dates {
		for i, id := range ids {
			if id > deleted {
				ids[i] = id - 1
			}
		}

		x.dates[date] = ids
	}
}

// IDs returns a copy of the identifiers indexed under date.
func (x *DateIndex) IDs(date string) []int {
	ids := make([]int, len(x.dates[date]))
	copy(ids, x.dates[date])

	return ids
}

// EventCount returns the number of events indexed under date.
func (x *DateIndex) EventCount(date string) int {
	return len(x.dates[date])
}

// Dates returns the indexed dates in ascending order.
func (x *DateIndex) Dates() []string {
	dates := make([]string, 0, len(x.dates))
	for date := range x.dates {
		dates = append(dates, date)
	}

	sort.Strings(dates)

	return dates
}

// Rebuild discards the index and derives it again from events.
func (x *DateIndex) Rebuild(events []Event) {
	x.dates = map[string][]int{}

	for id, e := range events {
		x.Synchronize(id, ListEventDates(e), nil)
	}
}

// Check verifies that every date of every event holds that event's identifier exactly once and that
// nothing else is indexed.
func (x *DateIndex) Check(events []Event) error {
	want := map[string]map[int]bool{}

	for id, e := range events {
		for _, date := range ListEventDates(e) {
			if want[date] == nil {
				want[date] = map[int]bool{}
			}

			want[date][id] = true
		}
	}

	for date, ids := range x.dates {
		seen := map[int]bool{}

		for _, id := range ids {
			switch {
			case seen[id]:
				return fmt.Errorf("%w: event %d listed twice on %s", ErrIndexInconsistency, id, date)
			case !want[date][id]:
				return fmt.Errorf("%w: event %d does not occupy %s", ErrIndexInconsistency, id, date)
			}

			seen[id] = true
		}

		if len(seen) != len(want[date]) {
			return fmt.Errorf("%w: %s is missing events", ErrIndexInconsistency, date)
		}
	}

	for date := range want {
		if _, ok := x.dates[date]; !ok {
			return fmt.Errorf("%w: %s is not indexed", ErrIndexInconsistency, date)
		}
	}

	return nil
}

// MarshalJSON encodes the index as an object of ISO date to identifier list.
func (x *DateIndex) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.dates)
}

// UnmarshalJSON replaces the index with the decoded object. Empty lists are dropped.
func (x *DateIndex) UnmarshalJSON(data []byte) error {
	dates := map[string][]int{}
	if err := json.Unmarshal(data, &dates); err != nil {
		return err
	}

	if dates == nil {
		dates = map[string][]int{}
	}

	for date, ids := range dates {
		if len(ids) == 0 {
			delete(dates, date)
		}
	}

	x.dates = dates

	return nil
}

// difference returns the values of a missing from b, in a's order.
func difference(a, b []string) []string {
	exclude := make(map[string]bool, len(b))
	for _, s := range b {
		exclude[s] = true
	}

	var out []string

	for _, s := range a {
		if !exclude[s] {
			out = append(out, s)
		}
	}

	return out
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}

	return -1
}
