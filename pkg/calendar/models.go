package calendar

const (
	// MaxLength is the maximum length of every free-text field; longer input is truncated.
	MaxLength = 255
	// MaxColorLength bounds the raw color input, which may be a spaced name like "light goldenrod yellow".
	MaxColorLength = 22
	// NoCategory marks an event that belongs to no category.
	NoCategory = -1
)

// Event is a calendar entry spanning one or more whole days. Its identifier is its position in the
// event list.
type Event struct {
	Name       string
	CategoryID int
	Start      Date
	End        Date
	Location   string
	URL        string
	Notes      string
	Completed  bool
}

// Days returns the number of calendar days the event occupies.
func (e Event) Days() int {
	return len(ListEventDates(e))
}

// Category groups events under a name and display color. Its identifier is its position in the
// category list.
type Category struct {
	Name string `json:"name"`
	// Color is a lower-case hex color, either #rgb or #rrggbb.
	Color string `json:"color"`
}

// IndexedEvent pairs an event with its current identifier.
type IndexedEvent struct {
	ID    int
	Event Event
}
