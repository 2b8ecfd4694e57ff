package controller

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/pocket-calendar/pkg/calendar"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

// The views the controller can show; each is a page.
const (
	ViewMonth    = "month"
	ViewYear     = "year"
	ViewDay      = "day"
	ViewEvent    = "event"
	ViewCategory = "category"
	ViewColors   = "colors"

	pageEventForm    = "eventForm"
	pageCategoryForm = "categoryForm"
	pageGoto         = "goto"
)

// Controller mediates between the calendar and the terminal view.
type Controller struct {
	ctx      context.Context
	cal      *calendar.Calendar
	app      *tview.Application
	pages    *tview.Pages
	header   *tview.TextView
	status   *tview.TextView
	view     string
	selected calendar.Date
	// formOpen suppresses the view shortcuts while a form has focus.
	formOpen bool
	events   map[rune]KeyEvent
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller showing the month of today.
func NewController(ctx context.Context, cal *calendar.Calendar) (*Controller, error) {
	c := Controller{
		ctx:      ctx,
		cal:      cal,
		app:      tview.NewApplication(),
		pages:    tview.NewPages(),
		header:   tview.NewTextView().SetDynamicColors(true),
		status:   tview.NewTextView().SetDynamicColors(true),
		view:     ViewMonth,
		selected: cal.Today(),
	}

	c.initEvents()

	return &c, nil
}

// Go starts the app and blocks until it exits.
func (c *Controller) Go() error {
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(c.header, 2, 0, false).
		AddItem(c.pages, 0, 1, true).
		AddItem(c.status, 1, 0, false)

	c.app.SetInputCapture(c.keyboard)
	c.show(c.view)

	if err := c.app.SetRoot(layout, true).SetFocus(c.pages).Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}

	return nil
}

func (c *Controller) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if c.formOpen || evt.Key() != tcell.KeyRune {
		return evt
	}

	if k, ok := c.events[evt.Rune()]; ok {
		return k.Action(evt)
	}

	return evt
}

// show draws the given view for the selected date and switches to it.
func (c *Controller) show(view string) {
	var page tview.Primitive

	switch view {
	case ViewYear:
		page = c.yearView()
	case ViewDay:
		page = c.dayView()
	case ViewEvent:
		page = c.eventList()
	case ViewCategory:
		page = c.categoryList()
	case ViewColors:
		page = c.colorsView()
	default:
		view = ViewMonth
		page = c.monthView()
	}

	c.view = view
	c.formOpen = false

	c.pages.AddPage(view, page, true, true)
	c.pages.SwitchToPage(view)
	c.app.SetFocus(page)

	c.updateHeader()

	log.Debug().Str("view", view).Str("date", c.selected.ISO()).Msg("showing view")
}

// showForm switches to a form page; view shortcuts are off until the form closes.
func (c *Controller) showForm(name string, form *tview.Form) {
	c.formOpen = true

	c.pages.AddPage(name, form, true, true)
	c.pages.SwitchToPage(name)
	c.app.SetFocus(form)
}

// updateHeader shows the view title followed by the shortcuts, sorted by key.
func (c *Controller) updateHeader() {
	keys := make([]rune, 0, len(c.events))
	for key := range c.events {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	shortcuts := make([]string, 0, len(keys))
	for _, key := range keys {
		shortcuts = append(shortcuts, fmt.Sprintf("[orange]<%c>[white] %s", key, c.events[key].Description))
	}

	c.header.SetText(fmt.Sprintf("[yellow]%s[white]\n%s", c.title(), strings.Join(shortcuts, "  ")))
}

func (c *Controller) title() string {
	switch c.view {
	case ViewYear:
		return fmt.Sprint(c.selected.Year)
	case ViewDay:
		return fmt.Sprintf("%s, %s", c.selected.Weekday(), c.selected)
	case ViewEvent:
		return "Events"
	case ViewCategory:
		return "Categories"
	case ViewColors:
		return "Colors"
	default:
		return c.selected.Time(time.UTC).Format("January 2006")
	}
}

// setStatus shows a message in the status line.
func (c *Controller) setStatus(format string, args ...interface{}) {
	c.status.SetText(fmt.Sprintf(format, args...))
}

// setError logs err and shows it in the status line.
func (c *Controller) setError(msg string, err error) {
	log.Warn().Err(err).Msg(msg)

	c.status.SetText(fmt.Sprintf("[red]%s: %s", msg, tview.Escape(err.Error())))
}
