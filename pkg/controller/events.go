package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

func (c *Controller) initEvents() {
	c.events = map[rune]KeyEvent{}

	c.initShowEvents(c.events)
	c.initNavEvents(c.events)
	c.initNewEvents(c.events)
	c.initExitEvent(c.events)
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		log.Info().Msg("terminating application")

		c.app.Stop()

		return nil
	}
}

func (c *Controller) initExitEvent(events map[rune]KeyEvent) {
	events['q'] = KeyEvent{
		Description: "Exit",
		Action:      c.getExitAction(),
	}
}

func (c *Controller) getShowAction(view string) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.show(view)

		return nil
	}
}

func (c *Controller) initShowEvents(events map[rune]KeyEvent) {
	events['m'] = KeyEvent{
		Description: "Month",
		Action:      c.getShowAction(ViewMonth),
	}

	events['y'] = KeyEvent{
		Description: "Year",
		Action:      c.getShowAction(ViewYear),
	}

	events['d'] = KeyEvent{
		Description: "Day",
		Action:      c.getShowAction(ViewDay),
	}

	events['e'] = KeyEvent{
		Description: "Events",
		Action:      c.getShowAction(ViewEvent),
	}

	events['c'] = KeyEvent{
		Description: "Categories",
		Action:      c.getShowAction(ViewCategory),
	}

	events['C'] = KeyEvent{
		Description: "Colors",
		Action:      c.getShowAction(ViewColors),
	}
}

// getStepAction moves the selected date by one unit of the current view: a day, a month or a year.
func (c *Controller) getStepAction(step int) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		switch c.view {
		case ViewDay:
			c.selected = c.selected.AddDays(step)
		case ViewYear:
			c.selected = c.selected.AddMonths(12 * step)
		case ViewMonth:
			c.selected = c.selected.AddMonths(step)
		default:
			return key
		}

		c.show(c.view)

		return nil
	}
}

func (c *Controller) initNavEvents(events map[rune]KeyEvent) {
	events['n'] = KeyEvent{
		Description: "Next",
		Action:      c.getStepAction(1),
	}

	events['p'] = KeyEvent{
		Description: "Previous",
		Action:      c.getStepAction(-1),
	}

	events['t'] = KeyEvent{
		Description: "Today",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.selected = c.cal.Today()
			c.show(c.view)

			return nil
		},
	}

	events['g'] = KeyEvent{
		Description: "Go to date",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showGotoForm()

			return nil
		},
	}
}

func (c *Controller) initNewEvents(events map[rune]KeyEvent) {
	events['a'] = KeyEvent{
		Description: "Add event",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showEventForm(-1)

			return nil
		},
	}

	events['A'] = KeyEvent{
		Description: "Add category",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showCategoryForm(-1)

			return nil
		},
	}
}
