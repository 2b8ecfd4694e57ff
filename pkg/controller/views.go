package controller

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/pocket-calendar/pkg/calendar"
	"github.com/rivo/tview"
)

const yearColumns = 4

func (c *Controller) monthView() *tview.Table {
	content := &MonthContent{grid: c.cal.RenderableGrid(c.selected.Year, c.selected.Month, false)}

	table := tview.NewTable().SetBorders(true)
	table.SetContent(content)
	table.SetSelectable(true, true)
	table.SetFixed(1, 0)

	if row, col, ok := content.position(c.selected); ok {
		table.Select(row, col)
	}

	table.SetSelectionChangedFunc(func(row, col int) {
		if date, ok := table.GetCell(row, col).GetReference().(calendar.Date); ok {
			c.selected = date
		}
	})

	table.SetSelectedFunc(func(row, col int) {
		if date, ok := table.GetCell(row, col).GetReference().(calendar.Date); ok {
			c.selected = date
			c.show(ViewDay)
		}
	})

	return table
}

func (c *Controller) yearView() *tview.Grid {
	grid := tview.NewGrid().SetRows(0, 0, 0).SetColumns(0, 0, 0, 0)

	for month, monthGrid := range c.cal.RenderableYear(c.selected.Year) {
		table := tview.NewTable().SetBorders(false)
		table.SetContent(&MonthContent{grid: monthGrid})
		table.SetSelectable(false, false)
		table.SetBorder(true)
		table.SetTitle(time.Month(month + 1).String())

		if month == c.selected.Month {
			table.SetBorderColor(tcell.ColorYellow)
		}

		grid.AddItem(table, month/yearColumns, month%yearColumns, 1, 1, 0, 0, false)
	}

	return grid
}

func (c *Controller) dayView() *tview.List {
	list := tview.NewList()

	events := c.cal.EventsOn(c.selected)
	if len(events) == 0 {
		list.AddItem("No events", "press <a> to add one", 0, nil)

		return list
	}

	for _, indexed := range events {
		id := indexed.ID
		e := indexed.Event

		check := "[ ]"
		if e.Completed {
			check = "[x]"
		}

		details := fmt.Sprintf("%s - %s", e.Start, e.End)
		if category, ok := c.cal.EventCategory(e); ok {
			details = category.Name + ", " + details
		}

		if e.Location != "" {
			details += ", " + e.Location
		}

		list.AddItem(tview.Escape(check+" "+e.Name), tview.Escape(details), 0, func() {
			c.showEventForm(id)
		})
	}

	return list
}

// eventList shows every event, newest first.
func (c *Controller) eventList() *tview.Table {
	table := newListTable("id", "name", "category", "starts", "ends", "days")
	events := c.cal.Events()

	for row, id := 1, len(events)-1; id >= 0; row, id = row+1, id-1 {
		e := events[id]

		table.SetCell(row, 0, tview.NewTableCell(fmt.Sprint(id)).SetReference(id))
		table.SetCell(row, 1, tview.NewTableCell(tview.Escape(e.Name)).SetExpansion(2))

		if category, ok := c.cal.EventCategory(e); ok {
			table.SetCell(row, 2, colorCell(tview.Escape(category.Name), category.Color))
		} else {
			table.SetCell(row, 2, tview.NewTableCell("None").SetExpansion(1))
		}

		table.SetCell(row, 3, tview.NewTableCell(e.Start.String()).SetExpansion(1))
		table.SetCell(row, 4, tview.NewTableCell(e.End.String()).SetExpansion(1))
		table.SetCell(row, 5, tview.NewTableCell(fmt.Sprint(e.Days())))
	}

	table.SetSelectedFunc(func(row, col int) {
		if id, ok := table.GetCell(row, 0).GetReference().(int); ok {
			c.showEventForm(id)
		}
	})

	return table
}

// categoryList shows every category, newest first, with its color and number of events.
func (c *Controller) categoryList() *tview.Table {
	table := newListTable("id", "name", "color", "events")
	categories := c.cal.Categories()
	counts := c.cal.CategoryEventCounts()

	for row, id := 1, len(categories)-1; id >= 0; row, id = row+1, id-1 {
		category := categories[id]

		colorText := category.Color
		if name := calendar.ColorName(category.Color); name != "" {
			colorText = fmt.Sprintf("%s (%s)", category.Color, name)
		}

		table.SetCell(row, 0, tview.NewTableCell(fmt.Sprint(id)).SetReference(id))
		table.SetCell(row, 1, tview.NewTableCell(tview.Escape(category.Name)).SetExpansion(2))
		table.SetCell(row, 2, colorCell(colorText, category.Color))
		table.SetCell(row, 3, tview.NewTableCell(fmt.Sprint(counts[id])))
	}

	table.SetSelectedFunc(func(row, col int) {
		if id, ok := table.GetCell(row, 0).GetReference().(int); ok {
			c.showCategoryForm(id)
		}
	})

	return table
}

// colorsView lists the named colors usable for categories, each drawn on itself.
func (c *Controller) colorsView() *tview.Table {
	table := newListTable("name", "code", "short")

	for row, swatch := range calendar.Swatches() {
		table.SetCell(row+1, 0, colorCell(swatch.Name, swatch.Hex))
		table.SetCell(row+1, 1, colorCell(swatch.Hex, swatch.Hex))
		table.SetCell(row+1, 2, colorCell(swatch.Short, swatch.Short))
	}

	return table
}

func newListTable(headers ...string) *tview.Table {
	table := tview.NewTable().SetBorders(false)

	for col, header := range headers {
		table.SetCell(0, col, tview.NewTableCell(header).SetExpansion(1).
			SetTextColor(tcell.ColorYellow).SetSelectable(false))
	}

	table.SetSelectable(true, false)
	table.SetFixed(1, 0)

	return table
}

// colorCell draws text on the category color with contrasting text.
func colorCell(text, hex string) *tview.TableCell {
	textColor := tcell.ColorWhite
	if calendar.IsLight(hex) {
		textColor = tcell.ColorBlack
	}

	return tview.NewTableCell(text).SetExpansion(1).
		SetBackgroundColor(tcell.GetColor(calendar.ExpandHex(hex))).
		SetTextColor(textColor)
}
