package controller

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/pocket-calendar/pkg/calendar"
	"github.com/rivo/tview"
)

// MonthContent implements tview.TableContent over a month grid. Row 0 holds the weekday names.
type MonthContent struct {
	tview.TableContentReadOnly
	grid *calendar.MonthGrid
}

// GetCell returns the cell at the given position or nil if no cell.
func (m *MonthContent) GetCell(row, col int) *tview.TableCell {
	if col < 0 || col > 6 || row < 0 || row > len(m.grid.Weeks) {
		return nil
	}

	if row == 0 {
		weekday := m.grid.Weekdays()[col].String()

		name := weekday[:3]
		if m.grid.Small {
			name = weekday[:1]
		}

		return tview.NewTableCell(name).SetAlign(tview.AlignCenter).SetExpansion(1).
			SetTextColor(tcell.ColorYellow).SetSelectable(false)
	}

	cell := m.grid.Weeks[row-1][col]

	text := fmt.Sprint(cell.Date.Day)
	if cell.EventCount == 1 {
		text += " (1 event)"
	} else if cell.EventCount > 1 {
		text += fmt.Sprintf(" (%d events)", cell.EventCount)
	}

	color := tcell.ColorWhite
	if cell.Segment != calendar.ThisMonth {
		color = tcell.ColorGray
	}

	if cell.Today {
		color = tcell.ColorYellow
	}

	return tview.NewTableCell(text).SetAlign(tview.AlignCenter).SetExpansion(1).
		SetTextColor(color).SetReference(cell.Date)
}

// GetRowCount returns the number of rows in the table.
func (m *MonthContent) GetRowCount() int {
	return len(m.grid.Weeks) + 1
}

// GetColumnCount returns the number of columns in the table.
func (m *MonthContent) GetColumnCount() int {
	return 7
}

// position returns the table row and column showing date, preferring the cell of the grid's own month.
func (m *MonthContent) position(date calendar.Date) (int, int, bool) {
	found := false
	row, col := 0, 0

	for r, week := range m.grid.Weeks {
		for c, cell := range week {
			if cell.Date != date {
				continue
			}

			if cell.Segment == calendar.ThisMonth {
				return r + 1, c, true
			}

			found = true
			row, col = r+1, c
		}
	}

	return row, col, found
}
