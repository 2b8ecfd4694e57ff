package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/matt-steen/pocket-calendar/pkg/calendar"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	fieldWidth      = 50
	dateFieldWidth  = 20
	colorFieldWidth = calendar.MaxColorLength
	autocompleteMax = 10
)

// EventInput holds the raw text of the event form.
type EventInput struct {
	Name       string
	CategoryID int
	Start      string
	End        string
	Location   string
	URL        string
	Notes      string
	Completed  bool
}

// Event parses the dates of the input relative to now. An empty end date means a single-day event.
func (in EventInput) Event(now time.Time) (calendar.Event, error) {
	start, err := calendar.ParseDate(in.Start, now)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("error reading start date: %w", err)
	}

	end := start
	if strings.TrimSpace(in.End) != "" {
		if end, err = calendar.ParseDate(in.End, now); err != nil {
			return calendar.Event{}, fmt.Errorf("error reading end date: %w", err)
		}
	}

	return calendar.Event{
		Name:       in.Name,
		CategoryID: in.CategoryID,
		Start:      start,
		End:        end,
		Location:   in.Location,
		URL:        in.URL,
		Notes:      in.Notes,
		Completed:  in.Completed,
	}, nil
}

// categoryOptions lists "None" followed by the category names; option i is category i-1.
func (c *Controller) categoryOptions() []string {
	options := []string{"None"}
	for _, category := range c.cal.Categories() {
		options = append(options, category.Name)
	}

	return options
}

// showEventForm opens the event form for id, or for a new event on the selected date when id < 0.
func (c *Controller) showEventForm(id int) {
	e := calendar.Event{CategoryID: calendar.NoCategory, Start: c.selected, End: c.selected}
	title := "Add New Event"

	if id >= 0 {
		var err error
		if e, err = c.cal.Event(id); err != nil {
			c.setError("error opening event", err)

			return
		}

		title = "Edit Event"
	}

	form := tview.NewForm().
		AddInputField("Name", e.Name, fieldWidth, nil, nil).
		AddDropDown("Category", c.categoryOptions(), e.CategoryID+1, nil).
		AddInputField("Starts", e.Start.ISO(), dateFieldWidth, nil, nil).
		AddInputField("Ends", e.End.ISO(), dateFieldWidth, nil, nil).
		AddInputField("Location", e.Location, fieldWidth, nil, nil).
		AddInputField("URL", e.URL, fieldWidth, nil, nil).
		AddInputField("Notes", e.Notes, fieldWidth, nil, nil).
		AddCheckbox("Completed", e.Completed, nil)

	form.SetBorder(true)
	form.SetTitle(title)

	form.AddButton("Save", func() {
		category, _ := form.GetFormItemByLabel("Category").(*tview.DropDown).GetCurrentOption()

		input := EventInput{
			Name:       inputText(form, "Name"),
			CategoryID: category - 1,
			Start:      inputText(form, "Starts"),
			End:        inputText(form, "Ends"),
			Location:   inputText(form, "Location"),
			URL:        inputText(form, "URL"),
			Notes:      inputText(form, "Notes"),
			Completed:  form.GetFormItemByLabel("Completed").(*tview.Checkbox).IsChecked(),
		}

		c.saveEvent(id, input)
	})

	if id >= 0 {
		form.AddButton("Delete", func() {
			if err := c.cal.DeleteEvent(c.ctx, id); err != nil {
				c.setError("error deleting event", err)

				return
			}

			c.setStatus("deleted event %q", tview.Escape(e.Name))
			c.show(c.view)
		})
	}

	form.AddButton("Cancel", func() { c.show(c.view) })
	form.SetCancelFunc(func() { c.show(c.view) })

	c.showForm(pageEventForm, form)
}

func (c *Controller) saveEvent(id int, input EventInput) {
	log.Debug().Int("eventID", id).Str("name", input.Name).Msg("saving event")

	e, err := input.Event(time.Now())
	if err != nil {
		c.setError("error saving event", err)

		return
	}

	if id < 0 {
		id, err = c.cal.CreateEvent(c.ctx, e)
	} else {
		err = c.cal.UpdateEvent(c.ctx, id, e)
	}

	if err != nil {
		c.setError("error saving event", err)

		return
	}

	if saved, err := c.cal.Event(id); err == nil {
		c.selected = saved.Start
	}

	c.setStatus("saved event %d", id)
	c.show(c.view)
}

// showCategoryForm opens the category form for id, or for a new category when id < 0.
func (c *Controller) showCategoryForm(id int) {
	category := calendar.Category{}
	title := "Add New Event Category"

	if id >= 0 {
		var err error
		if category, err = c.cal.Category(id); err != nil {
			c.setError("error opening category", err)

			return
		}

		title = "Edit Event Category"
	}

	form := tview.NewForm().
		AddInputField("Name", category.Name, fieldWidth, nil, nil).
		AddInputField("Color", category.Color, colorFieldWidth, nil, nil)

	form.GetFormItemByLabel("Color").(*tview.InputField).SetAutocompleteFunc(completeColor)

	form.SetBorder(true)
	form.SetTitle(title)

	form.AddButton("Save", func() {
		input := calendar.Category{
			Name:  inputText(form, "Name"),
			Color: inputText(form, "Color"),
		}

		var err error
		if id < 0 {
			_, err = c.cal.CreateCategory(c.ctx, input)
		} else {
			err = c.cal.UpdateCategory(c.ctx, id, input)
		}

		if err != nil {
			c.setError("error saving category", err)

			return
		}

		c.setStatus("saved category %q", tview.Escape(input.Name))
		c.show(ViewCategory)
	})

	if id >= 0 {
		form.AddButton("Delete", func() {
			if err := c.cal.DeleteCategory(c.ctx, id); err != nil {
				c.setError("error deleting category", err)

				return
			}

			c.setStatus("deleted category %q", tview.Escape(category.Name))
			c.show(ViewCategory)
		})
	}

	form.AddButton("Cancel", func() { c.show(c.view) })
	form.SetCancelFunc(func() { c.show(c.view) })

	c.showForm(pageCategoryForm, form)
}

// completeColor suggests color names starting with the typed text.
func completeColor(text string) []string {
	prefix := strings.ToLower(strings.ReplaceAll(text, " ", ""))
	if prefix == "" || strings.HasPrefix(prefix, "#") {
		return nil
	}

	var matches []string

	for _, name := range calendar.ColorNames() {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}

		if len(matches) == autocompleteMax {
			break
		}
	}

	return matches
}

// showGotoForm asks for a date and shows it in the current view; list views switch to the day view.
func (c *Controller) showGotoForm() {
	form := tview.NewForm().AddInputField("Date", "", fieldWidth, nil, nil)

	form.SetBorder(true)
	form.SetTitle("Go to date (YYYY-MM-DD, \"next friday\", \"in 3 days\")")

	form.AddButton("Go", func() {
		date, err := calendar.ParseDate(inputText(form, "Date"), time.Now())
		if err != nil {
			c.setError("error reading date", err)

			return
		}

		c.selected = date

		view := c.view
		if view == ViewEvent || view == ViewCategory || view == ViewColors {
			view = ViewDay
		}

		c.show(view)
	})

	form.SetCancelFunc(func() { c.show(c.view) })

	c.showForm(pageGoto, form)
}

func inputText(form *tview.Form, label string) string {
	if field, ok := form.GetFormItemByLabel(label).(*tview.InputField); ok {
		return field.GetText()
	}

	return ""
}
