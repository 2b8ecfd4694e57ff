package calendar

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Categories returns a copy of all categories; a category's identifier is its index.
func (c *Calendar) Categories() []Category {
	categories := make([]Category, len(c.categories))
	copy(categories, c.categories)

	return categories
}

// Category returns the category with the given identifier.
func (c *Calendar) Category(id int) (Category, error) {
	if id < 0 || id >= len(c.categories) {
		return Category{}, fmt.Errorf("%w: category %d", ErrNotFound, id)
	}

	return c.categories[id], nil
}

// EventCategory returns the category of e, if it has one.
func (c *Calendar) EventCategory(e Event) (Category, bool) {
	category, err := c.Category(e.CategoryID)

	return category, err == nil
}

// CreateCategory validates cat, appends it and returns the new identifier.
func (c *Calendar) CreateCategory(ctx context.Context, cat Category) (int, error) {
	cat, err := prepareCategory(cat)
	if err != nil {
		return -1, err
	}

	id := len(c.categories)
	c.categories = append(c.categories, cat)

	log.Debug().Int("categoryID", id).Str("name", cat.Name).Str("color", cat.Color).Msg("created category")

	if err := c.save(ctx, KeyCategories); err != nil {
		return id, err
	}

	return id, nil
}

// UpdateCategory replaces the category with the given identifier.
func (c *Calendar) UpdateCategory(ctx context.Context, id int, cat Category) error {
	if _, err := c.Category(id); err != nil {
		return err
	}

	cat, err := prepareCategory(cat)
	if err != nil {
		return err
	}

	c.categories[id] = cat

	log.Debug().Int("categoryID", id).Str("name", cat.Name).Str("color", cat.Color).Msg("updated category")

	return c.save(ctx, KeyCategories)
}

// DeleteCategory removes the category with the given identifier. Its events fall back to
// NoCategory and events in later categories follow them down one position.
func (c *Calendar) DeleteCategory(ctx context.Context, id int) error {
	old, err := c.Category(id)
	if err != nil {
		return err
	}

	c.categories = append(c.categories[:id], c.categories[id+1:]...)

	for eventID := range c.events {
		e := &c.events[eventID]

		switch {
		case e.CategoryID == id:
			log.Debug().Int("eventID", eventID).Int("categoryID", id).Msg("clearing category")

			e.CategoryID = NoCategory
		case e.CategoryID > id:
			e.CategoryID--
		}
	}

	log.Debug().Int("categoryID", id).Str("name", old.Name).Msg("deleted category")

	return c.save(ctx, KeyCategories, KeyEvents)
}

// CategoryEventCounts returns the number of events per category identifier, NoCategory included.
func (c *Calendar) CategoryEventCounts() map[int]int {
	counts := map[int]int{}

	for _, e := range c.events {
		counts[e.CategoryID]++
	}

	return counts
}

func prepareCategory(cat Category) (Category, error) {
	cat.Name = truncate(strings.TrimSpace(cat.Name), MaxLength)
	if cat.Name == "" {
		return cat, fmt.Errorf("%w: category name is empty", ErrValidation)
	}

	color, err := ResolveColor(cat.Color)
	if err != nil {
		return cat, err
	}

	cat.Color = color

	return cat, nil
}
