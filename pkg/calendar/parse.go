package calendar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	parserOnce sync.Once
	parser     *when.Parser
)

// ParseDate reads a date typed by the user, either YYYY-MM-DD or a phrase such as "next friday" or
// "in 3 days" relative to base.
func ParseDate(text string, base time.Time) (Date, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Date{}, fmt.Errorf("%w: empty date", ErrValidation)
	}

	if d, err := ParseISO(text); err == nil {
		return d, nil
	}

	parserOnce.Do(func() {
		parser = when.New(nil)
		parser.Add(en.All...)
		parser.Add(common.All...)
	})

	result, err := parser.Parse(text, base)
	if err != nil {
		return Date{}, fmt.Errorf("error parsing date %q: %w", text, err)
	}

	if result == nil {
		return Date{}, fmt.Errorf("%w: no date found in %q", ErrValidation, text)
	}

	return Today(result.Time), nil
}
