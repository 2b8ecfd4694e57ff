package calendar

import (
	"fmt"
	"image/color"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// lumaThreshold is the Rec. 709 luma above which a background needs dark text.
const lumaThreshold = 128.0 / 255.0

var (
	hexPattern      = regexp.MustCompile(`(?i)^#([0-9a-f]{3}|[0-9a-f]{6})$`)
	shortHexPattern = regexp.MustCompile(`(?i)^#([0-9a-f])([0-9a-f])([0-9a-f])$`)

	hexNamesOnce sync.Once
	hexNames     map[string]string
	sortedNames  []string
)

// ResolveColor turns user input into a lower-case hex color. It accepts a named color, case
// insensitive and ignoring spaces ("Light goldenrod yellow"), or a #rgb / #rrggbb literal.
func ResolveColor(input string) (string, error) {
	input = truncate(strings.TrimSpace(input), MaxColorLength)

	name := strings.ToLower(strings.ReplaceAll(input, " ", ""))
	if c, ok := colornames.Map[name]; ok {
		return hexOf(c), nil
	}

	if !hexPattern.MatchString(input) {
		return "", fmt.Errorf("%w: unrecognized color %q", ErrValidation, input)
	}

	return strings.ToLower(input), nil
}

// ExpandHex expands a #rgb color to #rrggbb; other input is returned unchanged.
func ExpandHex(hex string) string {
	return shortHexPattern.ReplaceAllString(hex, "#$1$1$2$2$3$3")
}

// ShortenHex returns the nearest #rgb code for a #rrggbb color.
func ShortenHex(hex string) string {
	c, err := colorful.Hex(ExpandHex(hex))
	if err != nil {
		return hex
	}

	r, g, b := c.RGB255()

	return fmt.Sprintf("#%x%x%x", nearestNibble(r), nearestNibble(g), nearestNibble(b))
}

// each short digit d stands for d*17 (0x00, 0x11, ... 0xff)
func nearestNibble(v uint8) int {
	return (int(v) + 8) / 17
}

// IsLight reports whether text drawn on hex should be dark. Unparseable colors count as dark.
func IsLight(hex string) bool {
	c, err := colorful.Hex(ExpandHex(hex))
	if err != nil {
		return false
	}

	return 0.2126*c.R+0.7152*c.G+0.0722*c.B > lumaThreshold
}

// ColorName returns the alphabetically first color name for hex, or "" when the color has no name.
func ColorName(hex string) string {
	loadHexNames()

	return hexNames[strings.ToLower(ExpandHex(hex))]
}

// ColorNames returns all recognized color names in alphabetical order.
func ColorNames() []string {
	loadHexNames()

	names := make([]string, len(sortedNames))
	copy(names, sortedNames)

	return names
}

// Swatch is one row of the color reference table.
type Swatch struct {
	Name  string
	Hex   string
	Short string
}

// Swatches lists every named color with its hex code and nearest short code, by name.
func Swatches() []Swatch {
	names := ColorNames()
	swatches := make([]Swatch, len(names))

	for i, name := range names {
		hex := hexOf(colornames.Map[name])
		swatches[i] = Swatch{Name: name, Hex: hex, Short: ShortenHex(hex)}
	}

	return swatches
}

func loadHexNames() {
	hexNamesOnce.Do(func() {
		sortedNames = make([]string, 0, len(colornames.Map))
		for name := range colornames.Map {
			sortedNames = append(sortedNames, name)
		}

		sort.Strings(sortedNames)

		hexNames = make(map[string]string, len(sortedNames))

		for _, name := range sortedNames {
			hex := hexOf(colornames.Map[name])
			if _, ok := hexNames[hex]; !ok {
				hexNames[hex] = name
			}
		}
	})
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
