package bars

import (
	"strings"

	"github.com/matzehuels/toplangs/pkg/errors"
)

// Theme selects the foreground color of the chart.
type Theme int

const (
	// ThemeDark draws light text and bars for dark page backgrounds.
	ThemeDark Theme = iota
	// ThemeLight draws dark text and bars for light page backgrounds.
	ThemeLight
)

// Themes lists the supported theme names.
var Themes = []string{ThemeLight.String(), ThemeDark.String()}

// ParseTheme parses "light" or "dark" (case-insensitive).
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid theme %q (must be 'light' or 'dark')", s)
}

func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	}
	return "unknown"
}

// Foreground returns the fill color used for text and bars.
func (t Theme) Foreground() string {
	switch t {
	case ThemeLight:
		return "#24292f"
	case ThemeDark:
		return "#c9d1d9"
	}
	panic("bars: unknown theme " + t.String())
}

func (t Theme) valid() bool {
	return t == ThemeLight || t == ThemeDark
}
