package bars

import (
	"math"

	"github.com/matzehuels/toplangs/pkg/errors"
	"github.com/matzehuels/toplangs/pkg/usage"
)

const (
	// BarMaxWidth is the length of the bar for the largest entry.
	BarMaxWidth = 450.0
	// LabelGap is the space between the end of a label and the bar area.
	LabelGap = 20.0
	// CaptionFontSize is the font size of the trailing caption line.
	CaptionFontSize = 8.0

	lineSpacing   = 1.5  // line height as a multiple of the font size
	barOffset     = 0.5  // bar top below the previous baseline, in font sizes
	monoCharWidth = 0.6  // monospace advance width as a fraction of font size
	minLabelChars = 3
)

// Default values used by [DefaultConfig].
const (
	DefaultWidth     = 600.0
	DefaultFontSize  = 12.0
	DefaultTopN      = 5
	DefaultTextWidth = 150.0
	DefaultTitle     = "Top languages:"
	DefaultCaption   = "Generated by toplangs"
)

// DefaultIgnored lists the languages hidden unless configured otherwise.
var DefaultIgnored = []string{"HTML"}

// Config holds the presentation parameters of one render call.
type Config struct {
	Width     float64   // canvas width
	FontSize  float64   // label and title font size
	TopN      int       // number of languages to rank
	Ignore    usage.Set // languages left out of the ranking
	TextWidth float64   // label column width used for truncation; 0 disables it
	Theme     Theme
	Title     string
	Caption   string
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Width:     DefaultWidth,
		FontSize:  DefaultFontSize,
		TopN:      DefaultTopN,
		Ignore:    usage.NewSet(DefaultIgnored...),
		TextWidth: DefaultTextWidth,
		Theme:     ThemeDark,
		Title:     DefaultTitle,
		Caption:   DefaultCaption,
	}
}

// Validate rejects geometrically inconsistent configurations.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"width", c.Width}, {"font size", c.FontSize}, {"text width", c.TextWidth}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a finite number, got %g", f.name, f.v)
		}
	}
	if c.Width <= BarMaxWidth+LabelGap {
		return errors.New(errors.ErrCodeInvalidConfig,
			"width %g leaves no room for labels (must be greater than %g)", c.Width, BarMaxWidth+LabelGap)
	}
	if c.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font size must be positive, got %g", c.FontSize)
	}
	if c.TextWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "text width cannot be negative, got %g", c.TextWidth)
	}
	if c.TopN < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "top language count cannot be negative, got %d", c.TopN)
	}
	if !c.Theme.valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown theme %d", int(c.Theme))
	}
	return nil
}

// Rank selects the entries this configuration renders from u.
func (c Config) Rank(u usage.Usage) []usage.Entry {
	return usage.Rank(u, c.TopN, c.Ignore)
}

func (c Config) lineHeight() float64 { return c.FontSize * lineSpacing }
