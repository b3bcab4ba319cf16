package bars

import (
	"github.com/matzehuels/toplangs/pkg/errors"
	"github.com/matzehuels/toplangs/pkg/usage"
)

// Text is a positioned line of text. Y is the baseline.
type Text struct {
	X, Y  float64
	Value string
}

// Bar is the rectangle drawn for one ranked entry.
type Bar struct {
	Language   string
	Size       int64
	X, Y, W, H float64
}

// Layout is the computed geometry of a chart.
type Layout struct {
	Width, Height float64
	FontSize      float64
	Foreground    string
	Title         Text
	Labels        []Text // right-aligned at X
	Bars          []Bar
	Caption       Text
}

// Compute lays out entries, which must be ordered by size descending.
//
// Bars are scaled against the first entry. When that entry is 0 bytes every
// bar has zero width. An empty entries slice is an EMPTY_INPUT error.
func Compute(entries []usage.Entry, cfg Config) (Layout, error) {
	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}
	if len(entries) == 0 {
		return Layout{}, errors.New(errors.ErrCodeEmptyInput, "no languages to render")
	}

	lh := cfg.lineHeight()
	header := lh
	n := float64(len(entries))
	maxSize := entries[0].Size
	labelX := cfg.Width - BarMaxWidth - LabelGap
	barX := cfg.Width - BarMaxWidth

	l := Layout{
		Width:      cfg.Width,
		Height:     header + lh*(n+1) + lh,
		FontSize:   cfg.FontSize,
		Foreground: cfg.Theme.Foreground(),
		Title:      Text{X: 0, Y: header, Value: cfg.Title},
		Labels:     make([]Text, len(entries)),
		Bars:       make([]Bar, len(entries)),
		Caption:    Text{X: 0, Y: header + lh*(n+1), Value: cfg.Caption},
	}

	for i, e := range entries {
		fi := float64(i)
		l.Labels[i] = Text{
			X:     labelX,
			Y:     header + lh*(fi+1),
			Value: truncateLabel(e.Language, cfg.TextWidth, cfg.FontSize),
		}
		l.Bars[i] = Bar{
			Language: e.Language,
			Size:     e.Size,
			X:        barX,
			Y:        header + lh*fi + cfg.FontSize*barOffset,
			W:        barWidth(e.Size, maxSize),
			H:        cfg.FontSize,
		}
	}
	return l, nil
}

func barWidth(size, maxSize int64) float64 {
	if maxSize <= 0 {
		return 0
	}
	return BarMaxWidth * float64(size) / float64(maxSize)
}

// truncateLabel shortens label to fit width at the given monospace font size.
func truncateLabel(label string, width, fontSize float64) string {
	if width <= 0 {
		return label
	}
	maxChars := max(minLabelChars, int(width/(fontSize*monoCharWidth)))
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}
