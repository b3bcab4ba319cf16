package bars

import (
	"math"
	"testing"

	"github.com/matzehuels/toplangs/pkg/errors"
	"github.com/matzehuels/toplangs/pkg/usage"
)

func TestComputeGeometry(t *testing.T) {
	cfg := DefaultConfig()
	entries := []usage.Entry{{Language: "Go", Size: 400}, {Language: "Rust", Size: 100}, {Language: "C", Size: 0}}

	l, err := Compute(entries, cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	// font size 12 -> line height 18, one header line
	if l.Width != 600 || l.Height != 18+18*4+18 {
		t.Errorf("canvas = %gx%g, want 600x108", l.Width, l.Height)
	}
	if l.Title.Y != 18 || l.Caption.Y != 18+18*4 {
		t.Errorf("title y = %g, caption y = %g", l.Title.Y, l.Caption.Y)
	}

	wantLabelY := []float64{36, 54, 72}
	wantBarY := []float64{24, 42, 60}
	wantBarW := []float64{450, 112.5, 0}
	for i := range entries {
		if l.Labels[i].X != 130 || l.Labels[i].Y != wantLabelY[i] {
			t.Errorf("label %d at (%g, %g), want (130, %g)", i, l.Labels[i].X, l.Labels[i].Y, wantLabelY[i])
		}
		b := l.Bars[i]
		if b.X != 150 || b.Y != wantBarY[i] || b.W != wantBarW[i] || b.H != 12 {
			t.Errorf("bar %d = %+v, want x=150 y=%g w=%g h=12", i, b, wantBarY[i], wantBarW[i])
		}
	}
}

func TestComputeProportional(t *testing.T) {
	l, err := Compute([]usage.Entry{{Language: "X", Size: 100}, {Language: "Y", Size: 50}}, DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if l.Bars[1].W*2 != l.Bars[0].W {
		t.Errorf("bar widths %g and %g are not 2:1", l.Bars[0].W, l.Bars[1].W)
	}
	if l.Bars[0].W != BarMaxWidth {
		t.Errorf("largest bar = %g, want %g", l.Bars[0].W, BarMaxWidth)
	}
}

func TestComputeAllZero(t *testing.T) {
	l, err := Compute([]usage.Entry{{Language: "X", Size: 0}, {Language: "Y", Size: 0}}, DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	for i, b := range l.Bars {
		if b.W != 0 {
			t.Errorf("bar %d width = %g, want 0", i, b.W)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	for _, entries := range [][]usage.Entry{nil, {}} {
		_, err := Compute(entries, DefaultConfig())
		if !errors.Is(err, errors.ErrCodeEmptyInput) {
			t.Errorf("Compute(%v) error = %v, want %s", entries, err, errors.ErrCodeEmptyInput)
		}
	}
}

func TestComputeInvalidConfig(t *testing.T) {
	entries := []usage.Entry{{Language: "Go", Size: 1}}
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"width equals inset", func(c *Config) { c.Width = BarMaxWidth + LabelGap }},
		{"width too small", func(c *Config) { c.Width = 100 }},
		{"zero font", func(c *Config) { c.FontSize = 0 }},
		{"negative font", func(c *Config) { c.FontSize = -2 }},
		{"negative text width", func(c *Config) { c.TextWidth = -1 }},
		{"negative top", func(c *Config) { c.TopN = -1 }},
		{"unknown theme", func(c *Config) { c.Theme = Theme(7) }},
		{"NaN width", func(c *Config) { c.Width = math.NaN() }},
		{"infinite width", func(c *Config) { c.Width = math.Inf(1) }},
		{"NaN font", func(c *Config) { c.FontSize = math.NaN() }},
		{"infinite font", func(c *Config) { c.FontSize = math.Inf(1) }},
		{"NaN text width", func(c *Config) { c.TextWidth = math.NaN() }},
		{"infinite text width", func(c *Config) { c.TextWidth = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := Compute(entries, cfg)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Compute() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestComputeInvalidConfigBeforeEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FontSize = 0
	_, err := Compute(nil, cfg)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Compute() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label    string
		width    float64
		fontSize float64
		want     string
	}{
		{"Go", 150, 12, "Go"},
		{"ABCDEFGHIJKLMNOPQRSTUVWXYZ", 150, 12, "ABCDEFGHIJKLMNOPQR.."},
		{"ABCDEFGHIJKLMNOPQRSTUVWXYZ", 0, 12, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		{"Jupyter Notebook", 1, 12, "J.."},
		{"Ñandú Script", 36, 10, "Ñand.."},
	}

	for _, tt := range tests {
		if got := truncateLabel(tt.label, tt.width, tt.fontSize); got != tt.want {
			t.Errorf("truncateLabel(%q, %g, %g) = %q, want %q", tt.label, tt.width, tt.fontSize, got, tt.want)
		}
	}
}
