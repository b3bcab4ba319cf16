package bars

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/matzehuels/toplangs/pkg/errors"
	"github.com/matzehuels/toplangs/pkg/usage"
)

const wantTwoEntrySVG = `<svg version="1.1" baseProfile="full" xmlns="http://www.w3.org/2000/svg" width="600" height="90">
  <style>
    text { font-family: monospace; fill: #c9d1d9; font-size: 12px; }
    .LangBar { fill: #c9d1d9; }
  </style>
  <text x="0" y="18">Top languages:</text>
  <text x="130" y="36" text-anchor="end">X</text>
  <rect class="LangBar" x="150" y="24" width="450" height="12" />
  <text x="130" y="54" text-anchor="end">Y</text>
  <rect class="LangBar" x="150" y="42" width="225" height="12" />
  <text x="0" y="72" style="font-size: 8px">Generated by toplangs</text>
</svg>
`

func TestRenderDocument(t *testing.T) {
	got, err := Render([]usage.Entry{{Language: "X", Size: 100}, {Language: "Y", Size: 50}}, DefaultConfig())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if string(got) != wantTwoEntrySVG {
		t.Errorf("Render() =\n%s\nwant\n%s", got, wantTwoEntrySVG)
	}
}

func TestRenderDeterministic(t *testing.T) {
	entries := []usage.Entry{{Language: "Go", Size: 3}, {Language: "C", Size: 1}, {Language: "Lua", Size: 1}}
	cfg := DefaultConfig()
	cfg.Theme = ThemeLight

	first, err := Render(entries, cfg)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	second, err := Render(entries, cfg)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Render() is not deterministic")
	}
}

func TestRenderZeroSizes(t *testing.T) {
	got, err := Render([]usage.Entry{{Language: "X", Size: 0}, {Language: "Y", Size: 0}}, DefaultConfig())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if n := strings.Count(string(got), `width="0"`); n != 2 {
		t.Errorf("found %d zero-width bars, want 2:\n%s", n, got)
	}
	if strings.Contains(string(got), "NaN") || strings.Contains(string(got), "Inf") {
		t.Errorf("Render() leaked a non-finite number:\n%s", got)
	}
}

func TestRenderTheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = ThemeLight
	got, err := Render([]usage.Entry{{Language: "Go", Size: 1}}, cfg)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if strings.Count(string(got), ThemeLight.Foreground()) != 2 {
		t.Errorf("light foreground should appear in the text and bar rules:\n%s", got)
	}
	if strings.Contains(string(got), ThemeDark.Foreground()) {
		t.Error("dark foreground leaked into the light theme")
	}
}

func TestRenderEscapesText(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "<Top & best>"
	got, err := Render([]usage.Entry{{Language: "C<>&\"'", Size: 1}}, cfg)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var doc struct {
		XMLName xml.Name
		Texts   []string `xml:"text"`
		Rects   []struct {
			Class string `xml:"class,attr"`
		} `xml:"rect"`
	}
	if err := xml.Unmarshal(got, &doc); err != nil {
		t.Fatalf("output is not well-formed XML: %v\n%s", err, got)
	}
	if doc.XMLName.Local != "svg" {
		t.Errorf("root element = %q, want svg", doc.XMLName.Local)
	}
	if len(doc.Texts) != 3 || doc.Texts[0] != "<Top & best>" || doc.Texts[1] != "C<>&\"'" {
		t.Errorf("texts = %q", doc.Texts)
	}
	if len(doc.Rects) != 1 || doc.Rects[0].Class != "LangBar" {
		t.Errorf("rects = %+v", doc.Rects)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(nil, DefaultConfig()); !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("Render(nil) error = %v, want %s", err, errors.ErrCodeEmptyInput)
	}

	cfg := DefaultConfig()
	cfg.Width = 400
	if _, err := Render([]usage.Entry{{Language: "Go", Size: 1}}, cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Render() narrow canvas error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:     "0",
		18:    "18",
		112.5: "112.5",
		0.1:   "0.1",
		600:   "600",
	}
	for v, want := range tests {
		if got := num(v); got != want {
			t.Errorf("num(%v) = %q, want %q", v, got, want)
		}
	}
}
