package bars

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/toplangs/pkg/usage"
)

// Render writes entries as an SVG bar chart.
// See [Compute] for the errors it can return.
func Render(entries []usage.Entry, cfg Config) ([]byte, error) {
	l, err := Compute(entries, cfg)
	if err != nil {
		return nil, err
	}
	return RenderLayout(l), nil
}

// RenderLayout serializes an already computed layout.
func RenderLayout(l Layout) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg version="1.1" baseProfile="full" xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`+"\n",
		num(l.Width), num(l.Height))

	renderStyle(&buf, l)
	fmt.Fprintf(&buf, "  <text x=\"%s\" y=\"%s\">%s</text>\n", num(l.Title.X), num(l.Title.Y), escapeXML(l.Title.Value))

	for i, b := range l.Bars {
		lbl := l.Labels[i]
		fmt.Fprintf(&buf, "  <text x=\"%s\" y=\"%s\" text-anchor=\"end\">%s</text>\n",
			num(lbl.X), num(lbl.Y), escapeXML(lbl.Value))
		fmt.Fprintf(&buf, "  <rect class=\"LangBar\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" />\n",
			num(b.X), num(b.Y), num(b.W), num(b.H))
	}

	fmt.Fprintf(&buf, "  <text x=\"%s\" y=\"%s\" style=\"font-size: %spx\">%s</text>\n",
		num(l.Caption.X), num(l.Caption.Y), num(CaptionFontSize), escapeXML(l.Caption.Value))
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderStyle(buf *bytes.Buffer, l Layout) {
	buf.WriteString("  <style>\n")
	fmt.Fprintf(buf, "    text { font-family: monospace; fill: %s; font-size: %spx; }\n", l.Foreground, num(l.FontSize))
	fmt.Fprintf(buf, "    .LangBar { fill: %s; }\n", l.Foreground)
	buf.WriteString("  </style>\n")
}

// num formats v with the fewest digits that represent it exactly.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
