// Package bars renders ranked languages as a horizontal bar list in SVG.
//
// # Layout
//
// The canvas has a fixed width and a height derived from the number of
// entries. One line (1.5 × font size) is reserved for the title at the top and
// one for the caption at the bottom. Every entry gets one line holding a
// right-aligned label and a bar whose length is proportional to the entry's
// size relative to the first (largest) entry:
//
//	              Top languages:
//	          Go  ████████████████████████████
//	        Rust  ██████████████
//	      Python  ███████
//	Generated by toplangs
//
// The right [BarMaxWidth] units of the canvas belong to the bars; labels end
// [LabelGap] units left of the bar area.
//
// # Rendering
//
// [Compute] returns the geometry as plain values so it can be tested without
// parsing SVG. [Render] validates the [Config], computes the layout and
// writes the document in one pass; the canvas height is known before the
// first byte is written.
//
//	svg, err := bars.Render(entries, bars.DefaultConfig())
//
// Rendering is deterministic: identical entries and configuration produce
// byte-identical documents.
package bars
