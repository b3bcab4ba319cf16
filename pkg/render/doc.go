// Package render turns ranked language usage into images.
//
// # Overview
//
// The [bars] subpackage lays out the ranked languages as a horizontal bar
// list and writes it as a self-contained SVG document:
//
//	cfg := bars.DefaultConfig()
//	svg, err := bars.Render(entries, cfg)
//
// # Format Conversion
//
// [ToPNG] and [ToPDF] convert any SVG to raster or print formats with the
// external rsvg-convert tool (from librsvg). They are only used by the local
// output mode; publishing always commits the SVG itself.
//
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [bars]: github.com/matzehuels/toplangs/pkg/render/bars
package render
