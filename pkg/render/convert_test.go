package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/toplangs/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestConvertInputErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := ToPNG(ctx, []byte(tinySVG), 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ToPNG(scale 0) = %v, want INVALID_INPUT", err)
	}
	if _, err := ToPDF(ctx, nil); !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("ToPDF(nil) = %v, want EMPTY_INPUT", err)
	}
}

func TestConvertMissingBinary(t *testing.T) {
	defer func(bin string) { RSVGConvert = bin }(RSVGConvert)
	RSVGConvert = "toplangs-no-such-converter"

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}
	if _, err := ToPDF(context.Background(), []byte(tinySVG)); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() = %v, want UNSUPPORTED", err)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}

	png, err := ToPNG(context.Background(), []byte(tinySVG), 1)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("ToPNG() output is not a PNG: % x", png[:min(8, len(png))])
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}

	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("ToPDF() output is not a PDF")
	}
}
