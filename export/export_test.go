package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func sampleImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{G: 255, A: 128})
	return img
}

func TestEncodeRawMatchesDimensions(t *testing.T) {
	img := sampleImage()
	raw := EncodeRaw(img)
	if len(raw) != 3*2*4 {
		t.Fatalf("expected %d bytes, got %d", 3*2*4, len(raw))
	}
}

func TestEncodePNGRoundTrips(t *testing.T) {
	img := sampleImage()
	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode produced PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 3 || decoded.Bounds().Dy() != 2 {
		t.Fatalf("unexpected decoded dimensions: %v", decoded.Bounds())
	}
}

func TestEncodePNMVariants(t *testing.T) {
	img := sampleImage()
	for _, v := range []PNMVariant{PNMBitmap, PNMGraymap, PNMPixmap} {
		out := EncodePNM(img, v)
		if len(out) == 0 {
			t.Fatalf("expected non-empty output for variant %v", v)
		}
		header := string(out[:2])
		switch v {
		case PNMBitmap:
			if header != "P1" {
				t.Fatalf("expected P1 header, got %q", header)
			}
		case PNMGraymap:
			if header != "P2" {
				t.Fatalf("expected P2 header, got %q", header)
			}
		case PNMPixmap:
			if header != "P3" {
				t.Fatalf("expected P3 header, got %q", header)
			}
		}
	}
}

func TestEncodeSVGEmbedsPNG(t *testing.T) {
	img := sampleImage()
	out, err := EncodeSVG(img, 96)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "data:image/png;base64,") {
		t.Fatalf("expected an svg document embedding a base64 PNG, got %q", s)
	}
}

func TestMetricsEncoderJSONAndJSONL(t *testing.T) {
	var buf bytes.Buffer
	enc := NewMetricsEncoder(&buf)
	m := Metrics{Width: 10, Height: 20, GlyphCount: 3}
	if err := enc.WriteJSON(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"Width": 10`) {
		t.Fatalf("expected pretty JSON output, got %q", buf.String())
	}

	buf.Reset()
	if err := enc.WriteJSONL(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatal("expected JSONL line to end with a newline")
	}
	if strings.Contains(buf.String(), "\n  ") {
		t.Fatal("expected JSONL output to be compact, not pretty-printed")
	}
}
