package colorglyph

import (
	"bytes"
	"compress/gzip"
	"image/color"
	"testing"
)

func TestDecompressSVGDocumentPlainPassthrough(t *testing.T) {
	doc := []byte("<svg></svg>")
	out, err := DecompressSVGDocument(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, doc) {
		t.Fatalf("expected passthrough for uncompressed doc, got %q", out)
	}
}

func TestDecompressSVGDocumentGzipped(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write([]byte("<svg>hi</svg>"))
	w.Close()

	out, err := DecompressSVGDocument(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "<svg>hi</svg>" {
		t.Fatalf("unexpected decompressed content: %q", out)
	}
}

func TestSubstitutePaletteColors(t *testing.T) {
	doc := []byte(`<path fill="var(--color0, #000)"/>`)
	palette := []color.NRGBA{{R: 255, G: 0, B: 0, A: 255}}
	out := SubstitutePaletteColors(doc, palette)
	if string(out) != `<path fill="#ff0000"/>` {
		t.Fatalf("unexpected substitution: %q", out)
	}
}

func TestSubstitutePaletteColorsFallsBackOutOfRange(t *testing.T) {
	doc := []byte(`var(--color5, #abcdef)`)
	out := SubstitutePaletteColors(doc, nil)
	if string(out) != "#abcdef" {
		t.Fatalf("expected fallback color text, got %q", out)
	}
}
