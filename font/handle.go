package font

import (
	"bytes"
	"fmt"
	"sync"

	textfont "github.com/go-text/typesetting/font"
	"golang.org/x/exp/mmap"
)

// maxFontFileBytes caps the size of a font file this module will
// memory-map, guarding against denial-of-service via oversized fonts
// (spec.md §4.6, §8 error kind FontTooLarge).
const maxFontFileBytes = 50 << 20 // 50 MiB

// bytesOwner is a reference-counted handle on a font's backing bytes,
// whether they came from a memory-mapped file or an in-memory buffer. Every
// parsed face view or native handle derived from those bytes holds a clone
// of this handle, so the bytes cannot be released while a derived object
// still lives (spec.md §3 "Ownership rule", §9).
type bytesOwner struct {
	mu     sync.Mutex
	refs   int
	data   []byte
	reader *mmap.ReaderAt // non-nil when backed by a memory-mapped file
}

func newBytesOwnerFromMemory(data []byte) *bytesOwner {
	return &bytesOwner{refs: 1, data: data}
}

func newBytesOwnerFromFile(path string) (*bytesOwner, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("font: mmap open %s: %w", path, err)
	}
	if n := r.Len(); n > maxFontFileBytes {
		r.Close()
		return nil, fmt.Errorf("font: %s is %d bytes, exceeds the %d byte cap", path, n, maxFontFileBytes)
	}
	buf := make([]byte, r.Len())
	if _, err := r.ReadAt(buf, 0); err != nil {
		r.Close()
		return nil, fmt.Errorf("font: reading mmap of %s: %w", path, err)
	}
	return &bytesOwner{refs: 1, data: buf, reader: r}, nil
}

// clone increments the reference count and returns the same owner, mirroring
// the shared-ownership clone a native platform handle would take.
func (b *bytesOwner) clone() *bytesOwner {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refs++
	return b
}

// release decrements the reference count, closing the underlying mapping
// once the last reference drops.
func (b *bytesOwner) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refs--
	if b.refs > 0 {
		return
	}
	if b.reader != nil {
		b.reader.Close()
		b.reader = nil
	}
}

// fontMagic lists the recognized header byte sequences for OpenType,
// TrueType, TrueType collection, WOFF, and WOFF2 files (spec.md §6).
var fontMagic = [][]byte{
	{0x00, 0x01, 0x00, 0x00},
	[]byte("OTTO"),
	[]byte("true"),
	[]byte("ttcf"),
	[]byte("wOFF"),
	[]byte("wOF2"),
}

func hasKnownMagic(data []byte) bool {
	for _, m := range fontMagic {
		if bytes.HasPrefix(data, m) {
			return true
		}
	}
	return false
}

// Metrics holds the derived, size-independent metrics cached alongside a
// parsed face: units-per-em and the three vertical metrics used to size a
// canvas and place a baseline (spec.md §3, §4.7).
type Metrics struct {
	UnitsPerEm int
	Ascender   int
	Descender  int
	LineGap    int
}

// Handle is the concrete loaded font: the mapped byte range, a face index,
// a parsed face view borrowing those bytes, and cached derived metrics.
// Bytes outlive the face view by construction: Handle holds the bytesOwner
// clone that the Face itself borrows from.
type Handle struct {
	owner     *bytesOwner
	faceIndex int
	Face      textfont.Face
	Metrics   Metrics

	// Source is the resolvable reference this Handle was loaded from,
	// recorded so a shaping.Result can report which font (primary or a
	// fallback candidate) actually produced it (spec.md §8 property 5).
	Source Source
}

// Load parses a font from spec's source, memory-mapping file-backed sources
// and wrapping in-memory ones directly. The returned Handle owns a
// reference on the backing bytes for as long as it lives; call Release when
// done with it.
func Load(src Source) (*Handle, error) {
	var owner *bytesOwner
	var err error
	switch {
	case len(src.Bytes) > 0:
		owner = newBytesOwnerFromMemory(src.Bytes)
	case src.Path != "":
		owner, err = newBytesOwnerFromFile(src.Path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("font: source %v has no loadable bytes (family resolution is an external collaborator)", src)
	}
	if !hasKnownMagic(owner.data) {
		owner.release()
		return nil, fmt.Errorf("font: %s does not start with a recognized OpenType/TrueType/WOFF magic", src)
	}
	face, err := textfont.ParseTTF(bytes.NewReader(owner.data))
	if err != nil {
		owner.release()
		return nil, fmt.Errorf("font: parsing %s: %w", src, err)
	}
	h := &Handle{
		owner:     owner,
		faceIndex: src.FaceIndex,
		Face:      face,
		Metrics:   metricsOf(face),
		Source:    src,
	}
	return h, nil
}

func metricsOf(face textfont.Face) Metrics {
	upem := face.Upem()
	asc, desc, lineGap := face.LineMetrics()
	return Metrics{
		UnitsPerEm: int(upem),
		Ascender:   int(asc),
		Descender:  int(desc),
		LineGap:    int(lineGap),
	}
}

// Clone returns a new Handle sharing the same backing bytes, incrementing
// the owner's reference count. Used when a native handle factory needs its
// own clone of the byte ownership alongside a face it derives (spec.md §9).
func (h *Handle) Clone() *Handle {
	return &Handle{
		owner:     h.owner.clone(),
		faceIndex: h.faceIndex,
		Face:      h.Face,
		Metrics:   h.Metrics,
		Source:    h.Source,
	}
}

// Release drops this Handle's reference on the backing bytes. Once every
// clone has been released, the memory mapping (if any) is closed.
func (h *Handle) Release() {
	h.owner.release()
}

// ScaleToPixels converts a value in font units to pixels at the given
// pixels-per-em.
func (m Metrics) ScaleToPixels(unitsValue int, ppem float64) float64 {
	if m.UnitsPerEm == 0 {
		return 0
	}
	return float64(unitsValue) * ppem / float64(m.UnitsPerEm)
}
