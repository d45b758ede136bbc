package shaping

import (
	"unicode/utf8"

	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	gtshaping "github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"glyphforge.dev/errs"
	"glyphforge.dev/fixedmath"
	"glyphforge.dev/font"
)

// Params bundles the per-run shaping parameters of spec.md §4.5 that are not
// carried by the Run itself: size, feature flags, and variation coordinates.
// Direction, language and script are read from the Run.
type Params struct {
	SizePx      float64
	Variations  map[font.Tag]float64
	Features    map[font.Tag]bool
}

// Shaper converts a Run, shaped against a font Handle, into a Result. Three
// implementations satisfy spec.md §4.5: a native OS shaper (sketched only,
// out of scope per spec.md §1), the library-based OpenTypeShaper below, and
// FallbackShaper for environments without either.
type Shaper interface {
	Shape(run Run, handle *font.Handle, params Params) (Result, error)
}

// OpenTypeShaper shapes text by applying a font's GSUB/GPOS tables via
// go-text/typesetting, the same pure-Go shaping engine gioui-gio wraps in
// text/gotext.go. Unlike gio's shaperImpl, which is line-wrapping-aware and
// stateful across a whole paragraph, this type is stateless per call: the
// spec's Shaper operates one Run at a time, with segmentation (§4.5) as an
// explicit separate stage.
type OpenTypeShaper struct {
	engine gtshaping.HarfbuzzShaper
}

// NewOpenTypeShaper constructs a ready-to-use OpenTypeShaper.
func NewOpenTypeShaper() *OpenTypeShaper {
	return &OpenTypeShaper{}
}

func (s *OpenTypeShaper) Shape(run Run, handle *font.Handle, params Params) (Result, error) {
	if run.Text == "" {
		return Result{ResolvedDir: run.Direction}, nil
	}
	runes := []rune(run.Text)
	ppem := fixedmath.FromFloat(params.SizePx)

	input := gtshaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(run.Direction),
		Face:      handle.Face,
		Size:      fixed.Int26_6(ppem),
		Script:    scriptFromTag(run.Script),
		Language:  language.NewLanguage(run.Language),
	}
	for tag, enabled := range params.Features {
		input.FontFeatures = append(input.FontFeatures, gtshaping.FontFeature{
			Tag:   stringToGtTag(tag),
			Value: boolToFeatureValue(enabled),
		})
	}
	if len(params.Variations) > 0 {
		applyVariations(handle, params.Variations)
	}

	out := s.engine.Shape(input)
	return toResult(run, runes, out, handle, params.SizePx)
}

// runeToByteOffsets maps each rune index in runes (plus one past-the-end
// entry) to its byte offset within run.Text, so go-text/typesetting's
// rune-indexed ClusterIndex can be translated into the byte-offset clusters
// spec.md §3 requires ("every byte in a multi-byte character maps to the
// same cluster").
func runeToByteOffsets(runes []rune) []int {
	offsets := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		offsets[i] = off
		off += utf8.RuneLen(r)
	}
	offsets[len(runes)] = off
	return offsets
}

// mapDirection converts this package's Direction into go-text/typesetting's
// di.Direction, the same mapping gioui-gio/text/gotext.go performs.
func mapDirection(d Direction) di.Direction {
	switch d {
	case RTL:
		return di.DirectionRTL
	case TTB:
		return di.DirectionTTB
	case BTT:
		return di.DirectionBTT
	default:
		return di.DirectionLTR
	}
}

func scriptFromTag(iso15924 string) language.Script {
	if iso15924 == "" {
		return language.Unknown
	}
	return language.Script(iso15924)
}

func stringToGtTag(t font.Tag) gtshaping.Tag {
	return gtshaping.NewTag(t[0], t[1], t[2], t[3])
}

func boolToFeatureValue(enabled bool) uint32 {
	if enabled {
		return 1
	}
	return 0
}

// applyVariations pushes a clamped variation-coordinate map onto the face
// if it implements the variable-font interface. Out-of-range or unknown
// tags were already filtered by font.ClampVariations by the time Shape
// reaches this point; callers that skip clamping get whatever the
// underlying face does with raw values.
func applyVariations(handle *font.Handle, vars map[font.Tag]float64) {
	variable, ok := handle.Face.(interface {
		SetVariations(map[[4]byte]float32)
	})
	if !ok {
		return
	}
	coords := make(map[[4]byte]float32, len(vars))
	for tag, v := range vars {
		coords[[4]byte(tag)] = float32(v)
	}
	variable.SetVariations(coords)
}

func toResult(run Run, runes []rune, out gtshaping.Output, handle *font.Handle, sizePx float64) (Result, error) {
	glyphCount := handle.Face.GlyphCount()
	byteOffsets := runeToByteOffsets(runes)
	glyphs := make([]PositionedGlyph, len(out.Glyphs))
	var advance fixedmath.Int26_6
	var bounds fixedmath.Rectangle26_6
	first := true
	for i, g := range out.Glyphs {
		runeIdx := int(g.ClusterIndex)
		if runeIdx < 0 {
			runeIdx = 0
		} else if runeIdx >= len(byteOffsets) {
			runeIdx = len(byteOffsets) - 1
		}
		pg := PositionedGlyph{
			GID:      clampGID(uint32(g.GlyphID), glyphCount),
			Cluster:  run.ByteStart + byteOffsets[runeIdx],
			XOffset:  g.XOffset,
			YOffset:  g.YOffset,
			XAdvance: g.XAdvance,
		}
		glyphs[i] = pg
		advance += pg.XAdvance
		gb := fixedmath.Rectangle26_6{
			Min: fixedmath.Point26_6{X: advance - pg.XAdvance + pg.XOffset, Y: pg.YOffset - g.YBearing},
			Max: fixedmath.Point26_6{X: advance - pg.XAdvance + pg.XOffset + g.Width, Y: pg.YOffset - g.YBearing + g.Height},
		}
		if first {
			bounds = gb
			first = false
		} else {
			bounds = unionRect(bounds, gb)
		}
	}
	return Result{
		Text:          run.Text,
		Glyphs:        glyphs,
		AdvanceWidth:  advance,
		EffectiveFont: font.Spec{SizePx: sizePx, Source: handle.Source},
		ResolvedDir:   run.Direction,
		Bounds:        bounds,
	}, nil
}

func unionRect(a, b fixedmath.Rectangle26_6) fixedmath.Rectangle26_6 {
	if b.Min.X < a.Min.X {
		a.Min.X = b.Min.X
	}
	if b.Min.Y < a.Min.Y {
		a.Min.Y = b.Min.Y
	}
	if b.Max.X > a.Max.X {
		a.Max.X = b.Max.X
	}
	if b.Max.Y > a.Max.Y {
		a.Max.Y = b.Max.Y
	}
	return a
}

// FallbackShaper produces one glyph per character using the font's
// character-to-glyph mapping and advance-width table, with no contextual
// shaping (ligatures, kerning). It exists for environments that have
// neither a native OS shaper nor the OpenType engine available (spec.md
// §4.5).
type FallbackShaper struct{}

func (FallbackShaper) Shape(run Run, handle *font.Handle, params Params) (Result, error) {
	if run.Text == "" {
		return Result{ResolvedDir: run.Direction}, nil
	}
	cmap, ok := handle.Face.(interface {
		NominalGlyph(rune) (gotext.GID, bool)
		HorizontalAdvance(gotext.GID) float32
	})
	if !ok {
		return Result{}, errs.New(errs.ShapeFailure, "font face does not expose a fallback cmap/hmtx interface")
	}
	ppem := params.SizePx
	upem := float64(handle.Metrics.UnitsPerEm)
	scale := ppem / maxFloat(upem, 1)

	var glyphs []PositionedGlyph
	var advance fixedmath.Int26_6
	byteOff := 0
	for _, r := range run.Text {
		gid, found := cmap.NominalGlyph(r)
		id := GlyphID(0)
		var adv float32
		if found {
			id = GlyphID(gid)
			adv = cmap.HorizontalAdvance(gid)
		}
		a := fixedmath.FromFloat(float64(adv) * scale)
		glyphs = append(glyphs, PositionedGlyph{
			GID:      id,
			Cluster:  run.ByteStart + byteOff,
			XAdvance: a,
		})
		advance += a
		byteOff += len(string(r))
	}
	return Result{
		Text:          run.Text,
		Glyphs:        glyphs,
		AdvanceWidth:  advance,
		EffectiveFont: font.Spec{SizePx: ppem, Source: handle.Source},
		ResolvedDir:   run.Direction,
	}, nil
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
