// Package pipeline assembles the named stages — input parsing, Unicode
// processing, font selection, shaping, rendering, export — that turn input
// text into exported bytes (spec.md §4.9), generalizing the teacher's
// single-purpose measure/shape call chains into an explicit, inspectable
// stage sequence operating on one shared Context.
package pipeline

import (
	"time"

	"glyphforge.dev/font"
	"glyphforge.dev/render"
	"glyphforge.dev/shaping"
)

// Context is the object every stage reads from and writes to. It carries
// the request inputs plus the cumulative outputs each stage produces
// (spec.md §4.9).
type Context struct {
	// Inputs, set before Run.
	InputText     string
	FontSpec      font.Spec
	ShapeParams   shaping.Params
	RenderOptions render.Options
	SegmentOpts   shaping.SegmentOptions
	Fallback      shaping.FallbackTable

	// Cumulative outputs, populated as stages run.
	Runs          []shaping.Run
	ShapedResults []shaping.Result
	RenderOutput  *render.Output
	ExportedBytes []byte

	// FontHandle and FaceIdentity are populated by the font-selection
	// stage and consumed by shaping/rendering.
	FontHandle   *font.Handle
	FaceIdentity string

	// EffectiveHandles holds, parallel to ShapedResults, the font handle
	// that actually produced each result — FontHandle for runs the primary
	// font covered, a fallback candidate's handle otherwise (spec.md §8
	// property 5). The render stage rasterizes each result against its own
	// entry here rather than always against FontHandle.
	EffectiveHandles []*font.Handle

	// StageTimings records each stage's wall-clock duration, surfaced for
	// diagnostics even on the synchronous single-job path (mirroring
	// original_source/crates/typf-core/src/pipeline.rs, which times every
	// stage, not just the batch path).
	StageTimings map[string]time.Duration
}

// NewContext constructs a Context ready to run, given the request inputs.
func NewContext(text string, fontSpec font.Spec) *Context {
	return &Context{
		InputText:    text,
		FontSpec:     fontSpec,
		StageTimings: make(map[string]time.Duration),
	}
}
