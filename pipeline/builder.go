package pipeline

import (
	"log/slog"

	"glyphforge.dev/errs"
	"glyphforge.dev/font"
	"glyphforge.dev/render"
	"glyphforge.dev/shaping"
)

// Renderer abstracts render.Render so Builder can wire it in or leave it
// nil for shape-only pipelines (spec.md §4.9's "no-op if the respective
// backend was not configured").
type Renderer interface {
	Render(result shaping.Result, handle *font.Handle, faceIdentity string, cache *render.GlyphCache, opts render.Options) (*render.Output, error)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(shaping.Result, *font.Handle, string, *render.GlyphCache, render.Options) (*render.Output, error)

func (f RendererFunc) Render(result shaping.Result, handle *font.Handle, faceIdentity string, cache *render.GlyphCache, opts render.Options) (*render.Output, error) {
	return f(result, handle, faceIdentity, cache, opts)
}

// DefaultRenderer wraps the package-level render.Render function.
var DefaultRenderer Renderer = RendererFunc(render.Render)

// Exporter abstracts the export package's encoders behind a single call so
// Builder can wire in whichever format the caller selected via
// render.Options.Format.
type Exporter interface {
	Export(out *render.Output, opts render.Options) ([]byte, error)
}

// ExporterFunc adapts a plain function to Exporter.
type ExporterFunc func(*render.Output, render.Options) ([]byte, error)

func (f ExporterFunc) Export(out *render.Output, opts render.Options) ([]byte, error) {
	return f(out, opts)
}

// Builder assembles a Run function out of the default stage sequence
// (spec.md §4.9: parse, Unicode process, font select, shape, render,
// export), letting callers configure a shaping engine plus optional
// renderer and exporter, or replace any stage outright.
type Builder struct {
	shaper     shaping.Shaper
	fontCache  *font.Cache
	shapeCache *shaping.Cache
	renderer   Renderer
	exporter   Exporter
	glyphCache *render.GlyphCache
	log        *slog.Logger

	custom []Named // stages appended after the default sequence is built
}

// NewBuilder constructs a Builder around the required shaping engine and
// font instance cache. Renderer and exporter default to nil, making the
// resulting pipeline shape-only until WithRenderer/WithExporter are called.
func NewBuilder(shaper shaping.Shaper, fontCache *font.Cache) *Builder {
	return &Builder{shaper: shaper, fontCache: fontCache, log: slog.Default()}
}

// WithRenderer wires a renderer into the pipeline (spec.md §4.9).
func (b *Builder) WithRenderer(r Renderer) *Builder {
	b.renderer = r
	return b
}

// WithExporter wires an exporter into the pipeline.
func (b *Builder) WithExporter(e Exporter) *Builder {
	b.exporter = e
	return b
}

// WithShapeCache wires the shaped-run cache (spec.md §3's second cache),
// wrapping the configured Shaper in a shaping.CachingShaper so repeated
// runs against the same resolved font handle are memoized.
func (b *Builder) WithShapeCache(c *shaping.Cache) *Builder {
	b.shapeCache = c
	return b
}

// WithGlyphCache wires a shared rasterized-glyph cache (spec.md §3's third
// cache); if unset, Build constructs a 512-entry one, shared by every run of
// the Pipeline that Build returns but not by other Pipelines.
func (b *Builder) WithGlyphCache(c *render.GlyphCache) *Builder {
	b.glyphCache = c
	return b
}

// WithLogger overrides the slog.Logger used for warnings emitted while
// clamping variation coordinates during font selection.
func (b *Builder) WithLogger(log *slog.Logger) *Builder {
	b.log = log
	return b
}

// AppendStage appends an additional named stage after the default six,
// letting callers extend the pipeline (spec.md §4.9 "custom stages may be
// inserted").
func (b *Builder) AppendStage(name string, s Stage) *Builder {
	b.custom = append(b.custom, Named{Name: name, Stage: s})
	return b
}

// Pipeline is the built, runnable stage sequence.
type Pipeline struct {
	stages []Named
}

// Build assembles the default six stages plus any appended custom stages.
func (b *Builder) Build() *Pipeline {
	glyphCache := b.glyphCache
	if glyphCache == nil {
		glyphCache = render.NewGlyphCache(512)
	}
	shaper := b.shaper
	if b.shapeCache != nil {
		shaper = shaping.CachingShaper{Inner: shaper, Cache: b.shapeCache}
	}
	stages := []Named{
		timed("parse_input", parseInputStage),
		timed("unicode_process", unicodeProcessStage),
		timed("font_select", fontSelectStage(b.fontCache, b.log)),
		timed("shape", shapeStage(shaper, b.fontCache)),
		timed("render", renderStage(b.renderer, glyphCache)),
		timed("export", exportStage(b.exporter)),
	}
	stages = append(stages, b.custom...)
	return &Pipeline{stages: stages}
}

// Run executes every stage in order against ctx, stopping at the first
// stage that returns a non-nil error.
func (p *Pipeline) Run(ctx *Context) *errs.Error {
	for _, stage := range p.stages {
		if err := stage.Stage(ctx); err != nil {
			return err
		}
	}
	return nil
}
