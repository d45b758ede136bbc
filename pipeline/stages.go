package pipeline

import (
	"log/slog"
	"strings"
	"time"

	"glyphforge.dev/errs"
	"glyphforge.dev/font"
	"glyphforge.dev/render"
	"glyphforge.dev/shaping"
)

// Stage transforms a Context, returning nil on success or an *errs.Error
// that short-circuits the remaining stages (spec.md §4.9).
type Stage func(ctx *Context) *errs.Error

// Named pairs a stage with the name its timing is recorded under.
type Named struct {
	Name  string
	Stage Stage
}

// timed wraps a stage so its wall-clock duration lands in
// ctx.StageTimings regardless of success or failure.
func timed(name string, s Stage) Named {
	return Named{Name: name, Stage: func(ctx *Context) *errs.Error {
		start := time.Now()
		err := s(ctx)
		ctx.StageTimings[name] = time.Since(start)
		return err
	}}
}

// parseInputStage is a no-op placeholder for input normalization (trimming
// control characters, validating UTF-8); text arrives already a valid Go
// string, so there is nothing to reject by default. Callers needing custom
// validation inject their own stage here instead.
func parseInputStage(ctx *Context) *errs.Error {
	return nil
}

// unicodeProcessStage segments ctx.InputText into runs using the
// configured SegmentOptions (spec.md §4.9 "runs segmented").
func unicodeProcessStage(ctx *Context) *errs.Error {
	ctx.Runs = shaping.Segment(ctx.InputText, ctx.SegmentOpts)
	return nil
}

// fontSelectStage resolves ctx.FontSpec through cache into a loaded
// font.Handle (spec.md §4.9 "font resolved"). A font path with a ".."
// component is rejected as a configuration error before any file access.
func fontSelectStage(cache *font.Cache, log *slog.Logger) Stage {
	return func(ctx *Context) *errs.Error {
		if err := ctx.FontSpec.Validate(); err != nil {
			return errs.Wrap(errs.ConfigurationError, "invalid font specification", err)
		}
		isSep := func(r rune) bool { return r == '/' || r == '\\' }
		for _, part := range strings.FieldsFunc(ctx.FontSpec.Source.Path, isSep) {
			if part == ".." {
				return errs.New(errs.ConfigurationError, "font path contains a \"..\" component")
			}
		}
		handle, err := cache.Resolve(ctx.FontSpec.Source)
		if err != nil {
			return errs.Wrap(errs.FontNotFound, "resolving font", err)
		}
		ctx.FontHandle = handle
		ctx.FaceIdentity = ctx.FontSpec.Source.String()
		if len(ctx.FontSpec.Variations) > 0 {
			clamped := font.ClampVariations(handle, ctx.FontSpec.Variations, log)
			ctx.ShapeParams.Variations = clamped
		}
		return nil
	}
}

// shapeStage shapes every segmented run against the resolved font (spec.md
// §4.9 "runs shaped"), using ShapeWithFallback so script-keyed fallback
// candidates are tried automatically against fonts resolved through the
// same instance cache font selection used. It records, alongside each
// result, the handle that actually produced it, since a run fallback
// covers was shaped against a different face than ctx.FontHandle.
func shapeStage(shaper shaping.Shaper, fontCache *font.Cache) Stage {
	return func(ctx *Context) *errs.Error {
		if ctx.FontHandle == nil {
			return errs.New(errs.ConfigurationError, "shape stage ran before font selection")
		}
		params := ctx.ShapeParams
		if params.SizePx == 0 {
			params.SizePx = ctx.FontSpec.SizePx
		}
		results := make([]shaping.Result, 0, len(ctx.Runs))
		handles := make([]*font.Handle, 0, len(ctx.Runs))
		for _, run := range ctx.Runs {
			result, handle, err := shaping.ShapeWithFallback(shaper, fontCache, run, ctx.FontHandle, params, ctx.Fallback)
			if err != nil {
				return errs.Wrap(errs.ShapeFailure, "shaping run", err)
			}
			results = append(results, result)
			handles = append(handles, handle)
		}
		ctx.ShapedResults = results
		ctx.EffectiveHandles = handles
		return nil
	}
}

// renderStage renders every shaped result (spec.md §4.9 "output
// rendered"), one run at a time against the handle that actually shaped it
// (ctx.EffectiveHandles), then composites the per-run canvases into a
// single output via compositeRuns so a line split into several runs (a
// script or bidi-level transition) keeps every run instead of silently
// dropping all but the first. It is a no-op if renderer is nil, per
// spec.md's "rendering ... stage[s] are no-ops if the respective backend
// was not configured".
func renderStage(renderer Renderer, glyphCache *render.GlyphCache) Stage {
	return func(ctx *Context) *errs.Error {
		if renderer == nil || len(ctx.ShapedResults) == 0 {
			return nil
		}
		outputs := make([]*render.Output, len(ctx.ShapedResults))
		for i, result := range ctx.ShapedResults {
			handle := ctx.FontHandle
			faceIdentity := ctx.FaceIdentity
			if i < len(ctx.EffectiveHandles) && ctx.EffectiveHandles[i] != nil && ctx.EffectiveHandles[i] != ctx.FontHandle {
				handle = ctx.EffectiveHandles[i]
				faceIdentity = handle.Source.String()
			}
			out, err := renderer.Render(result, handle, faceIdentity, glyphCache, ctx.RenderOptions)
			if err != nil {
				return errs.Wrap(errs.RenderFailure, "rendering", err)
			}
			outputs[i] = out
		}
		ctx.RenderOutput = compositeRuns(outputs, ctx.RenderOptions)
		return nil
	}
}

// exportStage encodes the rendered canvas (spec.md §4.9 "output
// exported"); a no-op if exporter is nil or nothing was rendered.
func exportStage(exporter Exporter) Stage {
	return func(ctx *Context) *errs.Error {
		if exporter == nil || ctx.RenderOutput == nil {
			return nil
		}
		data, err := exporter.Export(ctx.RenderOutput, ctx.RenderOptions)
		if err != nil {
			return errs.Wrap(errs.ExportFailure, "exporting", err)
		}
		ctx.ExportedBytes = data
		return nil
	}
}
