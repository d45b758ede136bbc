package pipeline

import (
	"context"

	"glyphforge.dev/batch"
	"glyphforge.dev/font"
	"glyphforge.dev/render"
	"glyphforge.dev/shaping"
)

// Job is one batch request: text plus a font spec and the per-request
// options a single Pipeline.Run call needs beyond those (spec.md §4.8: the
// batch executor fans the same per-request pipeline out across a worker
// pool rather than reimplementing shaping/rendering itself).
type Job struct {
	Text          string
	FontSpec      font.Spec
	ShapeParams   shaping.Params
	SegmentOpts   shaping.SegmentOptions
	Fallback      shaping.FallbackTable
	RenderOptions render.Options
}

// RunBatch executes jobs across a worker pool built around p, returning one
// Context per job in original input order (spec.md §4.8 step 4) alongside
// the batch package's own per-item Result wrapper (error isolation,
// FromCache, timing). When shapeCache is non-nil (the cache p's Builder was
// configured WithShapeCache), a job whose run recorded at least one hit and
// no miss in that cache is reported FromCache.
func RunBatch(ctx context.Context, p *Pipeline, jobs []Job, shapeCache *shaping.Cache, opts batch.Options) ([]*Context, []batch.Result[*Context], error) {
	items := make([]batch.Item[*Context], len(jobs))
	for i, job := range jobs {
		job := job
		items[i] = batch.Item[*Context]{Run: func(_ context.Context) (*Context, bool, error) {
			jobCtx := NewContext(job.Text, job.FontSpec)
			jobCtx.ShapeParams = job.ShapeParams
			jobCtx.SegmentOpts = job.SegmentOpts
			jobCtx.Fallback = job.Fallback
			jobCtx.RenderOptions = job.RenderOptions

			var hitsBefore, missesBefore int64
			if shapeCache != nil {
				hitsBefore, missesBefore, _ = shapeCache.Stats()
			}
			err := p.Run(jobCtx)
			fromCache := false
			if shapeCache != nil {
				hitsAfter, missesAfter, _ := shapeCache.Stats()
				fromCache = hitsAfter > hitsBefore && missesAfter == missesBefore
			}
			if err != nil {
				return jobCtx, fromCache, err
			}
			return jobCtx, fromCache, nil
		}}
	}
	results, err := batch.Run(ctx, items, opts)
	contexts := make([]*Context, len(results))
	for i, r := range results {
		contexts[i] = r.Value
	}
	return contexts, results, err
}
