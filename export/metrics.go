package export

import (
	"encoding/json"
	"io"
	"time"

	"glyphforge.dev/errs"
)

// Metrics is the JSON-serializable summary of one render job, independent
// of pixel data — canvas dimensions, glyph count, and per-stage timing.
type Metrics struct {
	Width, Height int
	Baseline      int
	GlyphCount    int
	AdvanceWidth  float64
	FromCache     bool
	StageTimings  map[string]time.Duration `json:"stage_timings,omitempty"`
}

// MetricsEncoder writes Metrics values as either a single JSON document or
// as streaming JSON Lines, mirroring the batch/streaming modes
// original_source/typf-cli/src/jsonl.rs implements for job results
// (spec.md §7's "batch and streaming modes" language).
type MetricsEncoder struct {
	w io.Writer
}

// NewMetricsEncoder wraps w.
func NewMetricsEncoder(w io.Writer) *MetricsEncoder {
	return &MetricsEncoder{w: w}
}

// WriteJSON writes m as a single pretty-printed JSON object.
func (e *MetricsEncoder) WriteJSON(m Metrics) error {
	enc := json.NewEncoder(e.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return errs.Wrap(errs.ExportFailure, "encoding metrics JSON", err)
	}
	return nil
}

// WriteJSONL writes m as one compact JSON object followed by a newline,
// suitable for appending to a streaming batch-results file.
func (e *MetricsEncoder) WriteJSONL(m Metrics) error {
	data, err := json.Marshal(m)
	if err != nil {
		return errs.Wrap(errs.ExportFailure, "encoding metrics JSONL", err)
	}
	if _, err := e.w.Write(append(data, '\n')); err != nil {
		return errs.Wrap(errs.ExportFailure, "writing metrics JSONL", err)
	}
	return nil
}
