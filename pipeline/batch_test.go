package pipeline

import (
	"context"
	"testing"

	"glyphforge.dev/batch"
	"glyphforge.dev/font"
)

func TestRunBatchPreservesOrderAndIsolatesErrors(t *testing.T) {
	fontCache := font.NewCache(4, nil)
	builder := NewBuilder(&stubShaper{}, fontCache)
	p := builder.Build()

	jobs := []Job{
		{Text: "one", FontSpec: font.Spec{SizePx: 12, Source: font.Source{Family: "missing-a"}}},
		{Text: "two", FontSpec: font.Spec{SizePx: 12, Source: font.Source{Family: "missing-b"}}},
		{Text: "three", FontSpec: font.Spec{SizePx: 12, Source: font.Source{Family: "missing-c"}}},
	}

	contexts, results, err := RunBatch(context.Background(), p, jobs, nil, batch.Options{})
	if err != nil {
		t.Fatalf("RunBatch itself should not fail when individual jobs fail: %v", err)
	}
	if len(results) != 3 || len(contexts) != 3 {
		t.Fatalf("expected 3 results and contexts, got %d/%d", len(results), len(contexts))
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("expected result %d to carry index %d, got %d", i, i, r.Index)
		}
		if r.Err == nil {
			t.Fatalf("expected job %d to fail (unresolvable family source)", i)
		}
		if contexts[i].InputText != jobs[i].Text {
			t.Fatalf("expected context %d to carry job text %q, got %q", i, jobs[i].Text, contexts[i].InputText)
		}
	}
}
