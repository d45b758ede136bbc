package shaping

import "testing"

func joinedText(runs []Run) string {
	var out string
	for _, r := range runs {
		out += r.Text
	}
	return out
}

func TestSplitHardBreaksPreservesBytes(t *testing.T) {
	text := "hello\nworld\r\nagain"
	paras := splitHardBreaks(text)
	var rebuilt string
	for _, p := range paras {
		rebuilt += p.text
	}
	if rebuilt != text {
		t.Fatalf("paragraphs don't reassemble: got %q want %q", rebuilt, text)
	}
	for _, p := range paras {
		if text[p.start:p.start+len(p.text)] != p.text {
			t.Fatalf("paragraph %+v has wrong start offset", p)
		}
	}
}

func TestSegmentReassemblesOriginalText(t *testing.T) {
	text := "Hello мир! مرحبا\nنص"
	runs := Segment(text, SegmentOptions{ResolveBidi: true, ItemizeScript: true})
	if got := joinedText(runs); got != text {
		t.Fatalf("segmented runs don't reassemble: got %q want %q", got, text)
	}
	for _, r := range runs {
		if text[r.ByteStart:r.ByteEnd] != r.Text {
			t.Fatalf("run byte range mismatch: %+v", r)
		}
	}
}

func TestSegmentIdempotent(t *testing.T) {
	text := "café naïve Москва"
	opts := SegmentOptions{ResolveBidi: true, ItemizeScript: true, InsertWordBoundaries: true}
	first := Segment(text, opts)
	var second []Run
	for _, r := range first {
		second = append(second, Segment(r.Text, opts)...)
	}
	if len(first) != len(second) {
		t.Fatalf("re-segmenting changed run count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Fatalf("re-segmenting changed run %d text: %q vs %q", i, first[i].Text, second[i].Text)
		}
	}
}

func TestSplitByScriptSeparatesScripts(t *testing.T) {
	runs := splitByScript([]Run{{Text: "abcМир", ByteEnd: len("abcМир")}})
	if len(runs) < 2 {
		t.Fatalf("expected at least 2 runs for mixed-script text, got %d", len(runs))
	}
	if got := joinedText(runs); got != "abcМир" {
		t.Fatalf("script split lost text: got %q", got)
	}
}

func TestSplitByWordCoversAllBytes(t *testing.T) {
	run := Run{Text: "hello world", ByteEnd: len("hello world")}
	runs := splitByWord([]Run{run})
	if got := joinedText(runs); got != run.Text {
		t.Fatalf("word split lost text: got %q want %q", got, run.Text)
	}
}
