package shaping

import (
	"github.com/go-text/typesetting/language"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/bidi"
)

// SegmentOptions controls which segmentation passes Segment performs
// (spec.md §4.5 "Segmentation").
type SegmentOptions struct {
	// ResolveBidi splits runs on bidi level changes.
	ResolveBidi bool
	// ItemizeScript splits runs so each contains a single script.
	ItemizeScript bool
	// InsertWordBoundaries further splits runs at word boundaries, which
	// per-run font fallback needs in order to substitute a fallback font
	// for only the word that needs it.
	InsertWordBoundaries bool
	// BaseDirection is used for bidi resolution when paragraph direction
	// cannot be inferred (no strong characters in the text).
	BaseDirection Direction
}

// Segment splits text into a sequence of Runs. Splitting on hard line
// breaks (LF, CR) always happens; the other passes are controlled by opts.
// Segment is idempotent: feeding its own output back in (one run at a
// time) returns the same runs unchanged, because each pass only ever
// subdivides an already-uniform run into finer uniform runs, and a run
// that is already uniform along every active axis has nothing left to
// split (spec.md §4.5, §8 property 10).
func Segment(text string, opts SegmentOptions) []Run {
	var runs []Run
	for _, para := range splitHardBreaks(text) {
		runs = append(runs, segmentParagraph(para, opts)...)
	}
	return runs
}

type paragraph struct {
	text  string
	start int // byte offset within the original text
}

// splitHardBreaks splits on line feed and carriage return, keeping the
// break character attached to the end of the preceding paragraph so byte
// ranges stay contiguous and reversible.
func splitHardBreaks(text string) []paragraph {
	var out []paragraph
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n', '\r':
			out = append(out, paragraph{text: text[start : i+1], start: start})
			start = i + 1
		}
	}
	if start < len(text) || len(out) == 0 {
		out = append(out, paragraph{text: text[start:], start: start})
	}
	return out
}

func segmentParagraph(p paragraph, opts SegmentOptions) []Run {
	base := Run{
		Text:      p.text,
		ByteStart: p.start,
		ByteEnd:   p.start + len(p.text),
		Direction: opts.BaseDirection,
	}
	runs := []Run{base}
	if opts.ResolveBidi {
		runs = splitByBidi(runs, opts.BaseDirection)
	}
	if opts.ItemizeScript {
		runs = splitByScript(runs)
	}
	if opts.InsertWordBoundaries {
		runs = splitByWord(runs)
	}
	return runs
}

func splitByBidi(in []Run, base Direction) []Run {
	var out []Run
	for _, run := range in {
		if run.Text == "" {
			out = append(out, run)
			continue
		}
		var par bidi.Paragraph
		dir := bidi.LeftToRight
		if base == RTL {
			dir = bidi.RightToLeft
		}
		par.SetString(run.Text, bidi.DefaultDirection(dir))
		ordering, err := par.Order()
		if err != nil {
			out = append(out, run)
			continue
		}
		for i := 0; i < ordering.NumRuns(); i++ {
			r := ordering.Run(i)
			start, end := r.Pos()
			sub := run
			sub.Text = run.Text[start:end]
			sub.ByteStart = run.ByteStart + start
			sub.ByteEnd = run.ByteStart + end
			if r.Direction() == bidi.RightToLeft {
				sub.Direction = RTL
			} else {
				sub.Direction = LTR
			}
			out = append(out, sub)
		}
	}
	return out
}

func splitByScript(in []Run) []Run {
	var out []Run
	for _, run := range in {
		text := run.Text
		if text == "" {
			out = append(out, run)
			continue
		}
		runes := []rune(text)
		// Map rune index back to byte offset as we walk.
		byteOff := make([]int, len(runes)+1)
		off := 0
		for i, r := range runes {
			byteOff[i] = off
			off += len(string(r))
		}
		byteOff[len(runes)] = off

		segStart := 0
		current := language.LookupScript(runes[0])
		for i := 1; i < len(runes); i++ {
			s := language.LookupScript(runes[i])
			if s == language.Common || s == current {
				continue
			}
			out = append(out, sliceRun(run, byteOff, segStart, i))
			segStart = i
			current = s
		}
		out = append(out, sliceRun(run, byteOff, segStart, len(runes)))
	}
	return out
}

func sliceRun(run Run, byteOff []int, from, to int) Run {
	sub := run
	sub.Text = run.Text[byteOff[from]:byteOff[to]]
	sub.ByteStart = run.ByteStart + byteOff[from]
	sub.ByteEnd = run.ByteStart + byteOff[to]
	return sub
}

// splitByWord further subdivides each run at word boundaries using
// rivo/uniseg's word segmentation, so font fallback can be attempted
// word-by-word rather than for the whole (possibly script-uniform but
// coverage-mixed) run.
func splitByWord(in []Run) []Run {
	var out []Run
	for _, run := range in {
		text := run.Text
		if text == "" {
			out = append(out, run)
			continue
		}
		state := -1
		offset := 0
		for len(text) > 0 {
			word, rest, newState := uniseg.FirstWordInString(text, state)
			state = newState
			sub := run
			sub.Text = word
			sub.ByteStart = run.ByteStart + offset
			sub.ByteEnd = sub.ByteStart + len(word)
			out = append(out, sub)
			offset += len(word)
			text = rest
		}
	}
	return out
}
