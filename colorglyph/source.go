package colorglyph

// SourceKind names one representation a color glyph might be stored as.
type SourceKind int

const (
	SourceCOLRv1 SourceKind = iota
	SourceCOLRv0
	SourceSVG
	SourceBitmapStrike
	SourceMonochromeOutline
)

// preferenceOrder is the glyph-source preference list spec.md §4.4
// mandates: the first successful render wins.
var preferenceOrder = []SourceKind{
	SourceCOLRv1,
	SourceCOLRv0,
	SourceSVG,
	SourceBitmapStrike,
	SourceMonochromeOutline,
}

// Available reports, for each source a glyph might offer, whether it is
// present; callers populate one bool per SourceKind in preference order.
type Available struct {
	COLRv1, COLRv0, SVG, BitmapStrike bool
}

// Choose picks the highest-preference available source, defaulting to the
// monochrome outline (always assumed available) when nothing else is.
func Choose(avail Available) SourceKind {
	for _, kind := range preferenceOrder {
		switch kind {
		case SourceCOLRv1:
			if avail.COLRv1 {
				return kind
			}
		case SourceCOLRv0:
			if avail.COLRv0 {
				return kind
			}
		case SourceSVG:
			if avail.SVG {
				return kind
			}
		case SourceBitmapStrike:
			if avail.BitmapStrike {
				return kind
			}
		case SourceMonochromeOutline:
			return kind
		}
	}
	return SourceMonochromeOutline
}
