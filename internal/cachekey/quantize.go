// Package cachekey quantizes the floating-point values that would otherwise
// leak into cache keys (sizes, variation coordinates), so that
// bit-identical-but-float-comparison-unequal requests still share an entry
// (spec.md §9 "Cache keys over floats").
package cachekey

import (
	"sort"
	"strconv"
	"strings"
)

// precision is the scale factor applied before truncating to an integer.
const precision = 1000

// Quantize converts a floating-point value into a stable integer suitable
// for use inside a map key.
func Quantize(v float64) int64 {
	return int64(v * precision)
}

// QuantizeVariations renders a variation-coordinate map into a stable,
// sorted string key: unordered map iteration would otherwise make two
// equivalent requests hash to different cache keys.
func QuantizeVariations(vars map[[4]byte]float64) string {
	if len(vars) == 0 {
		return ""
	}
	tags := make([]string, 0, len(vars))
	for tag := range vars {
		tags = append(tags, string(tag[:]))
	}
	sort.Strings(tags)
	var b strings.Builder
	for i, tag := range tags {
		if i > 0 {
			b.WriteByte(',')
		}
		var t [4]byte
		copy(t[:], tag)
		b.WriteString(tag)
		b.WriteByte('=')
		b.WriteString(strconv.FormatInt(Quantize(vars[t]), 10))
	}
	return b.String()
}
