// Package scales maps bound values to colors for calendar heatmaps.
//
// The only scale kind calendars need is a quantized one: the value
// domain is split into as many uniform buckets as there are colors, and
// values clamp to the outer buckets instead of falling off the ends.
// [DomainFromData] resolves "auto" domain bounds from the data itself.
package scales

import "github.com/jfache/nivo/pkg/calendar"

// Scaler maps a value to a color string.
type Scaler interface {
	Scale(v float64) string
}

// Func adapts a plain function to the Scaler interface.
type Func func(float64) string

// Scale implements Scaler.
func (f Func) Scale(v float64) string {
	return f(v)
}

// Quantize splits the domain [min, max] uniformly across an ordered
// color list. Values at or below min take the first color, values at or
// above max take the last.
type Quantize struct {
	min    float64
	span   float64
	colors []string
}

// NewQuantize builds a quantized scale over the given domain and colors.
// A degenerate domain (max <= min) collapses every value into the first
// bucket; an empty color list yields empty color strings. Callers
// validate their palettes upstream.
func NewQuantize(min, max float64, colors []string) *Quantize {
	span := max - min
	if span <= 0 {
		span = 1
	}
	return &Quantize{min: min, span: span, colors: colors}
}

// Scale implements Scaler.
func (q *Quantize) Scale(v float64) string {
	if len(q.colors) == 0 {
		return ""
	}
	idx := int((v - q.min) / q.span * float64(len(q.colors)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(q.colors) {
		idx = len(q.colors) - 1
	}
	return q.colors[idx]
}

// DomainFromData resolves the color domain for a data set. Explicit
// bounds win; a nil bound means "auto" and is computed from the data.
// With no data the auto bounds are zero.
func DomainFromData(data []calendar.Datum, min, max *float64) (lo, hi float64) {
	if min != nil {
		lo = *min
	} else if len(data) > 0 {
		lo = data[0].Value
		for _, d := range data[1:] {
			if d.Value < lo {
				lo = d.Value
			}
		}
	}
	if max != nil {
		hi = *max
	} else if len(data) > 0 {
		hi = data[0].Value
		for _, d := range data[1:] {
			if d.Value > hi {
				hi = d.Value
			}
		}
	}
	return lo, hi
}
