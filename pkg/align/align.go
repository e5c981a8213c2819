// Package align provides rectangle alignment within a containing frame.
//
// Alignment is expressed as one of nine anchors (corners, edge midpoints,
// center). [Align] computes the translation that positions an inner box
// inside an outer box at the requested anchor. The calendar layout uses
// this to place the computed year grid inside the chart frame.
package align

import "fmt"

// Box is an axis-aligned rectangle.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Anchor identifies one of the nine standard alignment positions.
type Anchor int

// Alignment anchors, row by row from the top-left corner.
const (
	TopLeft Anchor = iota
	Top
	TopRight
	Left
	Center
	Right
	BottomLeft
	Bottom
	BottomRight
)

// anchorNames maps anchors to their canonical string form.
var anchorNames = map[Anchor]string{
	TopLeft:     "top-left",
	Top:         "top",
	TopRight:    "top-right",
	Left:        "left",
	Center:      "center",
	Right:       "right",
	BottomLeft:  "bottom-left",
	Bottom:      "bottom",
	BottomRight: "bottom-right",
}

// String returns the canonical name of the anchor.
func (a Anchor) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// Valid reports whether a is one of the nine defined anchors.
func (a Anchor) Valid() bool {
	_, ok := anchorNames[a]
	return ok
}

// ParseAnchor converts a canonical anchor name to an Anchor.
// It is used when alignment arrives from a chart document or CLI flag.
func ParseAnchor(s string) (Anchor, error) {
	for a, name := range anchorNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("invalid alignment: %q (must be one of: top-left, top, top-right, left, center, right, bottom-left, bottom, bottom-right)", s)
}

// fractions returns the horizontal and vertical share of the free space
// placed before the inner box for the anchor. TopLeft is (0,0), Center is
// (0.5,0.5), BottomRight is (1,1).
func (a Anchor) fractions() (fx, fy float64) {
	switch a {
	case TopLeft:
		return 0, 0
	case Top:
		return 0.5, 0
	case TopRight:
		return 1, 0
	case Left:
		return 0, 0.5
	case Center:
		return 0.5, 0.5
	case Right:
		return 1, 0.5
	case BottomLeft:
		return 0, 1
	case Bottom:
		return 0.5, 1
	case BottomRight:
		return 1, 1
	}
	return 0, 0
}

// Align computes the translation (dx, dy) that positions inner within
// outer at the given anchor. Applying the translation to inner's origin
// yields its aligned position; the boxes themselves are not modified.
//
// If inner is larger than outer along an axis the free space is negative
// and the inner box overflows symmetrically for centered anchors.
func Align(inner, outer Box, a Anchor) (dx, dy float64) {
	fx, fy := a.fractions()
	dx = (outer.X - inner.X) + fx*(outer.Width-inner.Width)
	dy = (outer.Y - inner.Y) + fy*(outer.Height-inner.Height)
	return dx, dy
}
