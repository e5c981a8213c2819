package calendar

import "fmt"

// Direction is the layout orientation. Horizontal runs weeks left to right
// with days of the week stacked top to bottom; Vertical swaps the axes.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// String returns the canonical name of the direction.
func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Valid reports whether d is one of the two defined directions.
func (d Direction) Valid() bool {
	return d == Horizontal || d == Vertical
}

// ParseDirection converts a canonical direction name to a Direction.
// It is used when orientation arrives from a chart document or CLI flag.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return 0, fmt.Errorf("invalid direction: %q (must be one of: horizontal, vertical)", s)
}

// axisPlan resolves the axis swap between the two directions without
// string branching at call sites. split projects a pixel (x, y) pair onto
// (weeks axis, years axis) values; join is its inverse.
type axisPlan struct {
	split func(x, y float64) (weeks, years float64)
	join  func(weeks, years float64) (x, y float64)
}

var horizontalPlan = axisPlan{
	split: func(x, y float64) (float64, float64) { return x, y },
	join:  func(weeks, years float64) (float64, float64) { return weeks, years },
}

var verticalPlan = axisPlan{
	split: func(x, y float64) (float64, float64) { return y, x },
	join:  func(weeks, years float64) (float64, float64) { return years, weeks },
}

// plan returns the axis plan for the direction. Unknown values fall back
// to the horizontal plan so that layout computation stays total.
func (d Direction) plan() axisPlan {
	if d == Vertical {
		return verticalPlan
	}
	return horizontalPlan
}
