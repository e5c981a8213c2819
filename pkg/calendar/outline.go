package calendar

import (
	"container/list"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jfache/nivo/pkg/align"
)

// monthParams is the full input tuple of the month outline computation.
// Identical tuples always produce identical outlines, which is what makes
// the memo below safe.
type monthParams struct {
	Date           time.Time
	CellSize       float64
	YearIndex      int
	YearSpacing    float64
	DaySpacing     float64
	Direction      Direction
	OriginX        float64
	OriginY        float64
	FirstDayOfWeek time.Weekday
}

// monthOutline is the computed result: the step-shaped path tracing the
// month's day cells and its bounding box.
type monthOutline struct {
	Path string
	BBox align.Box
}

// outlineKey is the comparable form of monthParams used as the memo key.
// The date collapses to (year, month) since outlines only depend on the
// month, not which day within it is passed.
type outlineKey struct {
	year           int
	month          time.Month
	cellSize       float64
	yearIndex      int
	yearSpacing    float64
	daySpacing     float64
	direction      Direction
	originX        float64
	originY        float64
	firstDayOfWeek time.Weekday
}

func (p monthParams) key() outlineKey {
	return outlineKey{
		year:           p.Date.Year(),
		month:          p.Date.Month(),
		cellSize:       p.CellSize,
		yearIndex:      p.YearIndex,
		yearSpacing:    p.YearSpacing,
		daySpacing:     p.DaySpacing,
		direction:      p.Direction,
		originX:        p.OriginX,
		originY:        p.OriginY,
		firstDayOfWeek: p.FirstDayOfWeek,
	}
}

// outlineMemo is a bounded LRU over month outline computations. The same
// month/spacing/origin tuples recur on every re-render with an unchanged
// configuration, so a small cache covers the steady state. Safe for
// concurrent use; a miss simply recomputes.
type outlineMemo struct {
	mu      sync.Mutex
	cap     int
	order   *list.List // front = most recently used
	entries map[outlineKey]*list.Element
}

type outlineEntry struct {
	key outlineKey
	val monthOutline
}

func newOutlineMemo(capacity int) *outlineMemo {
	return &outlineMemo{
		cap:     capacity,
		order:   list.New(),
		entries: make(map[outlineKey]*list.Element),
	}
}

func (m *outlineMemo) get(k outlineKey) (monthOutline, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	el, ok := m.entries[k]
	if !ok {
		return monthOutline{}, false
	}
	m.order.MoveToFront(el)
	return el.Value.(*outlineEntry).val, true
}

func (m *outlineMemo) put(k outlineKey, v monthOutline) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.entries[k]; ok {
		m.order.MoveToFront(el)
		el.Value.(*outlineEntry).val = v
		return
	}
	m.entries[k] = m.order.PushFront(&outlineEntry{key: k, val: v})
	for m.order.Len() > m.cap {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.entries, oldest.Value.(*outlineEntry).key)
	}
}

func (m *outlineMemo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// monthPathAndBBox computes the outline of the month containing p.Date.
//
// The path walks the union of the month's day cells as a closed step
// polygon. With u = cellSize + daySpacing and week/day offsets measured
// from the year origin, the horizontal trace is:
//
//	M (firstWeek+1)u, firstDay*u   top edge notch at the first day
//	H firstWeek*u                  left to the first week column
//	V 7u                           down the left boundary
//	H lastWeek*u                   right along the bottom
//	V (lastDay+1)u                 up to below the last day
//	H (lastWeek+1)u                right past the last week column
//	V 0                            up to the top
//	H (firstWeek+1)u  Z            back to the start
//
// The vertical trace is the same polygon with axes swapped, walked in the
// opposite rotational order. The month's end boundary is its final
// calendar day: a month ending exactly on a week boundary must not leak
// into the following week column, which the first-of-next-month date
// would.
func monthPathAndBBox(p monthParams) monthOutline {
	u := p.CellSize + p.DaySpacing
	first := time.Date(p.Date.Year(), p.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	firstWeek := float64(WeekOffset(first, p.FirstDayOfWeek))
	lastWeek := float64(WeekOffset(last, p.FirstDayOfWeek))
	firstDay := float64(DayIndex(first, p.FirstDayOfWeek))
	lastDay := float64(DayIndex(last, p.FirstDayOfWeek))

	// The year offset shifts along the years axis: y in horizontal
	// layouts, x in vertical ones.
	plan := p.Direction.plan()
	originWeeks, originYears := plan.split(p.OriginX, p.OriginY)
	originYears += float64(p.YearIndex) * (7*u + p.YearSpacing)

	var path string
	if p.Direction == Vertical {
		xO, yO := originYears, originWeeks
		path = pathBuilder{}.
			moveTo(xO+firstDay*u, yO+(firstWeek+1)*u).
			horizTo(xO).
			vertTo(yO + (lastWeek+1)*u).
			horizTo(xO + (lastDay+1)*u).
			vertTo(yO + lastWeek*u).
			horizTo(xO + 7*u).
			vertTo(yO + firstWeek*u).
			horizTo(xO + firstDay*u).
			close()
	} else {
		xO, yO := originWeeks, originYears
		path = pathBuilder{}.
			moveTo(xO+(firstWeek+1)*u, yO+firstDay*u).
			horizTo(xO + firstWeek*u).
			vertTo(yO + 7*u).
			horizTo(xO + lastWeek*u).
			vertTo(yO + (lastDay+1)*u).
			horizTo(xO + (lastWeek+1)*u).
			vertTo(yO).
			horizTo(xO + (firstWeek+1)*u).
			close()
	}

	bboxX, bboxY := plan.join(originWeeks+firstWeek*u, originYears)
	bboxW, bboxH := plan.join((lastWeek+1-firstWeek)*u, 7*u)

	return monthOutline{
		Path: path,
		BBox: align.Box{X: bboxX, Y: bboxY, Width: bboxW, Height: bboxH},
	}
}

// pathBuilder assembles an SVG path from M/H/V/Z commands. Coordinates
// are formatted with the shortest decimal representation so that paths
// stay compact and deterministic.
type pathBuilder struct {
	segs []string
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (b pathBuilder) moveTo(x, y float64) pathBuilder {
	b.segs = append(b.segs, "M"+fmtCoord(x)+","+fmtCoord(y))
	return b
}

func (b pathBuilder) horizTo(x float64) pathBuilder {
	b.segs = append(b.segs, "H"+fmtCoord(x))
	return b
}

func (b pathBuilder) vertTo(y float64) pathBuilder {
	b.segs = append(b.segs, "V"+fmtCoord(y))
	return b
}

func (b pathBuilder) close() string {
	return strings.Join(append(b.segs, "Z"), "")
}
