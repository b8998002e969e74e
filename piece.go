package main

import "math"

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point   { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point   { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Dist is the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// ContainsStrict reports whether p lies strictly inside r.
func (r Rect) ContainsStrict(p Point) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}

// Overlaps reports whether r and s share interior area.
func (r Rect) Overlaps(s Rect) bool {
	return r.X < s.X+s.W && s.X < r.X+r.W && r.Y < s.Y+s.H && s.Y < r.Y+r.H
}

// Tab is an edge descriptor. Zero means the edge lies on the grid boundary
// and is straight. Otherwise the sign selects protrusion (+) or
// indentation (-) and the magnitude is where the tab sits along the edge,
// measured from the edge's top or left end.
type Tab float64

const NoTab Tab = 0

func (t Tab) Absent() bool { return t == NoTab }

func (t Tab) Sign() float64 {
	if t < 0 {
		return -1
	}
	return 1
}

func (t Tab) Position() float64 { return math.Abs(float64(t)) }

type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// Piece is one grid cell. Col/Row, Correct and the edge descriptors never
// change after generation; Pos and Snapped are mutated by dragging and by
// the solve animation.
type Piece struct {
	Col, Row int
	Correct  Point
	Pos      Point
	W, H     float64
	Top      Tab
	Right    Tab
	Bottom   Tab
	Left     Tab
	Border   bool
	Snapped  bool
}

func (p *Piece) Edge(s Side) Tab {
	switch s {
	case SideTop:
		return p.Top
	case SideRight:
		return p.Right
	case SideBottom:
		return p.Bottom
	default:
		return p.Left
	}
}

func (p *Piece) SetPosition(x, y float64) {
	p.Pos = Point{x, y}
}

func (p *Piece) Bounds() Rect {
	return Rect{p.Pos.X, p.Pos.Y, p.W, p.H}
}

// SnapDistance is the radius around the correct position inside which the
// piece counts as placed.
func (p *Piece) SnapDistance() float64 {
	return p.W / snapDivisor
}

func (p *Piece) IsClose() bool {
	return p.Pos.Dist(p.Correct) <= p.SnapDistance()
}

// Snap moves the piece exactly onto its correct position and marks it
// placed for good.
func (p *Piece) Snap() {
	p.Pos = p.Correct
	p.Snapped = true
}

// Visible reports whether the piece is drawn under filter. Snapped pieces
// are always drawn.
func (p *Piece) Visible(filter ViewFilter) bool {
	return p.Snapped || p.matches(filter)
}

func (p *Piece) matches(filter ViewFilter) bool {
	switch filter {
	case ViewBorderOnly:
		return p.Border
	case ViewNonBorderOnly:
		return !p.Border
	default:
		return true
	}
}

// tabMetrics are the outline constants shared by all four edges.
type tabMetrics struct {
	neck   float64
	width  float64
	height float64
}

func (p *Piece) metrics() tabMetrics {
	size := math.Min(p.W, p.H)
	return tabMetrics{
		neck:   neckRatio * size,
		width:  tabRatio * size,
		height: tabRatio * size,
	}
}
