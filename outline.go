package main

type segmentKind int

const (
	segMove segmentKind = iota
	segLine
	segCubic
)

// segment is one drawing instruction of a piece outline. Cubic segments use
// all three points (two controls, then the end point); the others use only
// the first.
type segment struct {
	kind segmentKind
	pts  [3]Point
}

// pathSink receives outline segments. *gg.Context satisfies it.
type pathSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// outline traces the closed border of p with its top-left corner at origin,
// clockwise from that corner. Every present edge gets the same bump,
// mirrored to the edge's orientation, so neighbouring outlines interlock.
func outline(p *Piece, origin Point) []segment {
	m := p.metrics()
	x, y, w, h := origin.X, origin.Y, p.W, p.H

	tl := Point{x, y}
	tr := Point{x + w, y}
	br := Point{x + w, y + h}
	bl := Point{x, y + h}

	segs := make([]segment, 0, 17)
	segs = append(segs, segment{kind: segMove, pts: [3]Point{tl}})
	segs = appendEdge(segs, tr, p.Top, Point{x + w*p.Top.Position(), y}, Point{1, 0}, Point{0, -1}, m)
	segs = appendEdge(segs, br, p.Right, Point{x + w, y + h*p.Right.Position()}, Point{0, 1}, Point{1, 0}, m)
	segs = appendEdge(segs, bl, p.Bottom, Point{x + w*p.Bottom.Position(), y + h}, Point{-1, 0}, Point{0, 1}, m)
	segs = appendEdge(segs, tl, p.Left, Point{x, y + h*p.Left.Position()}, Point{0, -1}, Point{-1, 0}, m)
	return segs
}

// appendEdge continues the path to end. When tab is present the straight
// run is broken at center by two cubic curves that leave the edge at
// +-neck, reach tab height along the outward normal (inward for negative
// tabs) and return. along is the travel direction of this edge.
func appendEdge(segs []segment, end Point, tab Tab, center, along, normal Point, m tabMetrics) []segment {
	if !tab.Absent() {
		at := func(a, b float64) Point {
			return center.Add(along.Mul(a)).Add(normal.Mul(b))
		}
		height := m.height * tab.Sign()
		segs = append(segs,
			segment{kind: segLine, pts: [3]Point{at(-m.neck, 0)}},
			segment{kind: segCubic, pts: [3]Point{
				at(-m.neck, height*tabShoulder),
				at(-m.width, height),
				at(0, height),
			}},
			segment{kind: segCubic, pts: [3]Point{
				at(m.width, height),
				at(m.neck, height*tabShoulder),
				at(m.neck, 0),
			}},
		)
	}
	return append(segs, segment{kind: segLine, pts: [3]Point{end}})
}

func tracePath(dst pathSink, segs []segment) {
	for _, s := range segs {
		switch s.kind {
		case segMove:
			dst.MoveTo(s.pts[0].X, s.pts[0].Y)
		case segLine:
			dst.LineTo(s.pts[0].X, s.pts[0].Y)
		case segCubic:
			dst.CubicTo(s.pts[0].X, s.pts[0].Y, s.pts[1].X, s.pts[1].Y, s.pts[2].X, s.pts[2].Y)
		}
	}
	dst.ClosePath()
}
