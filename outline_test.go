package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	moves, lines, cubics, closes int
}

func (r *recordingSink) MoveTo(x, y float64)                    { r.moves++ }
func (r *recordingSink) LineTo(x, y float64)                    { r.lines++ }
func (r *recordingSink) CubicTo(x1, y1, x2, y2, x3, y3 float64) { r.cubics++ }
func (r *recordingSink) ClosePath()                             { r.closes++ }

func cubicEnds(segs []segment) []Point {
	var out []Point
	for _, s := range segs {
		if s.kind == segCubic {
			out = append(out, s.pts[2])
		}
	}
	return out
}

func TestOutlineStraightPiece(t *testing.T) {
	p := &Piece{W: 100, H: 80}
	segs := outline(p, Point{10, 20})
	require.Len(t, segs, 5)

	assert.Equal(t, segMove, segs[0].kind)
	assert.Equal(t, Point{10, 20}, segs[0].pts[0])
	assert.Equal(t, Point{110, 20}, segs[1].pts[0])
	assert.Equal(t, Point{110, 100}, segs[2].pts[0])
	assert.Equal(t, Point{10, 100}, segs[3].pts[0])
	assert.Equal(t, Point{10, 20}, segs[4].pts[0])
}

func TestOutlineTabs(t *testing.T) {
	p := &Piece{W: 100, H: 100, Top: 0.5, Right: -0.4, Bottom: 0.6, Left: -0.5}
	segs := outline(p, Point{})
	require.Len(t, segs, 17)

	ends := cubicEnds(segs)
	require.Len(t, ends, 8)
	// Apexes sit tab height (0.2 of the side) along each edge's outward
	// normal, or inward for negative tabs.
	assert.InDeltaSlice(t, []float64{50, -20}, []float64{ends[0].X, ends[0].Y}, 1e-9)
	assert.InDeltaSlice(t, []float64{80, 40}, []float64{ends[2].X, ends[2].Y}, 1e-9)
	assert.InDeltaSlice(t, []float64{60, 120}, []float64{ends[4].X, ends[4].Y}, 1e-9)
	assert.InDeltaSlice(t, []float64{20, 50}, []float64{ends[6].X, ends[6].Y}, 1e-9)

	sink := &recordingSink{}
	tracePath(sink, segs)
	assert.Equal(t, recordingSink{moves: 1, lines: 8, cubics: 8, closes: 1}, *sink)
}

func TestOutlinesInterlock(t *testing.T) {
	for _, tab := range []Tab{0.45, -0.45, 0.31, -0.69} {
		left := &Piece{W: 120, H: 90, Right: tab}
		right := &Piece{W: 120, H: 90, Left: -tab}
		upper := &Piece{W: 120, H: 90, Bottom: tab}
		lower := &Piece{W: 120, H: 90, Top: -tab}

		a := cubicEnds(outline(left, Point{0, 0}))
		b := cubicEnds(outline(right, Point{120, 0}))
		require.Len(t, a, 2)
		require.Len(t, b, 2)
		assert.InDelta(t, a[0].X, b[0].X, 1e-9, "apex x for %v", tab)
		assert.InDelta(t, a[0].Y, b[0].Y, 1e-9, "apex y for %v", tab)

		c := cubicEnds(outline(upper, Point{0, 0}))
		d := cubicEnds(outline(lower, Point{0, 90}))
		require.Len(t, c, 2)
		require.Len(t, d, 2)
		assert.InDelta(t, c[0].X, d[0].X, 1e-9, "apex x for %v", tab)
		assert.InDelta(t, c[0].Y, d[0].Y, 1e-9, "apex y for %v", tab)
	}
}

func TestOutlineMirrorSymmetry(t *testing.T) {
	p := &Piece{W: 100, H: 100, Top: 0.5}
	segs := outline(p, Point{})
	require.Len(t, segs, 8)

	neckIn := segs[1].pts[0]
	first := segs[2]
	second := segs[3]
	assert.InDelta(t, 100-neckIn.X, second.pts[2].X, 1e-9)
	assert.InDelta(t, 100-first.pts[1].X, second.pts[0].X, 1e-9)
	assert.InDelta(t, first.pts[1].Y, second.pts[0].Y, 1e-9)
	assert.InDelta(t, first.pts[0].Y, second.pts[1].Y, 1e-9)
}
