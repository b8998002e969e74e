package main

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := defaultConfig()
	cfg.Seed = 42
	return cfg
}

// newTestPuzzle returns a generated but unscattered puzzle on an 800x600
// surface. The preview box is 400x266.67 at (200,166.67).
func newTestPuzzle(t *testing.T, rows, cols int) *Puzzle {
	t.Helper()
	cfg := testConfig()
	cfg.Rows, cfg.Columns = rows, cols
	pz, err := NewPuzzle(cfg, image.Rect(0, 0, 300, 200))
	require.NoError(t, err)
	pz.Resize(400, 300)
	require.NoError(t, pz.Generate())
	return pz
}

func TestNewPuzzleErrors(t *testing.T) {
	cfg := testConfig()
	_, err := NewPuzzle(cfg, image.Rectangle{})
	assert.ErrorIs(t, err, ErrNoImage)

	cfg.Rows = 0
	_, err = NewPuzzle(cfg, image.Rect(0, 0, 10, 10))
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestPuzzleBeforeGenerate(t *testing.T) {
	pz, err := NewPuzzle(testConfig(), image.Rect(0, 0, 300, 200))
	require.NoError(t, err)

	assert.False(t, pz.Generated())
	_, ok := pz.PieceAt(Point{10, 10})
	assert.False(t, ok)
	assert.False(t, pz.Press(Point{10, 10}))
	pz.Move(Point{20, 20})
	_, ok = pz.Release()
	assert.False(t, ok)
	assert.Equal(t, FrameReport{}, pz.Advance())
	assert.ErrorIs(t, pz.Solve(), ErrNotGenerated)
	assert.ErrorIs(t, pz.Scatter(context.Background()), ErrNotGenerated)
	assert.ErrorIs(t, pz.Generate(), ErrInvalidGrid, "no viewport yet")

	placed, total := pz.Progress()
	assert.Zero(t, placed)
	assert.Zero(t, total)
}

func TestFitPreview(t *testing.T) {
	box := fitPreview(Rect{0, 0, 800, 600}, image.Rect(0, 0, 300, 200), 50, 75)
	assert.InDelta(t, 400, box.W, 1e-9)
	assert.InDelta(t, 266.666, box.H, 1e-3)
	assert.InDelta(t, 200, box.X, 1e-9)
	assert.InDelta(t, 600.0/2-box.H/2, box.Y, 1e-9)

	tall := fitPreview(Rect{0, 0, 800, 600}, image.Rect(0, 0, 100, 400), 50, 75)
	assert.InDelta(t, 450, tall.H, 1e-9)
	assert.InDelta(t, 112.5, tall.W, 1e-9)

	assert.Equal(t, Rect{}, fitPreview(Rect{}, image.Rect(0, 0, 10, 10), 50, 75))
}

func TestGeneratePlacesPiecesOnPreview(t *testing.T) {
	pz := newTestPuzzle(t, 3, 4)
	g := pz.Grid()
	require.Equal(t, 12, g.Len())
	assertMeshing(t, g)

	box := pz.Preview()
	for _, p := range g.Pieces {
		assert.Equal(t, p.Correct, p.Pos)
		assert.False(t, p.Snapped)
		assert.InDelta(t, box.W/4, p.W, 1e-9)
		assert.InDelta(t, box.H/3, p.H, 1e-9)
	}

	// Unscattered pieces all sit within snap distance, so none is selectable.
	_, ok := pz.PieceAt(g.At(1, 1).Correct.Add(Point{5, 5}))
	assert.False(t, ok)
}

func TestScatterKeepsPiecesOffPreview(t *testing.T) {
	pz := newTestPuzzle(t, 4, 4)
	require.NoError(t, pz.Scatter(context.Background()))

	for _, p := range pz.Grid().Pieces {
		assert.False(t, p.Bounds().Overlaps(pz.Preview()), "piece %d,%d at %v", p.Col, p.Row, p.Pos)
		assert.False(t, p.Snapped)
	}
}

func TestPieceAtRespectsFilter(t *testing.T) {
	pz := newTestPuzzle(t, 3, 3)
	center := pz.Grid().At(1, 1)
	require.False(t, center.Border)
	center.SetPosition(10, 10)

	at := Point{15, 15}

	i, ok := pz.PieceAt(at)
	require.True(t, ok)
	assert.Equal(t, 4, i)

	pz.SetFilter(ViewBorderOnly)
	_, ok = pz.PieceAt(at)
	assert.False(t, ok)

	pz.SetFilter(ViewNonBorderOnly)
	i, ok = pz.PieceAt(at)
	assert.True(t, ok)
	assert.Equal(t, 4, i)

	_, ok = pz.PieceAt(Point{10, 15})
	assert.False(t, ok, "the box boundary is not inside")
}

func TestPieceAtPrefersTopmost(t *testing.T) {
	pz := newTestPuzzle(t, 3, 3)
	a := pz.Grid().Pieces[0]
	b := pz.Grid().Pieces[1]
	a.SetPosition(10, 10)
	b.SetPosition(60, 10)

	overlap := Point{100, 30}
	i, ok := pz.PieceAt(overlap)
	require.True(t, ok)
	assert.Equal(t, 1, i, "later in draw order wins")

	// Pressing a raises it above b.
	require.True(t, pz.Press(Point{15, 15}))
	_, ok = pz.Release()
	require.True(t, ok)

	i, ok = pz.PieceAt(overlap)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	var order []int
	pz.Each(func(i int, _ *Piece) { order = append(order, i) })
	assert.Equal(t, 0, order[len(order)-1])
	assert.Len(t, order, 9)
}

func TestDragAndDrop(t *testing.T) {
	pz := newTestPuzzle(t, 3, 3)
	p := pz.Grid().Pieces[4]
	p.SetPosition(10, 10)

	// Client units are half the surface at the default scale.
	require.True(t, pz.Press(Point{7.5, 7.5}))
	assert.True(t, pz.Dragging())
	assert.False(t, pz.Press(Point{7.5, 7.5}), "one selection at a time")

	pz.Move(Point{52.5, 27.5})
	assert.Equal(t, Point{100, 50}, p.Pos)

	r, ok := pz.Release()
	require.True(t, ok)
	assert.False(t, pz.Dragging())
	assert.Equal(t, DropResult{Index: 4, From: Point{10, 10}, To: Point{100, 50}}, r)
	assert.False(t, p.Snapped)

	// Drop within snap distance of the correct position.
	require.True(t, pz.Press(Point{52.5, 27.5}))
	target := p.Correct.Add(Point{3, 3}).Add(Point{5, 5})
	pz.Move(target.Mul(0.5))
	r, ok = pz.Release()
	require.True(t, ok)
	assert.True(t, r.Snapped)
	assert.False(t, r.Solved)
	assert.True(t, p.Snapped)
	assert.Equal(t, p.Correct, p.Pos)

	_, ok = pz.Release()
	assert.False(t, ok, "release without a selection is ignored")
}

func TestPressOutsideSurface(t *testing.T) {
	pz := newTestPuzzle(t, 3, 3)
	pz.Grid().Pieces[0].SetPosition(10, 10)

	assert.False(t, pz.Press(Point{-1, -1}))
	assert.False(t, pz.Press(Point{500, 10}))
	assert.False(t, pz.Dragging())
}

func TestPressHonoursPan(t *testing.T) {
	pz := newTestPuzzle(t, 3, 3)
	pz.Grid().Pieces[0].SetPosition(10, 10)
	pz.Pan(100, 0)

	assert.False(t, pz.Press(Point{7.5, 7.5}))
	require.True(t, pz.Press(Point{57.5, 7.5}))
	pz.Release()

	pz.ResetPan()
	assert.Equal(t, Point{}, pz.Translate())
}

func TestSolveConvergesAndReportsSolvedOnce(t *testing.T) {
	pz := newTestPuzzle(t, 2, 2)
	pieces := pz.Grid().Pieces
	pieces[0].SetPosition(pieces[0].Correct.X+250, pieces[0].Correct.Y)
	for _, p := range pieces[1:] {
		p.SetPosition(p.Correct.X, p.Correct.Y+100)
	}

	require.NoError(t, pz.Solve())
	assert.True(t, pz.Animating())

	solvedReports := 0
	frames := 0
	for pz.Animating() && frames < 1000 {
		frames++
		r := pz.Advance()
		placed, total := pz.Progress()
		assert.Equal(t, placed == total, pz.Solved(), "frame %d", frames)
		if r.Solved {
			solvedReports++
		}
	}

	assert.LessOrEqual(t, frames, 250)
	assert.Equal(t, 1, solvedReports)
	assert.True(t, pz.Solved())
	for _, p := range pieces {
		assert.True(t, p.Snapped)
		assert.Equal(t, p.Correct, p.Pos)
	}
	assert.Equal(t, FrameReport{}, pz.Advance())
}

func TestSolveRandomDuration(t *testing.T) {
	cfg := testConfig()
	cfg.Rows, cfg.Columns = 3, 3
	cfg.SolveRandom = true
	pz, err := NewPuzzle(cfg, image.Rect(0, 0, 300, 200))
	require.NoError(t, err)
	pz.Resize(400, 300)
	require.NoError(t, startPuzzle(context.Background(), pz))

	require.NoError(t, pz.Solve())
	frames := 0
	for pz.Animating() && frames < 1000 {
		frames++
		pz.Advance()
	}
	assert.LessOrEqual(t, frames, int(cfg.AnimationDuration+minAnimationDuration))
	assert.True(t, pz.Solved())
}

func TestSolveCancelsDragAndResetsFilter(t *testing.T) {
	pz := newTestPuzzle(t, 3, 3)
	p := pz.Grid().Pieces[4]
	p.SetPosition(10, 10)
	pz.SetFilter(ViewNonBorderOnly)
	require.True(t, pz.Press(Point{7.5, 7.5}))

	require.NoError(t, pz.Solve())
	assert.False(t, pz.Dragging())
	assert.Equal(t, ViewAll, pz.Filter())

	_, ok := pz.PieceAt(Point{15, 15})
	assert.False(t, ok, "animating pieces cannot be picked")
}

func TestSolveSkipsSnappedPieces(t *testing.T) {
	pz := newTestPuzzle(t, 2, 2)
	for _, p := range pz.Grid().Pieces {
		p.Snap()
	}
	pz.Grid().Pieces[3].Snapped = false
	pz.Grid().Pieces[3].SetPosition(0, 0)

	require.NoError(t, pz.Solve())
	assert.Len(t, pz.anims, 1)
}

func TestMovePiece(t *testing.T) {
	pz := newTestPuzzle(t, 2, 2)
	require.NoError(t, pz.MovePiece(1, Point{5, 6}))
	assert.Equal(t, Point{5, 6}, pz.Grid().Pieces[1].Pos)

	assert.Error(t, pz.MovePiece(9, Point{}))

	pz.Grid().Pieces[1].Snap()
	assert.Error(t, pz.MovePiece(1, Point{}))
}

func TestResizeRelayout(t *testing.T) {
	pz := newTestPuzzle(t, 3, 3)
	require.NoError(t, pz.Scatter(context.Background()))
	pz.Grid().Pieces[0].Snap()

	before := pz.Preview()
	rel := make([]Point, 0, 9)
	for _, p := range pz.Grid().Pieces {
		rel = append(rel, p.Pos.Sub(Point{before.X, before.Y}))
	}
	w := pz.Grid().Pieces[0].W
	layout := pz.Layout()

	pz.Resize(800, 600)
	after := pz.Preview()
	require.InDelta(t, 2*before.W, after.W, 1e-9)
	assert.Greater(t, pz.Layout(), layout)
	assertMeshing(t, pz.Grid())

	for i, p := range pz.Grid().Pieces {
		assert.InDelta(t, 2*w, p.W, 1e-9)
		assert.InDelta(t, after.X+float64(p.Col)*p.W, p.Correct.X, 1e-9)
		if p.Snapped {
			assert.Equal(t, p.Correct, p.Pos)
			continue
		}
		assert.InDelta(t, after.X+2*rel[i].X, p.Pos.X, 1e-6)
		assert.InDelta(t, after.Y+2*rel[i].Y, p.Pos.Y, 1e-6)
	}
}

func TestResizeThroughZero(t *testing.T) {
	pz := newTestPuzzle(t, 3, 3)
	require.NoError(t, pz.Scatter(context.Background()))
	before := pz.Preview()

	pz.Resize(400, 0)
	pz.Resize(0, 0)
	pz.Resize(400, 300)

	assert.Equal(t, before, pz.Preview())
	for _, p := range pz.Grid().Pieces {
		assert.InDelta(t, before.W/3, p.W, 1e-9)
		assert.InDelta(t, before.H/3, p.H, 1e-9)
		assert.InDelta(t, before.X+float64(p.Col)*p.W, p.Correct.X, 1e-9)
		assert.InDelta(t, before.Y+float64(p.Row)*p.H, p.Correct.Y, 1e-9)
	}

	p := pz.Grid().Pieces[4]
	p.SetPosition(10, 10)
	assert.True(t, pz.Press(Point{7.5, 7.5}))
}

func TestResizeDuringDragKeepsStartInLayout(t *testing.T) {
	pz := newTestPuzzle(t, 3, 3)
	p := pz.Grid().Pieces[4]
	p.SetPosition(10, 10)
	require.True(t, pz.Press(Point{7.5, 7.5}))

	before := pz.Preview()
	pz.Resize(800, 600)
	after := pz.Preview()

	r, ok := pz.Release()
	require.True(t, ok)
	assert.InDelta(t, after.X+2*(10-before.X), r.From.X, 1e-6)
	assert.InDelta(t, after.Y+2*(10-before.Y), r.From.Y, 1e-6)
	assert.InDelta(t, r.From.X, r.To.X, 1e-6, "the piece did not move during the drag")
	assert.InDelta(t, r.From.Y, r.To.Y, 1e-6)
}

func TestSolveFractionalDuration(t *testing.T) {
	cfg := testConfig()
	cfg.Rows, cfg.Columns = 3, 3
	cfg.AnimationDuration = 50.5
	pz, err := NewPuzzle(cfg, image.Rect(0, 0, 300, 200))
	require.NoError(t, err)
	pz.Resize(400, 300)
	require.NoError(t, pz.Generate())

	p := pz.Grid().Pieces[0]
	p.SetPosition(p.Correct.X+30*p.W, p.Correct.Y)
	require.NoError(t, pz.Solve())

	frames := 0
	for pz.Animating() && frames < 1000 {
		frames++
		pz.Advance()
	}
	assert.False(t, pz.Animating())
	assert.LessOrEqual(t, frames, 51)
	assert.True(t, p.Snapped)
	assert.Equal(t, p.Correct, p.Pos)
}

func TestGenerateResetsSession(t *testing.T) {
	pz := newTestPuzzle(t, 2, 2)
	for _, p := range pz.Grid().Pieces {
		p.SetPosition(0, 0)
	}
	require.NoError(t, pz.Solve())
	for pz.Animating() {
		pz.Advance()
	}
	require.True(t, pz.Solved())

	require.NoError(t, pz.Generate())
	assert.False(t, pz.Solved())
	assert.False(t, pz.Animating())
	placed, total := pz.Progress()
	assert.Equal(t, 0, placed)
	assert.Equal(t, 4, total)
}

func TestOutlineState(t *testing.T) {
	pz := newTestPuzzle(t, 2, 2)
	p := pz.Grid().Pieces[0]

	p.SetPosition(p.Correct.X+1, p.Correct.Y)
	pz.ToggleHints(true)
	assert.Equal(t, outlineHint, pz.outlineState(p))

	pz.ToggleHints(false)
	assert.Equal(t, outlineDefault, pz.outlineState(p))

	p.SetPosition(0, 0)
	pz.ToggleHints(true)
	assert.Equal(t, outlineDefault, pz.outlineState(p))

	p.Snap()
	assert.Equal(t, outlineNone, pz.outlineState(p))
}
