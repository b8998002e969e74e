package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidGrid   = errors.New("invalid grid")
	ErrNoImage       = errors.New("no source image")
	ErrNotGenerated  = errors.New("puzzle has no pieces")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// dragState exists only while a piece is selected.
type dragState struct {
	index  int
	offset Point
	start  Point
}

// animation moves a piece by a fixed signed delta every frame until it is
// within snap distance of its correct position.
type animation struct {
	delta Point
}

type outlineState int

const (
	outlineDefault outlineState = iota
	outlineHint
	outlineNone
)

// FrameReport summarises what one Advance call changed.
type FrameReport struct {
	Snapped int
	Solved  bool
}

// DropResult describes the end of a drag.
type DropResult struct {
	Index   int
	From    Point
	To      Point
	Snapped bool
	Solved  bool
}

// Puzzle is one puzzle session: the grid, its draw order and the transient
// drag and animation state that the session owns on behalf of pieces. It is
// not safe for concurrent use; front ends serialise input and frames on a
// single event loop.
type Puzzle struct {
	cfg    Config
	source image.Rectangle
	rng    *rand.Rand

	grid  *Grid
	order []int

	drag  *dragState
	anims map[int]animation

	filter ViewFilter
	hints  bool
	solved bool

	viewW, viewH float64
	surface      Rect
	preview      Rect
	translate    Point

	// layout changes whenever piece geometry or the preview box changes.
	layout uint64
}

func NewPuzzle(cfg Config, source image.Rectangle) (*Puzzle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source.Dx() <= 0 || source.Dy() <= 0 {
		return nil, ErrNoImage
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Puzzle{
		cfg:    cfg,
		source: source,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		anims:  make(map[int]animation),
		hints:  cfg.HintsEnabled,
	}, nil
}

// Resize sets the viewport in client units. The drawing surface is the
// viewport times the scale multiplier. When the fitted preview box moves,
// pieces are mapped into the new box.
func (pz *Puzzle) Resize(viewW, viewH float64) {
	if viewW == pz.viewW && viewH == pz.viewH {
		return
	}
	pz.viewW, pz.viewH = viewW, viewH
	scale := pz.cfg.ScaleMultiplier
	pz.surface = Rect{0, 0, viewW * scale, viewH * scale}
	next := fitPreview(pz.surface, pz.source, pz.cfg.MaxImageWidth, pz.cfg.MaxImageHeight)
	if next == pz.preview {
		return
	}
	// A collapsed viewport keeps the last usable layout.
	if next.W <= 0 || next.H <= 0 {
		return
	}
	if pz.Generated() && pz.preview.W > 0 && pz.preview.H > 0 {
		pz.relayout(pz.preview, next)
	}
	pz.preview = next
	pz.layout++
}

// fitPreview centres the largest box with the source aspect ratio that fits
// inside the width and height percentages of the surface.
func fitPreview(surface Rect, source image.Rectangle, maxW, maxH float64) Rect {
	if surface.W <= 0 || surface.H <= 0 {
		return Rect{}
	}
	sw, sh := float64(source.Dx()), float64(source.Dy())
	limitW := surface.W * maxW / 100
	limitH := surface.H * maxH / 100
	k := math.Min(limitW/sw, limitH/sh)
	w, h := sw*k, sh*k
	return Rect{
		X: surface.X + surface.W/2 - w/2,
		Y: surface.Y + surface.H/2 - h/2,
		W: w,
		H: h,
	}
}

func (pz *Puzzle) relayout(from, to Rect) {
	kx, ky := to.W/from.W, to.H/from.H
	for i, p := range pz.grid.Pieces {
		p.W *= kx
		p.H *= ky
		p.Correct = Point{to.X + float64(p.Col)*p.W, to.Y + float64(p.Row)*p.H}
		if p.Snapped {
			p.Pos = p.Correct
		} else {
			p.Pos = Point{to.X + (p.Pos.X-from.X)*kx, to.Y + (p.Pos.Y-from.Y)*ky}
		}
		if a, ok := pz.anims[i]; ok {
			pz.anims[i] = animation{delta: Point{a.delta.X * kx, a.delta.Y * ky}}
		}
	}
	if pz.drag != nil {
		pz.drag.offset = Point{pz.drag.offset.X * kx, pz.drag.offset.Y * ky}
		pz.drag.start = Point{to.X + (pz.drag.start.X-from.X)*kx, to.Y + (pz.drag.start.Y-from.Y)*ky}
	}
}

// Generate lays out a fresh grid over the preview box and assigns tab
// signatures. Pieces start at their correct positions until Scatter runs.
func (pz *Puzzle) Generate() error {
	if pz.preview.W <= 0 || pz.preview.H <= 0 {
		return fmt.Errorf("generate: %w: empty viewport", ErrInvalidGrid)
	}
	g, err := newGrid(pz.cfg.Rows, pz.cfg.Columns, pz.preview)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	generateTabs(g, pz.rng)

	pz.grid = g
	pz.order = make([]int, g.Len())
	for i := range pz.order {
		pz.order[i] = i
	}
	pz.drag = nil
	clear(pz.anims)
	pz.solved = false
	pz.layout++

	log.WithFields(logrus.Fields{
		"rows":    g.Rows,
		"columns": g.Columns,
		"piece_w": g.Pieces[0].W,
		"piece_h": g.Pieces[0].H,
	}).Info("generated puzzle")
	return nil
}

// Scatter moves every piece to a random start position outside the
// preview image.
func (pz *Puzzle) Scatter(ctx context.Context) error {
	if !pz.Generated() {
		return ErrNotGenerated
	}
	pz.drag = nil
	clear(pz.anims)
	pz.solved = false
	if _, err := scatter(ctx, pz.grid, pz.surface, pz.preview, pz.cfg.PlacementAttempts, pz.rng.Uint64()); err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	return nil
}

func (pz *Puzzle) Generated() bool {
	return pz.grid.Len() > 0
}

func (pz *Puzzle) Grid() *Grid        { return pz.grid }
func (pz *Puzzle) Preview() Rect      { return pz.preview }
func (pz *Puzzle) Surface() Rect      { return pz.surface }
func (pz *Puzzle) Filter() ViewFilter { return pz.filter }
func (pz *Puzzle) Hints() bool        { return pz.hints }
func (pz *Puzzle) Solved() bool       { return pz.solved }
func (pz *Puzzle) Translate() Point   { return pz.translate }
func (pz *Puzzle) Layout() uint64     { return pz.layout }
func (pz *Puzzle) Dragging() bool     { return pz.drag != nil }
func (pz *Puzzle) Animating() bool    { return len(pz.anims) > 0 }

func (pz *Puzzle) SetFilter(f ViewFilter) { pz.filter = f }

// ToggleHints switches the close-to-target highlight outline.
func (pz *Puzzle) ToggleHints(enabled bool) { pz.hints = enabled }

func (pz *Puzzle) Pan(dx, dy float64) {
	pz.translate = pz.translate.Add(Point{dx, dy})
}

func (pz *Puzzle) ResetPan() { pz.translate = Point{} }

// Progress returns how many pieces are snapped and how many exist.
func (pz *Puzzle) Progress() (placed, total int) {
	if !pz.Generated() {
		return 0, 0
	}
	for _, p := range pz.grid.Pieces {
		if p.Snapped {
			placed++
		}
	}
	return placed, pz.grid.Len()
}

// Each visits pieces in draw order, bottom first.
func (pz *Puzzle) Each(fn func(i int, p *Piece)) {
	for _, i := range pz.order {
		fn(i, pz.grid.Pieces[i])
	}
}

// clientToSurface maps a pointer position in client units to work-surface
// coordinates, undoing the scale multiplier and the pan offset.
func (pz *Puzzle) clientToSurface(c Point) (Point, bool) {
	raw := c.Mul(pz.cfg.ScaleMultiplier)
	inside := raw.X >= pz.surface.X && raw.X < pz.surface.X+pz.surface.W &&
		raw.Y >= pz.surface.Y && raw.Y < pz.surface.Y+pz.surface.H
	return raw.Sub(pz.translate), inside
}

// PieceAt returns the index of the selectable piece under the surface
// point p. Pieces already within snap distance, pieces being animated and
// pieces hidden by the view filter are skipped. When boxes overlap, the
// piece drawn last (the top-most) wins.
func (pz *Puzzle) PieceAt(p Point) (int, bool) {
	if !pz.Generated() {
		return 0, false
	}
	found, ok := 0, false
	for _, i := range pz.order {
		piece := pz.grid.Pieces[i]
		if !piece.Bounds().ContainsStrict(p) {
			continue
		}
		if piece.IsClose() || !piece.matches(pz.filter) {
			continue
		}
		if _, animating := pz.anims[i]; animating {
			continue
		}
		found, ok = i, true
	}
	return found, ok
}

// Press starts a drag when the pointer lands on a selectable piece. The
// picked piece is raised to the top of the draw order.
func (pz *Puzzle) Press(client Point) bool {
	if pz.drag != nil {
		return false
	}
	at, inside := pz.clientToSurface(client)
	if !inside {
		return false
	}
	i, ok := pz.PieceAt(at)
	if !ok {
		return false
	}
	p := pz.grid.Pieces[i]
	pz.drag = &dragState{index: i, offset: at.Sub(p.Pos), start: p.Pos}
	pz.raise(i)
	return true
}

// Move keeps the selected piece's anchor under the pointer.
func (pz *Puzzle) Move(client Point) {
	if pz.drag == nil {
		return
	}
	at, _ := pz.clientToSurface(client)
	pos := at.Sub(pz.drag.offset)
	pz.grid.Pieces[pz.drag.index].SetPosition(pos.X, pos.Y)
}

// Release ends the drag. A piece dropped within snap distance is snapped
// onto its correct position; anywhere else it stays where it was dropped.
func (pz *Puzzle) Release() (DropResult, bool) {
	if pz.drag == nil || !pz.Generated() {
		return DropResult{}, false
	}
	d := pz.drag
	pz.drag = nil
	p := pz.grid.Pieces[d.index]
	r := DropResult{Index: d.index, From: d.start, To: p.Pos}
	if p.IsClose() {
		p.Snap()
		r.To = p.Pos
		r.Snapped = true
		r.Solved = pz.markSolved()
	}
	return r, true
}

// MovePiece places an unsnapped piece at pos. Used by undo and redo.
func (pz *Puzzle) MovePiece(i int, pos Point) error {
	if !pz.Generated() {
		return ErrNotGenerated
	}
	if i < 0 || i >= pz.grid.Len() {
		return fmt.Errorf("move piece %d: out of range", i)
	}
	p := pz.grid.Pieces[i]
	if p.Snapped {
		return fmt.Errorf("move piece %d,%d: already placed", p.Col, p.Row)
	}
	if pz.drag != nil && pz.drag.index == i {
		return fmt.Errorf("move piece %d,%d: piece is being dragged", p.Col, p.Row)
	}
	p.SetPosition(pos.X, pos.Y)
	return nil
}

func (pz *Puzzle) raise(i int) {
	for k, j := range pz.order {
		if j == i {
			copy(pz.order[k:], pz.order[k+1:])
			pz.order[len(pz.order)-1] = i
			return
		}
	}
}

// Solve shows every piece and starts moving each unsnapped piece toward its
// correct position. Convergence happens in Advance.
func (pz *Puzzle) Solve() error {
	if !pz.Generated() {
		return ErrNotGenerated
	}
	pz.filter = ViewAll
	pz.drag = nil
	for i, p := range pz.grid.Pieces {
		if p.Snapped {
			continue
		}
		// Whole frames, so the last step lands on the target.
		frames := math.Max(1, math.Round(pz.cfg.AnimationDuration))
		if pz.cfg.SolveRandom {
			frames = math.Floor(pz.rng.Float64()*frames + minAnimationDuration)
		}
		pz.anims[i] = animation{delta: p.Correct.Sub(p.Pos).Mul(1 / frames)}
	}
	log.WithField("pieces", len(pz.anims)).Info("solving")
	return nil
}

// Advance runs the per-frame animation step.
func (pz *Puzzle) Advance() FrameReport {
	var r FrameReport
	if !pz.Generated() || len(pz.anims) == 0 {
		return r
	}
	for i, p := range pz.grid.Pieces {
		a, ok := pz.anims[i]
		if !ok {
			continue
		}
		p.Pos = p.Pos.Add(a.delta)
		if p.IsClose() {
			delete(pz.anims, i)
			p.Snap()
			r.Snapped++
		}
	}
	if r.Snapped > 0 {
		r.Solved = pz.markSolved()
	}
	return r
}

// markSolved sets the solved flag once every piece has snapped and reports
// whether this call made the transition.
func (pz *Puzzle) markSolved() bool {
	if pz.solved {
		return false
	}
	for _, p := range pz.grid.Pieces {
		if !p.Snapped {
			return false
		}
	}
	pz.solved = true
	log.Info("puzzle solved")
	return true
}

func (pz *Puzzle) outlineState(p *Piece) outlineState {
	switch {
	case p.Snapped:
		return outlineNone
	case pz.hints && p.IsClose():
		return outlineHint
	default:
		return outlineDefault
	}
}
