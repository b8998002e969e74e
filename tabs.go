package main

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Grid is the rows x columns layout of a puzzle. Pieces are stored
// row-major; use At to address them by (column, row).
type Grid struct {
	Rows    int
	Columns int
	Pieces  []*Piece
}

func (g *Grid) At(col, row int) *Piece {
	if g == nil || col < 0 || col >= g.Columns || row < 0 || row >= g.Rows {
		return nil
	}
	return g.Pieces[row*g.Columns+col]
}

func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Pieces)
}

// newGrid lays out pieces over box without edge descriptors.
func newGrid(rows, columns int, box Rect) (*Grid, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, rows, columns)
	}
	w := box.W / float64(columns)
	h := box.H / float64(rows)
	g := &Grid{Rows: rows, Columns: columns, Pieces: make([]*Piece, 0, rows*columns)}
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			correct := Point{box.X + float64(col)*w, box.Y + float64(row)*h}
			g.Pieces = append(g.Pieces, &Piece{
				Col:     col,
				Row:     row,
				Correct: correct,
				Pos:     correct,
				W:       w,
				H:       h,
				Border:  row == 0 || row == rows-1 || col == 0 || col == columns-1,
			})
		}
	}
	return g, nil
}

// generateTabs assigns every edge descriptor in one row-major pass. Each
// piece draws its own bottom and right tabs and mirrors the left and top
// tabs of neighbours that were already visited, so every interior edge
// meshes without a second pass.
func generateTabs(g *Grid, rng *rand.Rand) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			p := g.At(col, row)

			if row == g.Rows-1 {
				p.Bottom = NoTab
			} else {
				p.Bottom = randomTab(rng)
			}

			if col == g.Columns-1 {
				p.Right = NoTab
			} else {
				p.Right = randomTab(rng)
			}

			if col == 0 {
				p.Left = NoTab
			} else {
				p.Left = -g.At(col-1, row).Right
			}

			if row == 0 {
				p.Top = NoTab
			} else {
				p.Top = -g.At(col, row-1).Bottom
			}
		}
	}
}

func randomTab(rng *rand.Rand) Tab {
	sign := 1.0
	if rng.IntN(2) == 0 {
		sign = -1
	}
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}
	mag := tabMin + (tabMax-tabMin)*u
	if mag >= tabMax {
		mag = math.Nextafter(tabMax, 0)
	}
	return Tab(sign * mag)
}
