package main

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

var (
	backgroundColor = color.RGBA{0x2b, 0x2b, 0x2b, 0xff}
	outlineColor    = color.RGBA{0x00, 0x00, 0x00, 0xff}
	hintColor       = color.RGBA{0x00, 0xff, 0x00, 0xff}
)

// Canvas is the raster drawing surface shared by every front end. It keeps
// the source image fitted to the current preview box, plus a faded copy for
// the background preview, and rebuilds both only when the layout changes.
type Canvas struct {
	source image.Image

	rgba *image.RGBA
	dc   *gg.Context

	layout  uint64
	scaled  *image.RGBA
	preview *image.RGBA
}

func NewCanvas(source image.Image) *Canvas {
	return &Canvas{source: source}
}

// resize makes the backing image match the surface, reallocating only when
// the pixel size changes.
func (c *Canvas) resize(surface Rect) {
	w := int(math.Ceil(surface.W))
	h := int(math.Ceil(surface.H))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if c.rgba != nil && c.rgba.Rect.Dx() == w && c.rgba.Rect.Dy() == h {
		return
	}
	c.rgba = image.NewRGBA(image.Rect(0, 0, w, h))
	c.dc = gg.NewContextForRGBA(c.rgba)
}

// refit rescales the source into the preview box and prepares the faded
// background copy.
func (c *Canvas) refit(pz *Puzzle) {
	if c.scaled != nil && c.layout == pz.Layout() {
		return
	}
	c.layout = pz.Layout()
	box := pz.Preview()
	w := int(math.Round(box.W))
	h := int(math.Round(box.H))
	if w < 1 || h < 1 {
		c.scaled, c.preview = nil, nil
		return
	}
	if c.scaled == nil || c.scaled.Rect.Dx() != w || c.scaled.Rect.Dy() != h {
		c.scaled = image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(c.scaled, c.scaled.Bounds(), c.source, c.source.Bounds(), xdraw.Src, nil)

		c.preview = image.NewRGBA(c.scaled.Bounds())
		fade := image.NewUniform(color.Alpha{A: uint8(math.Round(previewOpacity * 0xff))})
		xdraw.DrawMask(c.preview, c.preview.Bounds(), c.scaled, image.Point{}, fade, image.Point{}, xdraw.Src)
	}
}

// Render draws one frame of pz and returns the surface. The returned image
// is reused by the next call.
func (c *Canvas) Render(pz *Puzzle) *image.RGBA {
	c.resize(pz.Surface())
	dc := c.dc
	dc.SetColor(backgroundColor)
	dc.Clear()

	c.refit(pz)
	if c.scaled == nil {
		return c.rgba
	}

	t := pz.Translate()
	box := pz.Preview()

	dc.Push()
	dc.Translate(t.X, t.Y)

	dc.Push()
	dc.Translate(box.X, box.Y)
	dc.DrawImage(c.preview, 0, 0)
	dc.Pop()

	if pz.Generated() {
		filter := pz.Filter()
		pz.Each(func(_ int, p *Piece) {
			if p.Visible(filter) {
				c.drawPiece(pz, p)
			}
		})
	}

	dc.Pop()
	return c.rgba
}

// drawPiece clips the piece's cell of the fitted image, grown by the tab
// height so protrusions carry picture, to the piece outline, then strokes
// the outline in the colour for its state.
func (c *Canvas) drawPiece(pz *Puzzle, p *Piece) {
	dc := c.dc
	segs := outline(p, p.Pos)
	box := pz.Preview()
	margin := p.metrics().height

	cell := image.Rect(
		int(math.Floor(p.Correct.X-box.X-margin)),
		int(math.Floor(p.Correct.Y-box.Y-margin)),
		int(math.Ceil(p.Correct.X-box.X+p.W+margin)),
		int(math.Ceil(p.Correct.Y-box.Y+p.H+margin)),
	).Intersect(c.scaled.Bounds())

	if !cell.Empty() {
		dc.Push()
		tracePath(dc, segs)
		dc.Clip()
		offset := p.Pos.Sub(p.Correct)
		dc.Translate(box.X+offset.X, box.Y+offset.Y)
		dc.DrawImage(c.scaled.SubImage(cell), 0, 0)
		dc.ResetClip()
		dc.Pop()
	}

	switch pz.outlineState(p) {
	case outlineNone:
		return
	case outlineHint:
		dc.SetColor(hintColor)
	default:
		dc.SetColor(outlineColor)
	}
	tracePath(dc, segs)
	dc.SetLineWidth(outlineWidth * pz.cfg.ScaleMultiplier)
	dc.Stroke()
}
