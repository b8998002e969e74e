package main

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestCanvasRenderSolvedPuzzle(t *testing.T) {
	pz := newTestPuzzle(t, 3, 3)
	for _, p := range pz.Grid().Pieces {
		p.Snap()
	}
	canvas := NewCanvas(solidImage(300, 200, color.RGBA{0xff, 0, 0, 0xff}))

	frame := canvas.Render(pz)
	require.Equal(t, image.Rect(0, 0, 800, 600), frame.Bounds())

	assert.Equal(t, backgroundColor, frame.RGBAAt(1, 1))

	box := pz.Preview()
	c := frame.RGBAAt(int(box.X+box.W/2), int(box.Y+box.H/2))
	assert.Greater(t, c.R, uint8(200))
	assert.Less(t, c.G, uint8(50))
	assert.Equal(t, uint8(0xff), c.A)
}

func TestCanvasRenderLoosePiece(t *testing.T) {
	pz := newTestPuzzle(t, 3, 3)
	p := pz.Grid().Pieces[4]
	p.SetPosition(20, 20)
	canvas := NewCanvas(solidImage(300, 200, color.RGBA{0, 0, 0xff, 0xff}))

	frame := canvas.Render(pz)
	c := frame.RGBAAt(int(20+p.W/2), int(20+p.H/2))
	assert.Greater(t, c.B, uint8(200))

	// Hidden by the filter, the piece leaves only background behind.
	pz.SetFilter(ViewBorderOnly)
	frame = canvas.Render(pz)
	assert.Equal(t, backgroundColor, frame.RGBAAt(int(20+p.W/2), int(20+p.H/2)))
}

func TestCanvasFollowsResize(t *testing.T) {
	pz := newTestPuzzle(t, 2, 2)
	canvas := NewCanvas(solidImage(300, 200, color.White))
	require.Equal(t, 800, canvas.Render(pz).Bounds().Dx())

	pz.Resize(200, 100)
	assert.Equal(t, image.Rect(0, 0, 400, 200), canvas.Render(pz).Bounds())
}

func TestCanvasBeforeLayout(t *testing.T) {
	pz, err := NewPuzzle(testConfig(), image.Rect(0, 0, 300, 200))
	require.NoError(t, err)
	canvas := NewCanvas(solidImage(300, 200, color.White))

	frame := canvas.Render(pz)
	assert.Equal(t, image.Rect(0, 0, 1, 1), frame.Bounds())
}
