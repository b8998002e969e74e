package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const captionHeight = 24.0

// captionFace loads the monospace face used for captions and window status.
func captionFace(size float64) (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// progressLine is the one-line summary used by the status bar, the export
// caption and the clipboard.
func progressLine(pz *Puzzle) string {
	placed, total := pz.Progress()
	state := "in progress"
	if pz.Solved() {
		state = "solved"
	}
	return fmt.Sprintf("%dx%d jigsaw: %d/%d placed, %s", pz.cfg.Columns, pz.cfg.Rows, placed, total, state)
}

// exportPNG writes the current frame with a caption strip below it.
func exportPNG(filename string, canvas *Canvas, pz *Puzzle) error {
	if !pz.Generated() {
		return fmt.Errorf("nothing to export: %w", ErrNotGenerated)
	}

	frame := canvas.Render(pz)
	b := frame.Bounds()

	dc := gg.NewContext(b.Dx(), b.Dy()+int(captionHeight))
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(frame, 0, 0)

	face, err := captionFace(14)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	caption := fmt.Sprintf("%s  (%s)", progressLine(pz), time.Now().Format("2006-01-02 15:04"))
	dc.DrawStringAnchored(caption, 6, float64(b.Dy())+captionHeight/2, 0, 0.35)

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	log.WithField("file", filename).Info("exported frame")
	return nil
}

func exportFilename(now time.Time) string {
	return fmt.Sprintf("jigsaw-%s.png", now.Format("20060102-150405"))
}
