package main

import (
	"context"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// windowGame is the ebiten front end. Layout, Update and Draw all run on
// ebiten's game loop, so the session needs no locking.
type windowGame struct {
	config *Config
	puzzle *Puzzle
	canvas *Canvas
	sound  SoundPlayer
	face   font.Face

	buffer  *ebiten.Image
	status  string
	expires time.Time
	quit    bool
}

func runWindow(config *Config, img image.Image, sound SoundPlayer) error {
	pz, err := NewPuzzle(*config, img.Bounds())
	if err != nil {
		return err
	}
	face, err := captionFace(14 * config.ScaleMultiplier)
	if err != nil {
		return err
	}
	g := &windowGame{
		config: config,
		puzzle: pz,
		canvas: NewCanvas(img),
		sound:  sound,
		face:   face,
	}

	ebiten.SetWindowTitle("jigsaw")
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.FrameRate)
	return ebiten.RunGame(g)
}

// Layout is called before every Update with the window size in client
// units; the logical screen is the scaled drawing surface.
func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.puzzle.Resize(float64(outsideWidth), float64(outsideHeight))
	s := g.puzzle.Surface()
	w, h := int(math.Ceil(s.W)), int(math.Ceil(s.H))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (g *windowGame) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if !g.puzzle.Generated() && g.puzzle.Surface().W > 0 {
		g.restart()
	}

	g.handleKeys()
	g.handlePointer()

	report := g.puzzle.Advance()
	if report.Snapped > 0 {
		g.sound.Snap()
	}
	if report.Solved {
		g.sound.Solved()
		g.flash("Solved!")
	}
	return nil
}

func (g *windowGame) restart() {
	if err := startPuzzle(context.Background(), g.puzzle); err != nil {
		g.flash(err.Error())
		log.WithError(err).Warn("could not start puzzle")
	}
}

func (g *windowGame) handleKeys() {
	step := float64(panStep*4) * g.config.ScaleMultiplier
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.quit = true
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := g.puzzle.Solve(); err != nil {
			g.flash(err.Error())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.puzzle.ToggleHints(!g.puzzle.Hints())
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.puzzle.SetFilter(g.puzzle.Filter().Next())
		g.flash("view: " + g.puzzle.Filter().String())
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		filename, err := g.config.GetExportPath(exportFilename(time.Now()))
		if err == nil {
			err = exportPNG(filename, g.canvas, g.puzzle)
		}
		if err != nil {
			g.flash(err.Error())
		} else {
			g.flash("exported " + filename)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		if err := writeClipboardText(progressLine(g.puzzle)); err != nil {
			g.flash(err.Error())
		} else {
			g.flash("copied progress")
		}
	case inpututil.IsKeyJustPressed(ebiten.Key0):
		g.puzzle.ResetPan()
	}

	if ebiten.IsKeyPressed(ebiten.KeyH) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.puzzle.Pan(step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyL) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.puzzle.Pan(-step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyK) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.puzzle.Pan(0, step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyJ) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.puzzle.Pan(0, -step)
	}
}

// handlePointer feeds mouse state to the session. Cursor positions arrive
// in surface pixels and are converted back to client units.
func (g *windowGame) handlePointer() {
	mx, my := ebiten.CursorPosition()
	client := Point{float64(mx), float64(my)}.Mul(1 / g.config.ScaleMultiplier)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.puzzle.Press(client)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		r, ok := g.puzzle.Release()
		if !ok {
			return
		}
		if r.Snapped {
			g.sound.Snap()
		}
		if r.Solved {
			g.sound.Solved()
			g.flash("Solved!")
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.puzzle.Move(client)
	}
}

func (g *windowGame) flash(msg string) {
	g.status = msg
	g.expires = time.Now().Add(3 * time.Second)
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	frame := g.canvas.Render(g.puzzle)
	b := frame.Bounds()
	if g.buffer == nil || g.buffer.Bounds().Dx() != b.Dx() || g.buffer.Bounds().Dy() != b.Dy() {
		g.buffer = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.buffer.WritePixels(frame.Pix)
	screen.DrawImage(g.buffer, nil)

	line := progressLine(g.puzzle)
	if g.status != "" && time.Now().Before(g.expires) {
		line += "  " + g.status
	}
	y := screen.Bounds().Dy() - int(8*g.config.ScaleMultiplier)
	text.Draw(screen, line, g.face, int(8*g.config.ScaleMultiplier), y, color.White)
}
