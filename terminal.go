package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
)

const statusLines = 1

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0e0e0")).Background(lipgloss.Color("#3c3c3c"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fff87")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// halfBlocks down-samples frame to cols x 2*rows pixels and encodes each
// pair of vertically adjacent pixels as an upper half block, foreground on
// top and background below. Runs of identical colour pairs share a style.
func halfBlocks(frame image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	small := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		runStart := 0
		var runTop, runBottom color.RGBA
		for x := 0; x <= cols; x++ {
			var top, bottom color.RGBA
			if x < cols {
				top = small.RGBAAt(x, 2*y)
				bottom = small.RGBAAt(x, 2*y+1)
				if x > runStart && top == runTop && bottom == runBottom {
					continue
				}
			}
			if x > runStart {
				style := lipgloss.NewStyle().
					Foreground(lipgloss.Color(hexColor(runTop))).
					Background(lipgloss.Color(hexColor(runBottom)))
				b.WriteString(style.Render(strings.Repeat("▀", x-runStart)))
			}
			runStart, runTop, runBottom = x, top, bottom
		}
	}
	return b.String()
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// viewport is the drawable terminal area in client units.
func (m *model) viewport() (float64, float64) {
	rows := m.height - statusLines
	if rows < 0 {
		rows = 0
	}
	return float64(m.width), float64(rows * 2)
}

func (m *model) renderFrame() {
	rows := m.height - statusLines
	if m.width <= 0 || rows <= 0 {
		m.frame = ""
		return
	}
	m.frame = halfBlocks(m.canvas.Render(m.puzzle), m.width, rows)
	m.dirty = false
}

func (m model) statusLine() string {
	left := fmt.Sprintf(" %s | view:%s | hints:%v | %s ", m.modeString(), m.puzzle.Filter(), m.puzzle.Hints(), progressLine(m.puzzle))
	var msg string
	switch {
	case m.errorMessage != "":
		msg = errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		msg = successStyle.Render(m.successMessage)
	default:
		msg = " ? help"
	}
	line := statusStyle.Render(left) + " " + msg
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func (m model) modeString() string {
	switch m.mode {
	case ModeSolving:
		return "SOLVING"
	case ModeSolved:
		return "SOLVED"
	case ModeConfirm:
		switch m.confirmAction {
		case ConfirmQuit:
			return "QUIT? (y/n)"
		default:
			return "NEW PUZZLE? (y/n)"
		}
	default:
		return "PLAYING"
	}
}

func (m model) helpView() string {
	lines := []string{
		"jigsaw",
		"",
		"mouse drag     move a piece",
		"s              solve",
		"t              toggle hint outline",
		"v              cycle view: all / border / inner",
		"n              new puzzle",
		"h j k l        pan (shift: faster), 0 reset",
		"u / ctrl+r     undo / redo drop",
		"e              export PNG",
		"y              copy progress to clipboard",
		"?              close help",
		"q              quit",
	}
	box := helpStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height-statusLines, lipgloss.Center, lipgloss.Center, box)
}
