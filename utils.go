package main

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// startPuzzle cuts a fresh grid and scatters it.
func startPuzzle(ctx context.Context, pz *Puzzle) error {
	if err := pz.Generate(); err != nil {
		return err
	}
	return pz.Scatter(ctx)
}

func writeClipboardText(text string) error {
	if runtime.GOOS == "darwin" {
		cmd := exec.Command("pbcopy")
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return clipboard.WriteAll(text)
}

// terminalClient maps a terminal cell to client units. Each cell is one
// unit wide and two half-block pixels tall; the centre of the cell is used.
func terminalClient(x, y int) Point {
	return Point{float64(x) + 0.5, float64(2*y) + 1}
}
