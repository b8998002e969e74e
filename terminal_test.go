package main

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHalfBlocks(t *testing.T) {
	frame := solidImage(40, 40, color.RGBA{0x10, 0x20, 0x30, 0xff})
	out := halfBlocks(frame, 8, 3)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, 24, strings.Count(out, "▀"))

	assert.Empty(t, halfBlocks(frame, 0, 3))
	assert.Empty(t, halfBlocks(frame, 3, 0))
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#2b2b2b", hexColor(backgroundColor))
	assert.Equal(t, "#00ff00", hexColor(hintColor))
}

func TestTerminalClient(t *testing.T) {
	assert.Equal(t, Point{0.5, 1}, terminalClient(0, 0))
	assert.Equal(t, Point{10.5, 7}, terminalClient(10, 3))
}
