package main

// handlePan shifts the whole rendering. Distances are in surface pixels so
// one step moves about one half-block cell whatever the scale multiplier.
func (m *model) handlePan(key string, speed int) {
	step := float64(panStep*speed) * m.config.ScaleMultiplier
	switch key {
	case "h", "left", "H", "shift+left":
		m.puzzle.Pan(step, 0)
	case "l", "right", "L", "shift+right":
		m.puzzle.Pan(-step, 0)
	case "k", "up", "K", "shift+up":
		m.puzzle.Pan(0, step)
	case "j", "down", "J", "shift+down":
		m.puzzle.Pan(0, -step)
	case "0":
		m.puzzle.ResetPan()
	}
	m.dirty = true
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}
