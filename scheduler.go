package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg struct {
	session uint64
	at      time.Time
}

// frameScheduler paces redraws for the terminal front end. Each frame
// schedules the next one; ticks are tagged with the session that issued
// them so stopping or starting a new session strands any tick already in
// flight instead of letting it re-schedule.
type frameScheduler struct {
	interval time.Duration
	session  uint64
	running  bool
}

func newFrameScheduler(fps int) *frameScheduler {
	if fps <= 0 {
		fps = defaultFrameRate
	}
	return &frameScheduler{interval: time.Second / time.Duration(fps)}
}

// Start begins a new session and returns the command for its first tick.
func (s *frameScheduler) Start() tea.Cmd {
	s.session++
	s.running = true
	return s.next()
}

func (s *frameScheduler) Stop() {
	s.running = false
}

func (s *frameScheduler) Running() bool { return s.running }

// Accept reports whether msg belongs to the live session.
func (s *frameScheduler) Accept(msg frameMsg) bool {
	return s.running && msg.session == s.session
}

// Next returns the command for the following tick, or nil once stopped.
func (s *frameScheduler) Next() tea.Cmd {
	if !s.running {
		return nil
	}
	return s.next()
}

func (s *frameScheduler) next() tea.Cmd {
	id := s.session
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return frameMsg{session: id, at: t}
	})
}
