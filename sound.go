package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundPlayer plays the snap and solve cues.
type SoundPlayer interface {
	Snap()
	Solved()
	Close()
}

type silentPlayer struct{}

func (silentPlayer) Snap()   {}
func (silentPlayer) Solved() {}
func (silentPlayer) Close()  {}

type beepPlayer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// newSoundPlayer returns a speaker-backed player when enabled. A missing
// audio device is not fatal; the game carries on silently.
func newSoundPlayer(enabled bool) SoundPlayer {
	if !enabled {
		return silentPlayer{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		log.WithError(err).Warn("audio unavailable, sound disabled")
		return silentPlayer{}
	}
	bp := &beepPlayer{mixer: &beep.Mixer{}}
	speaker.Play(bp.mixer)
	return bp
}

func (bp *beepPlayer) play(s beep.Streamer) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.closed {
		return
	}
	speaker.Lock()
	bp.mixer.Add(s)
	speaker.Unlock()
}

// Snap is a short two-partial bell.
func (bp *beepPlayer) Snap() {
	bp.play(beep.Mix(
		withVolume(newTone(880, soundDuration), 0.35),
		withVolume(newTone(1760, soundDuration), 0.15),
	))
}

// Solved is a rising three-note arpeggio.
func (bp *beepPlayer) Solved() {
	bp.play(beep.Seq(
		withVolume(newTone(523.25, soundDuration), 0.4),
		withVolume(newTone(659.25, soundDuration), 0.4),
		withVolume(newTone(783.99, 2*soundDuration), 0.4),
	))
}

func (bp *beepPlayer) Close() {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.closed {
		return
	}
	bp.closed = true
	speaker.Lock()
	bp.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// tone is a sine wave with a linear release over its whole length.
type tone struct {
	freq     float64
	phase    float64
	position int
	total    int
}

func newTone(freq float64, d time.Duration) beep.Streamer {
	return &tone{freq: freq, total: sampleRate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}
		vol := 1 - float64(t.position)/float64(t.total)
		v := math.Sin(2*math.Pi*t.phase) * vol
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
