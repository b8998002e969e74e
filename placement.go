package main

import (
	"context"
	"math/rand/v2"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// parkingZones are the regions of legal top-left corners for a piece of a
// given size. The image box is widened by the piece size plus a gap so a
// piece parked in any zone cannot overlap the preview image.
type parkingZones struct {
	surface Rect
	image   Rect
	w, h    float64
}

func newParkingZones(surface, image Rect, w, h float64) parkingZones {
	return parkingZones{surface: surface, image: image, w: w, h: h}
}

// bands split the surface horizontally: left of the widened image box,
// above/below it, and right of it.
func (z parkingZones) leftEdge() float64  { return z.image.X - z.w - placementGap }
func (z parkingZones) rightEdge() float64 { return z.image.X + z.image.W + z.w + placementGap }

// accept classifies a sampled corner and reports whether it lies in one of
// the empty sub-zones of its band.
func (z parkingZones) accept(p Point) bool {
	s := z.surface
	switch {
	case p.X < z.leftEdge():
		return p.X >= s.X && p.Y >= s.Y && p.Y < s.Y+s.H-2*z.h
	case p.X < z.rightEdge():
		above := p.Y > s.Y+z.h && p.Y < z.image.Y-z.h-placementGap
		below := p.Y > z.image.Y+z.image.H+z.h+placementGap && p.Y < s.Y+s.H-z.h-placementGap
		return above || below
	default:
		return p.X < s.X+s.W-z.w-placementGap && p.Y >= s.Y && p.Y < s.Y+s.H-2*z.h
	}
}

// zones lists the same regions as accept as explicit rectangles, in the
// order they are tried for the deterministic fallback.
func (z parkingZones) zones() []Rect {
	s := z.surface
	left := Rect{s.X, s.Y, z.leftEdge() - s.X, s.H - 2*z.h}
	top := Rect{z.leftEdge(), s.Y + z.h, z.rightEdge() - z.leftEdge(), z.image.Y - z.h - placementGap - (s.Y + z.h)}
	bottomY := z.image.Y + z.image.H + z.h + placementGap
	bottom := Rect{z.leftEdge(), bottomY, z.rightEdge() - z.leftEdge(), s.Y + s.H - z.h - placementGap - bottomY}
	right := Rect{z.rightEdge(), s.Y, s.X + s.W - z.w - placementGap - z.rightEdge(), s.H - 2*z.h}
	return []Rect{left, top, bottom, right}
}

// fallback returns a fixed legal corner: the first corner of the first
// non-empty zone, or directly below the image when every zone is empty.
func (z parkingZones) fallback() Point {
	for _, r := range z.zones() {
		if r.W <= 0 || r.H <= 0 {
			continue
		}
		// Open lower bounds in accept; nudge off the edge.
		p := Point{r.X, r.Y}
		if !z.accept(p) {
			p = Point{r.X + r.W/2, r.Y + r.H/2}
		}
		if z.accept(p) {
			return p
		}
	}
	return Point{z.image.X, z.image.Y + z.image.H + placementGap}
}

// sample draws uniform points over the surface until one is accepted or
// the attempt budget runs out.
func (z parkingZones) sample(rng *rand.Rand, attempts int) (Point, bool) {
	s := z.surface
	for i := 0; i < attempts; i++ {
		p := Point{s.X + rng.Float64()*s.W, s.Y + rng.Float64()*s.H}
		if z.accept(p) {
			return p, true
		}
	}
	return Point{}, false
}

// scatter gives every piece a start position in a parking zone. Pieces are
// independent of each other so they are placed concurrently; each piece
// draws from its own stream derived from seed, which keeps the result
// reproducible regardless of scheduling.
func scatter(ctx context.Context, g *Grid, surface, image Rect, attempts int, seed uint64) (int, error) {
	if g.Len() == 0 {
		return 0, ErrNotGenerated
	}
	if attempts <= 0 {
		attempts = defaultPlacementAttempts
	}

	fallbacks := make([]bool, g.Len())
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, p := range g.Pieces {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(seed, uint64(i)))
			z := newParkingZones(surface, image, p.W, p.H)
			pos, ok := z.sample(rng, attempts)
			if !ok {
				pos = z.fallback()
				fallbacks[i] = true
			}
			p.SetPosition(pos.X, pos.Y)
			p.Snapped = false
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	n := 0
	for _, fb := range fallbacks {
		if fb {
			n++
		}
	}
	if n > 0 {
		log.WithFields(logrus.Fields{
			"pieces":   n,
			"attempts": attempts,
			"surface":  surface,
		}).Warn("scatter fell back to fixed positions")
	}
	return n, nil
}
