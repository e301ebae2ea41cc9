package spritekit

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of a RenderOptions value
// simultaneously. Create one via the convenience constructors (TweenOpacity,
// TweenScale, TweenRotation, TweenTint) and call Update(dtMs) each frame; the
// group writes the interpolated values straight into the options.
//
// Durations and deltas are in milliseconds, matching Scheduler.Tick.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	from   [4]float64
	Done   bool
}

// Update advances all tweens by dtMs and writes their values to the target
// fields.
func (g *TweenGroup) Update(dtMs float64) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dtMs))
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds every tween to its start value.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
		*g.fields[i] = g.from[i]
	}
	g.Done = false
}

func (g *TweenGroup) add(field *float64, to float64, durationMs float64, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), float32(durationMs), fn)
	g.fields[g.count] = field
	g.from[g.count] = *field
	g.count++
}

// TweenOpacity fades opts.Opacity to the target value.
func TweenOpacity(opts *RenderOptions, to, durationMs float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&opts.Opacity, to, durationMs, fn)
	return g
}

// TweenScale animates opts.Scale to the target value.
func TweenScale(opts *RenderOptions, to, durationMs float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&opts.Scale, to, durationMs, fn)
	return g
}

// TweenRotation animates opts.Rotation (degrees) to the target value.
func TweenRotation(opts *RenderOptions, to, durationMs float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&opts.Rotation, to, durationMs, fn)
	return g
}

// TweenTint animates all four components of opts.Tint to the target color.
func TweenTint(opts *RenderOptions, to Color, durationMs float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&opts.Tint.R, to.R, durationMs, fn)
	g.add(&opts.Tint.G, to.G, durationMs, fn)
	g.add(&opts.Tint.B, to.B, durationMs, fn)
	g.add(&opts.Tint.A, to.A, durationMs, fn)
	return g
}
