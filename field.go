package sprout

import (
	"math"
	"math/rand/v2"
)

// Pointer response of a single field cell.
const (
	fieldTiltGain   = 0.02
	fieldTiltLimit  = 2.0
	fieldScaleBase  = 0.96
	fieldScaleGain  = 0.26
	fieldAlphaBase  = 0.2
	fieldAlphaGain  = 0.24
	fieldToneGain   = 0.92
	fieldPulseSpeed = 1.4
	fieldPulseStep  = 0.08
	fieldPulseGain  = 0.08
	fieldDriftSpeed = 0.9
	fieldDriftStep  = 0.04
	fieldDriftGain  = 0.006
)

// Influence returns how strongly a pointer at p affects a cell at c, in
// [0, 1], and its quadratic falloff.
func Influence(p, c Vec2, radius float64) (influence, falloff float64) {
	dist := math.Hypot(p.X-c.X, p.Y-c.Y)
	influence = clamp(1-dist/radius, 0, 1)
	return influence, influence * influence
}

// CellTarget is the state a cell eases toward in one frame.
type CellTarget struct {
	Rot, Scale, Opacity, Tone float64
}

// PointerField animates the leaf grid toward pointer-proximity targets.
// It owns its cells; the grid is rebuilt whenever the snapshot viewport
// differs from the one the cells were built for.
type PointerField struct {
	cfg   FieldConfig
	r     Renderer
	rng   *rand.Rand
	cells []Cell
	built Viewport
}

// NewPointerField builds the initial grid for v.
func NewPointerField(cfg FieldConfig, v Viewport, r Renderer, rng *rand.Rand) *PointerField {
	f := &PointerField{cfg: cfg, r: r, rng: rng}
	f.Rebuild(v)
	return f
}

// Rebuild discards every cell and its rendered element, then tiles v anew.
func (f *PointerField) Rebuild(v Viewport) {
	for i := range f.cells {
		f.r.Remove(CellID(i))
	}
	f.cells = BuildGrid(f.cells, v, f.cfg, f.rng)
	f.built = v
	Logger().Debug("leaf field built", "cells", len(f.cells), "width", v.Width, "height", v.Height)
}

// Cells returns the live cells. The slice is owned by the field.
func (f *PointerField) Cells() []Cell {
	return f.cells
}

// Target computes the frame target for cell i.
func (f *PointerField) Target(i int, snap Snapshot) CellTarget {
	c := &f.cells[i]
	p := Vec2{X: snap.Pointer.X, Y: snap.Pointer.Y}
	_, falloff := Influence(p, Vec2{X: c.X, Y: c.Y}, f.cfg.Radius)

	angle := math.Atan2(p.Y-c.Y, p.X-c.X) * 180 / math.Pi
	amp := f.cfg.IdleAmplitude
	if snap.ReducedMotion {
		amp = 0
	}
	t := snap.Seconds()
	pulse := math.Sin(t*fieldPulseSpeed + float64(i)*fieldPulseStep)
	drift := math.Sin(t*fieldDriftSpeed + float64(i)*fieldDriftStep)

	tilt := clamp((angle-c.Base)*fieldTiltGain*falloff, -fieldTiltLimit, fieldTiltLimit)
	return CellTarget{
		Rot:     c.Base + tilt + pulse*fieldPulseGain*amp,
		Scale:   fieldScaleBase + falloff*fieldScaleGain + drift*fieldDriftGain*amp,
		Opacity: fieldAlphaBase + falloff*fieldAlphaGain,
		Tone:    falloff * fieldToneGain,
	}
}

// Update eases every cell one step toward its target and writes the result.
func (f *PointerField) Update(snap Snapshot) {
	if snap.Viewport != f.built {
		f.Rebuild(snap.Viewport)
	}

	k := f.cfg.Smoothing
	if snap.ReducedMotion {
		k = f.cfg.ReducedSmoothing
	}

	for i := range f.cells {
		tg := f.Target(i, snap)
		c := &f.cells[i]
		c.Rot = lerp(c.Rot, tg.Rot, k.Rotation)
		c.Scale = lerp(c.Scale, tg.Scale, k.Scale)
		c.Opacity = lerp(c.Opacity, tg.Opacity, k.Opacity)
		c.Tone = lerp(c.Tone, tg.Tone, k.Tone)

		id := CellID(i)
		f.r.SetTransform(id, Transform{X: c.X, Y: c.Y, Rotation: c.Rot, Scale: c.Scale, Centered: true})
		f.r.SetOpacity(id, c.Opacity)
		f.r.SetColor(id, MixTones(f.cfg.LightTone, f.cfg.DarkTone, c.Tone))
	}
}
