package sprout

// Pointer response of a tilt leaf.
const (
	tiltRotGainX   = 0.028
	tiltRotLimitX  = 10.0
	tiltRotGainY   = 0.012
	tiltRotLimitY  = 5.0
	tiltShiftGain  = 0.02
	tiltShiftLimit = 10.0
)

// TiltLeaf is the eased state of one decorative leaf.
type TiltLeaf struct {
	Base    float64 // design-time rotation in degrees
	X, Y, R float64

	// Rect is the leaf's layout box in document space.
	Rect             Rect
	AnchorX, AnchorY float64
}

// TiltAnimator drives a fixed set of decorative leaves toward a
// pointer-derived offset and rotation.
type TiltAnimator struct {
	ease   float64
	r      Renderer
	leaves []TiltLeaf
	built  Viewport
}

// NewTiltAnimator returns nil when reduced motion is requested or there are
// no leaves: the effect is suppressed entirely in both cases.
func NewTiltAnimator(cfg TiltConfig, specs []LeafSpec, snap Snapshot, r Renderer) *TiltAnimator {
	if snap.ReducedMotion || len(specs) == 0 {
		return nil
	}
	a := &TiltAnimator{ease: cfg.Ease, r: r, leaves: make([]TiltLeaf, len(specs))}
	for i, spec := range specs {
		a.leaves[i] = TiltLeaf{Base: spec.BaseRotation, R: spec.BaseRotation, Rect: spec.Rect}
	}
	a.RecalcAnchors(snap)
	return a
}

// Leaves returns the live leaf states. The slice is owned by the animator.
func (a *TiltAnimator) Leaves() []TiltLeaf {
	return a.leaves
}

// RecalcAnchors caches each leaf's viewport-space centre for the current
// scroll offset. Anchors go stale as the page scrolls until the next resize.
func (a *TiltAnimator) RecalcAnchors(snap Snapshot) {
	for i := range a.leaves {
		l := &a.leaves[i]
		c := l.Rect.Center()
		l.AnchorX = c.X
		l.AnchorY = c.Y - snap.ScrollY
	}
	a.built = snap.Viewport
}

// Update eases every leaf one step toward its target and writes the result.
func (a *TiltAnimator) Update(snap Snapshot) {
	if snap.Viewport != a.built {
		a.RecalcAnchors(snap)
	}
	for i := range a.leaves {
		l := &a.leaves[i]
		dx := snap.Pointer.X - l.AnchorX
		dy := snap.Pointer.Y - l.AnchorY

		targetR := l.Base + clamp(dx*tiltRotGainX, -tiltRotLimitX, tiltRotLimitX) +
			clamp(dy*tiltRotGainY, -tiltRotLimitY, tiltRotLimitY)
		targetX := clamp(dx*tiltShiftGain, -tiltShiftLimit, tiltShiftLimit)
		targetY := clamp(dy*tiltShiftGain, -tiltShiftLimit, tiltShiftLimit)

		l.R = lerp(l.R, targetR, a.ease)
		l.X = lerp(l.X, targetX, a.ease)
		l.Y = lerp(l.Y, targetY, a.ease)

		a.r.SetTransform(LeafID(i), Transform{X: l.X, Y: l.Y, Rotation: l.R, Scale: 1})
	}
}
