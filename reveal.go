package sprout

// Revealer adds the show class to each reveal element the first time
// enough of it is inside the viewport. The class is never removed.
type Revealer struct {
	threshold float64
	r         Renderer
	rects     []Rect
	shown     []bool
	remaining int
}

// NewRevealer returns nil when there are no reveal elements.
func NewRevealer(cfg RevealConfig, rects []Rect, r Renderer) *Revealer {
	if len(rects) == 0 {
		return nil
	}
	return &Revealer{
		threshold: cfg.Threshold,
		r:         r,
		rects:     rects,
		shown:     make([]bool, len(rects)),
		remaining: len(rects),
	}
}

// VisibleFraction returns how much of a document-space rect's height lies
// inside the viewport at the snapshot's scroll offset.
func VisibleFraction(rect Rect, snap Snapshot) float64 {
	top := rect.Top() - snap.ScrollY
	bottom := rect.Bottom() - snap.ScrollY
	if rect.Height <= 0 {
		if top >= 0 && top <= snap.Viewport.Height {
			return 1
		}
		return 0
	}
	overlap := min(bottom, snap.Viewport.Height) - max(top, 0)
	return clamp(overlap/rect.Height, 0, 1)
}

// Update reveals any element that crossed the threshold.
func (v *Revealer) Update(snap Snapshot) {
	if v.remaining == 0 {
		return
	}
	for i, rect := range v.rects {
		if v.shown[i] || VisibleFraction(rect, snap) < v.threshold {
			continue
		}
		v.shown[i] = true
		v.remaining--
		v.r.SetClass(RevealID(i), ClassShow, true)
	}
}

// Done reports whether every element has been revealed.
func (v *Revealer) Done() bool {
	return v.remaining == 0
}
