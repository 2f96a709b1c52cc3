package sprout

import "time"

// Pointer is the most recent pointer sample.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Viewport is the visible window size in CSS-pixel units.
type Viewport struct {
	Width, Height float64
}

// Center returns the midpoint of the viewport.
func (v Viewport) Center() Vec2 {
	return Vec2{X: v.Width * 0.5, Y: v.Height * 0.5}
}

// Snapshot is the read-only view of the environment handed to every
// animator for one frame. All consumers of a frame see the same values.
type Snapshot struct {
	Time          time.Duration // elapsed since the page started
	Frame         uint64
	Pointer       Pointer
	Viewport      Viewport
	ScrollY       float64
	ContentHeight float64
	ReducedMotion bool
}

// Seconds returns Time in seconds.
func (s Snapshot) Seconds() float64 {
	return s.Time.Seconds()
}

// Environment holds the mutable signals written by input events. Handlers
// write to it; animators only ever see Snapshots. Last write wins.
type Environment struct {
	pointer       Pointer
	viewport      Viewport
	scrollY       float64
	contentHeight float64
	reducedMotion bool
	frame         uint64
}

// NewEnvironment creates an environment for the given viewport. The pointer
// starts at the viewport centre and inactive.
func NewEnvironment(viewport Viewport, contentHeight float64, reducedMotion bool) *Environment {
	e := &Environment{
		viewport:      viewport,
		contentHeight: contentHeight,
		reducedMotion: reducedMotion,
	}
	c := viewport.Center()
	e.pointer = Pointer{X: c.X, Y: c.Y}
	return e
}

// PointerMove records a new pointer position and marks the pointer active.
func (e *Environment) PointerMove(x, y float64) {
	e.pointer = Pointer{X: x, Y: y, Active: true}
}

// PointerLeave parks the pointer at the viewport centre and marks it inactive.
func (e *Environment) PointerLeave() {
	c := e.viewport.Center()
	e.pointer = Pointer{X: c.X, Y: c.Y}
}

// Resize records a new viewport size. The scroll offset is clamped to the
// new scrollable range.
func (e *Environment) Resize(width, height float64) {
	e.viewport = Viewport{Width: width, Height: height}
	e.ScrollTo(e.scrollY)
}

// ScrollTo sets the vertical scroll offset, clamped to [0, maxScroll].
func (e *Environment) ScrollTo(y float64) {
	e.scrollY = clamp(y, 0, e.MaxScroll())
}

// ScrollBy moves the scroll offset by dy.
func (e *Environment) ScrollBy(dy float64) {
	e.ScrollTo(e.scrollY + dy)
}

// MaxScroll returns the largest valid scroll offset.
func (e *Environment) MaxScroll() float64 {
	return max(0, e.contentHeight-e.viewport.Height)
}

// SetReducedMotion records the user's motion preference.
func (e *Environment) SetReducedMotion(reduced bool) {
	e.reducedMotion = reduced
}

// Viewport returns the current viewport.
func (e *Environment) Viewport() Viewport {
	return e.viewport
}

// ScrollY returns the current scroll offset.
func (e *Environment) ScrollY() float64 {
	return e.scrollY
}

// Snapshot captures the environment for one frame at time now.
func (e *Environment) Snapshot(now time.Duration) Snapshot {
	e.frame++
	return Snapshot{
		Time:          now,
		Frame:         e.frame,
		Pointer:       e.pointer,
		Viewport:      e.viewport,
		ScrollY:       e.scrollY,
		ContentHeight: e.contentHeight,
		ReducedMotion: e.reducedMotion,
	}
}
