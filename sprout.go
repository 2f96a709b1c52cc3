package sprout

import (
	"fmt"
	"strconv"
)

// RGB is an 8-bit-per-channel colour. Leaf tones are produced in this
// space and converted by each frontend.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// String formats the colour the way a stylesheet would: "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Floats returns the channels scaled to [0, 1].
func (c RGB) Floats() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Top returns the Y coordinate of the upper edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the Y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Range is a general-purpose min/max range.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp returns the value at fraction t between Min and Max.
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// ElementID names one rendered element. Page-level elements use their
// fragment or selector ("#about", "brand"); generated elements use a
// kind prefix and an index ("cell:12").
type ElementID string

// Element IDs for the fixed page elements.
const (
	BrandID     ElementID = "brand"
	DateStampID ElementID = "date-stamp"
)

// CellID returns the element ID of the i-th leaf field cell.
func CellID(i int) ElementID {
	return ElementID("cell:" + strconv.Itoa(i))
}

// LeafID returns the element ID of the i-th decorative tilt leaf.
func LeafID(i int) ElementID {
	return ElementID("leaf:" + strconv.Itoa(i))
}

// LinkID returns the element ID of the navigation link pointing at a
// section fragment.
func LinkID(fragment string) ElementID {
	return ElementID("link:" + fragment)
}

// SectionID returns the element ID of the section with the given fragment.
func SectionID(fragment string) ElementID {
	return ElementID("section:" + fragment)
}

// RevealID returns the element ID of the i-th reveal-on-scroll element.
func RevealID(i int) ElementID {
	return ElementID("reveal:" + strconv.Itoa(i))
}

// Class is a semantic state flag toggled on an element.
type Class uint8

const (
	ClassSelected  Class = iota // the navigation link of the active section
	ClassSprouting              // activation flourish is playing
	ClassFocused                // section or link is in focus
	ClassDimmed                 // section or link is de-emphasised
	ClassTyping                 // brand label is still being typed
	ClassShow                   // reveal element has scrolled into view
	classCount
)

var classNames = [classCount]string{
	ClassSelected:  "selected-sprout",
	ClassSprouting: "sprouting",
	ClassFocused:   "is-focused",
	ClassDimmed:    "is-dimmed",
	ClassTyping:    "typing",
	ClassShow:      "show",
}

// String returns the stylesheet class name.
func (c Class) String() string {
	if c < classCount {
		return classNames[c]
	}
	return "class(" + strconv.Itoa(int(c)) + ")"
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
