package sprout

import "math"

// Transform is the combined 2D transform written to an element: a
// translation, a rotation in degrees, and a uniform scale. Rotation and
// scale pivot on the element's centre.
type Transform struct {
	X, Y     float64
	Rotation float64 // degrees
	Scale    float64

	// Centered places the element's centre on (X, Y). Otherwise (X, Y) is
	// an offset from the element's layout position.
	Centered bool
}

// Matrix computes the affine matrix for an element of size w×h whose local
// space spans [0,w]×[0,h]. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-w/2, -h/2) -> Scale -> Rotate -> Translate(pivot)
//
// where pivot is (X, Y) for centred elements and (w/2+X, h/2+Y) otherwise.
func (t Transform) Matrix(w, h float64) [6]float64 {
	s := t.Scale
	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)

	px, py := w/2, h/2
	preTx := -px * s
	preTy := -py * s

	ra := cos * s
	rb := sin * s
	rc := -sin * s
	rd := cos * s
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	ox, oy := t.X, t.Y
	if !t.Centered {
		ox += px
		oy += py
	}
	return [6]float64{ra, rb, rc, rd, rtx + ox, rty + oy}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Translated returns m followed by a translation of (dx, dy).
func Translated(m [6]float64, dx, dy float64) [6]float64 {
	return multiplyAffine([6]float64{1, 0, 0, 1, dx, dy}, m)
}

// TransformPoint applies an affine matrix to a point.
func TransformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
