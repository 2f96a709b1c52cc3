package sprout

import "math"

// LeafViewBox is the side of the square box the leaf paths are drawn in.
const LeafViewBox = 24

// LeafSize is the on-screen side of one leaf cell, in pixels.
const LeafSize = 22

// PathOp is a path drawing command.
type PathOp uint8

const (
	PathMoveTo PathOp = iota
	PathLineTo
	PathCubicTo // Points holds two control points then the end point
	PathClose
)

// PathSegment is one command of a path in absolute coordinates.
type PathSegment struct {
	Op     PathOp
	Points [3]Vec2
}

// End returns the point the segment finishes on.
func (s PathSegment) End() Vec2 {
	if s.Op == PathCubicTo {
		return s.Points[2]
	}
	return s.Points[0]
}

func moveTo(x, y float64) PathSegment {
	return PathSegment{Op: PathMoveTo, Points: [3]Vec2{{x, y}}}
}

func lineTo(x, y float64) PathSegment {
	return PathSegment{Op: PathLineTo, Points: [3]Vec2{{x, y}}}
}

func cubicTo(c1x, c1y, c2x, c2y, x, y float64) PathSegment {
	return PathSegment{Op: PathCubicTo, Points: [3]Vec2{{c1x, c1y}, {c2x, c2y}, {x, y}}}
}

// LeafOutline is the closed outline of a leaf in LeafViewBox units.
var LeafOutline = []PathSegment{
	moveTo(9, 18),
	cubicTo(15.218, 18, 19.5, 14.712, 20, 6),
	lineTo(20, 4),
	lineTo(15.986, 4),
	cubicTo(6.986, 4, 4, 8, 3.986, 13),
	cubicTo(3.986, 14, 3.986, 16, 5.986, 18),
	lineTo(8.986, 18),
	{Op: PathClose},
}

// LeafVein is the open stem stroke in LeafViewBox units.
var LeafVein = []PathSegment{
	moveTo(5, 21),
	cubicTo(5.5, 16.5, 7.5, 13, 12, 11),
}

// FlattenPath converts a path into a polyline, sampling each cubic with
// steps segments. A close command does not repeat the first point.
func FlattenPath(dst []Vec2, path []PathSegment, steps int) []Vec2 {
	steps = max(steps, 1)
	var cur Vec2
	for _, seg := range path {
		switch seg.Op {
		case PathMoveTo, PathLineTo:
			cur = seg.Points[0]
			dst = append(dst, cur)
		case PathCubicTo:
			p0 := cur
			for i := 1; i <= steps; i++ {
				dst = append(dst, cubicPoint(p0, seg.Points[0], seg.Points[1], seg.Points[2], float64(i)/float64(steps)))
			}
			cur = seg.Points[2]
		}
	}
	return dst
}

func cubicPoint(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Vec2{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// LeafPolygon returns the flattened leaf outline scaled from LeafViewBox
// to size and centred on the origin, ready for an element transform.
func LeafPolygon(size float64, steps int) []Vec2 {
	pts := FlattenPath(nil, LeafOutline, steps)
	k := size / LeafViewBox
	for i := range pts {
		pts[i] = Vec2{X: (pts[i].X - LeafViewBox/2) * k, Y: (pts[i].Y - LeafViewBox/2) * k}
	}
	return pts
}

// PolygonArea returns the signed shoelace area of a closed polygon.
func PolygonArea(pts []Vec2) float64 {
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return sum / 2
}

// ElementMatrix returns the affine matrix that places a shape centred on
// the origin according to t, for an element of size w×h.
func ElementMatrix(t Transform, w, h float64) [6]float64 {
	return multiplyAffine(t.Matrix(w, h), [6]float64{1, 0, 0, 1, w / 2, h / 2})
}

// TransformPoints maps src through m into dst.
func TransformPoints(dst, src []Vec2, m [6]float64) []Vec2 {
	for _, p := range src {
		x, y := TransformPoint(m, p.X, p.Y)
		dst = append(dst, Vec2{X: x, Y: y})
	}
	return dst
}

// PolygonBounds returns the bounding box of pts.
func PolygonBounds(pts []Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
