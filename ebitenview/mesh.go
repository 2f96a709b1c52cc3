package ebitenview

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sprout"
)

// leafSteps is the number of segments per cubic when flattening the leaf.
const leafSteps = 6

// maxMeshVerts keeps indices within uint16.
const maxMeshVerts = 1<<16 - 1

// minLeafArea is the smallest on-screen leaf area, in square pixels, that
// is still drawn.
const minLeafArea = 0.25

// leafMesh batches leaves into as few DrawTriangles calls as possible.
type leafMesh struct {
	poly   []sprout.Vec2 // unit leaf centred on the origin
	placed []sprout.Vec2 // poly in screen space for the leaf being added
	verts  []ebiten.Vertex
	inds   []uint16
	white  *ebiten.Image
}

func newLeafMesh() leafMesh {
	return leafMesh{poly: sprout.LeafPolygon(1, leafSteps)}
}

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func (lm *leafMesh) ensureWhitePixel() *ebiten.Image {
	if lm.white == nil {
		lm.white = ebiten.NewImage(1, 1)
		lm.white.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return lm.white
}

// add queues one leaf of side size placed by m, flushing to dst when the
// batch is full. Leaves outside dst or too small to see are skipped.
func (lm *leafMesh) add(dst *ebiten.Image, m [6]float64, size float64, c sprout.RGB, alpha float64) {
	b := dst.Bounds()
	view := sprout.Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())}
	var visible bool
	if lm.placed, visible = placeLeaf(lm.placed[:0], lm.poly, m, size, view); !visible {
		return
	}
	if len(lm.verts)+len(lm.placed)+1 > maxMeshVerts {
		lm.flush(dst)
	}
	lm.verts, lm.inds = appendLeafVertices(lm.verts, lm.inds, lm.placed, c, alpha)
}

// placeLeaf maps the unit leaf poly, scaled to size, through m into dst.
// It reports false when the result misses view or is smaller than
// minLeafArea.
//
// Matrix layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
func placeLeaf(dst, poly []sprout.Vec2, m [6]float64, size float64, view sprout.Rect) ([]sprout.Vec2, bool) {
	sized := [6]float64{m[0] * size, m[1] * size, m[2] * size, m[3] * size, m[4], m[5]}
	dst = sprout.TransformPoints(dst, poly, sized)
	if len(dst) < 3 || !sprout.PolygonBounds(dst).Intersects(view) {
		return dst, false
	}
	return dst, math.Abs(sprout.PolygonArea(dst)) >= minLeafArea
}

// flush draws every queued leaf.
func (lm *leafMesh) flush(dst *ebiten.Image) {
	if len(lm.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	dst.DrawTriangles(lm.verts, lm.inds, lm.ensureWhitePixel(), &op)
	lm.verts = lm.verts[:0]
	lm.inds = lm.inds[:0]
}

// appendLeafVertices appends a fan around the centroid of pts, which are
// already in screen space. Colours are premultiplied by alpha.
func appendLeafVertices(verts []ebiten.Vertex, inds []uint16, pts []sprout.Vec2, c sprout.RGB, alpha float64) ([]ebiten.Vertex, []uint16) {
	n := len(pts)
	if n < 3 {
		return verts, inds
	}
	r, g, bl := c.Floats()
	ca := float32(alpha)
	cr, cg, cb := float32(r)*ca, float32(g)*ca, float32(bl)*ca

	base := len(verts)
	verts = append(verts, ebiten.Vertex{}) // hub, filled below
	var sumX, sumY float64
	for _, p := range pts {
		sumX += p.X
		sumY += p.Y
		verts = append(verts, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			// Untextured: map to center of white pixel (0.5, 0.5)
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	verts[base] = ebiten.Vertex{
		DstX: float32(sumX / float64(n)), DstY: float32(sumY / float64(n)),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
	}

	hub := uint16(base)
	for i := 0; i < n; i++ {
		inds = append(inds, hub, hub+1+uint16(i), hub+1+uint16((i+1)%n))
	}
	return verts, inds
}
