// Package pngview renders the state of a sprout page into an image with
// the gg 2D library. It needs no window, so it suits snapshots and CI.
package pngview

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/phanxgames/sprout"
)

// Options configures a render.
type Options struct {
	Background sprout.RGB

	// VeinWidth is the stroke width of leaf veins in page pixels.
	VeinWidth float64
}

// DefaultOptions returns the light page palette.
func DefaultOptions() Options {
	return Options{
		Background: sprout.RGB{R: 246, G: 244, B: 236},
		VeinWidth:  1.2,
	}
}

const navHeight = 36

var (
	panelColor = gg.RGBA2(1, 1, 0.99, 0.92)
	focusColor = gg.RGB(132.0/255, 155.0/255, 116.0/255)
	navColor   = gg.RGBA2(1, 1, 1, 0.9)
)

// toMatrix converts a sprout affine matrix [a, b, c, d, tx, ty] into gg's
// row-major layout.
func toMatrix(m [6]float64) gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}

func rgba(c sprout.RGB, alpha float64) gg.RGBA {
	r, g, b := c.Floats()
	return gg.RGBA2(r, g, b, alpha)
}

// Render draws the page's current surface state into a new context sized
// to the page viewport. The caller owns the context.
func Render(page *sprout.Page, surface *sprout.Surface, opts Options) (*gg.Context, error) {
	v := page.Environment().Viewport()
	dc := gg.NewContext(int(v.Width), int(v.Height))
	if err := RenderTo(dc, page, surface, opts); err != nil {
		dc.Close()
		return nil, err
	}
	return dc, nil
}

// SavePNG renders the page and writes it to path.
func SavePNG(page *sprout.Page, surface *sprout.Surface, opts Options, path string) error {
	dc, err := Render(page, surface, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	sprout.Logger().Info("snapshot saved", "path", path)
	return nil
}

// EncodePNG renders the page and encodes it to w.
func EncodePNG(w io.Writer, page *sprout.Page, surface *sprout.Surface, opts Options) error {
	dc, err := Render(page, surface, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// RenderTo draws into an existing context.
func RenderTo(dc *gg.Context, page *sprout.Page, surface *sprout.Surface, opts Options) error {
	r := renderer{dc: dc, page: page, surface: surface, opts: opts}
	dc.ClearWithColor(rgba(opts.Background, 1))
	scroll := page.Environment().ScrollY()
	for _, step := range []func(float64) error{r.sections, r.field, r.tiltLeaves, r.nav} {
		if err := step(scroll); err != nil {
			return err
		}
	}
	return nil
}

type renderer struct {
	dc      *gg.Context
	page    *sprout.Page
	surface *sprout.Surface
	opts    Options
}

// leaf traces the outline and vein in a leaf viewbox placed by m at side
// size, then fills and strokes them.
func (r renderer) leaf(m [6]float64, size float64, c sprout.RGB, alpha float64) error {
	dc := r.dc
	dc.Push()
	defer dc.Pop()
	dc.Transform(toMatrix(m))
	dc.Scale(size/sprout.LeafViewBox, size/sprout.LeafViewBox)
	dc.Translate(-sprout.LeafViewBox/2, -sprout.LeafViewBox/2)

	setColor(dc, rgba(c, alpha))
	tracePath(dc, sprout.LeafOutline)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("fill leaf: %w", err)
	}
	dc.SetLineWidth(r.opts.VeinWidth)
	tracePath(dc, sprout.LeafVein)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke vein: %w", err)
	}
	return nil
}

func tracePath(dc *gg.Context, path []sprout.PathSegment) {
	for _, seg := range path {
		p := seg.Points
		switch seg.Op {
		case sprout.PathMoveTo:
			dc.MoveTo(p[0].X, p[0].Y)
		case sprout.PathLineTo:
			dc.LineTo(p[0].X, p[0].Y)
		case sprout.PathCubicTo:
			dc.CubicTo(p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y)
		case sprout.PathClose:
			dc.ClosePath()
		}
	}
}

// setColor sets a straight-alpha colour.
func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

func (r renderer) fillRect(rect sprout.Rect, c gg.RGBA) error {
	setColor(r.dc, c)
	r.dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	return r.dc.Fill()
}

func (r renderer) sections(scroll float64) error {
	doc := r.page.Document()
	for _, sec := range doc.Tracked() {
		rect := sec.Rect.Offset(0, -scroll)
		if err := r.fillRect(rect, panelColor); err != nil {
			return fmt.Errorf("section %s: %w", sec.ID, err)
		}
		e, ok := r.surface.Get(sprout.SectionID(sec.ID))
		if !ok {
			continue
		}
		if e.Has(sprout.ClassFocused) {
			setColor(r.dc, focusColor)
			r.dc.SetLineWidth(2)
			r.dc.DrawRectangle(rect.X+1, rect.Y+1, rect.Width-2, rect.Height-2)
			if err := r.dc.Stroke(); err != nil {
				return fmt.Errorf("section %s: %w", sec.ID, err)
			}
		}
		if e.Has(sprout.ClassDimmed) {
			if err := r.fillRect(rect, rgba(r.opts.Background, 0.55)); err != nil {
				return fmt.Errorf("section %s: %w", sec.ID, err)
			}
		}
	}
	for i, rect := range doc.Reveals {
		if e, ok := r.surface.Get(sprout.RevealID(i)); ok && e.Has(sprout.ClassShow) {
			continue
		}
		if err := r.fillRect(rect.Offset(0, -scroll), rgba(r.opts.Background, 0.85)); err != nil {
			return fmt.Errorf("reveal %d: %w", i, err)
		}
	}
	return nil
}

func (r renderer) field(float64) error {
	for i := 0; i < r.page.CellCount(); i++ {
		e, ok := r.surface.Get(sprout.CellID(i))
		if !ok || !e.HasTransform {
			continue
		}
		m := sprout.ElementMatrix(e.Transform, sprout.LeafSize, sprout.LeafSize)
		if err := r.leaf(m, sprout.LeafSize, e.Color, e.Opacity); err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
	}
	return nil
}

func (r renderer) tiltLeaves(scroll float64) error {
	for i, leaf := range r.page.Document().Leaves {
		t := sprout.Transform{Rotation: leaf.BaseRotation, Scale: 1}
		if e, ok := r.surface.Get(sprout.LeafID(i)); ok && e.HasTransform {
			t = e.Transform
		}
		rect := leaf.Rect
		m := sprout.Translated(sprout.ElementMatrix(t, rect.Width, rect.Height), rect.X, rect.Y-scroll)
		if err := r.leaf(m, min(rect.Width, rect.Height), sprout.DarkTone, 0.9); err != nil {
			return fmt.Errorf("leaf %d: %w", i, err)
		}
	}
	return nil
}

// nav draws the bar with one pill per link. Selected links get a filled
// pill and a leaf tilted by their flourish.
func (r renderer) nav(float64) error {
	v := r.page.Environment().Viewport()
	if err := r.fillRect(sprout.Rect{Width: v.Width, Height: navHeight}, navColor); err != nil {
		return fmt.Errorf("nav: %w", err)
	}
	x := 16.0
	for _, link := range r.page.Document().Links {
		pill := sprout.Rect{X: x, Y: 8, Width: 72, Height: navHeight - 16}
		x += pill.Width + 8
		e, ok := r.surface.Get(sprout.LinkID(link.Href))
		if !ok || !e.Has(sprout.ClassSelected) {
			continue
		}
		if err := r.fillRect(pill, rgba(sprout.LightTone, 1)); err != nil {
			return fmt.Errorf("nav %s: %w", link.Href, err)
		}
		t := sprout.Transform{
			X: pill.X + pill.Height/2, Y: pill.Y + pill.Height/2,
			Rotation: e.Transform.Rotation, Scale: 1, Centered: true,
		}
		if err := r.leaf(sprout.ElementMatrix(t, pill.Height, pill.Height), pill.Height, sprout.DarkTone, 1); err != nil {
			return fmt.Errorf("nav %s: %w", link.Href, err)
		}
	}
	return nil
}
