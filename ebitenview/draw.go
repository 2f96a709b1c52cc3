package ebitenview

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/sprout"
)

// Debug font metrics used by ebitenutil.DebugPrintAt.
const (
	charW = 6
	charH = 16
)

const (
	navHeight  = 36
	navPad     = 12
	navGap     = 6
	brandLeft  = 16
	navLeafSz  = 12
	tiltLeafSz = 0.9
)

var (
	panelColor   = color.NRGBA{R: 255, G: 255, B: 252, A: 235}
	focusColor   = color.NRGBA{R: 132, G: 155, B: 116, A: 255}
	dimOverlay   = color.NRGBA{R: 246, G: 244, B: 236, A: 140}
	navBarColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 230}
	navFocus     = color.NRGBA{R: 225, G: 233, B: 218, A: 255}
	fpsBackdrop  = color.NRGBA{A: 128}
	hiddenReveal = 0.85
)

// navItem is one link in the navigation bar.
type navItem struct {
	Href  string
	Label string
	Rect  sprout.Rect
}

// navLayout places links left to right after the brand label.
func navLayout(links []sprout.NavLink, brand string) []navItem {
	x := float64(brandLeft + utf8.RuneCountInString(brand)*charW + 4*navPad)
	items := make([]navItem, 0, len(links))
	for _, l := range links {
		w := float64(utf8.RuneCountInString(l.Label)*charW + 2*navPad + navLeafSz)
		items = append(items, navItem{
			Href:  l.Href,
			Label: l.Label,
			Rect:  sprout.Rect{X: x, Y: 4, Width: w, Height: navHeight - 8},
		})
		x += w + navGap
	}
	return items
}

// hitNav returns the href of the item under (x, y).
func hitNav(items []navItem, x, y float64) (string, bool) {
	for _, it := range items {
		if it.Rect.Contains(x, y) {
			return it.Href, true
		}
	}
	return "", false
}

// withAlpha returns an opaque colour at alpha k.
func withAlpha(c color.RGBA, k float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 * clamp01(k))}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

func fillRect(dst *ebiten.Image, r sprout.Rect, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c, false)
}

func (g *Game) drawSections(screen *ebiten.Image, scroll float64) {
	doc := g.page.Document()
	for _, sec := range doc.Tracked() {
		r := sec.Rect.Offset(0, -scroll)
		if r.Bottom() < 0 || r.Top() > float64(g.height) {
			continue
		}
		fillRect(screen, r, panelColor)
		if e, ok := g.surface.Get(sprout.SectionID(sec.ID)); ok {
			if e.Has(sprout.ClassFocused) {
				vector.StrokeRect(screen, float32(r.X+1), float32(r.Y+1), float32(r.Width-2), float32(r.Height-2), 2, focusColor, false)
			}
			if e.Has(sprout.ClassDimmed) {
				fillRect(screen, r, dimOverlay)
			}
		}
		ebitenutil.DebugPrintAt(screen, doc.LinkLabel(sec.ID), int(r.X)+navPad, int(r.Y)+navPad)
	}

	// Reveal elements stay faded until they are shown.
	for i, rect := range doc.Reveals {
		if e, ok := g.surface.Get(sprout.RevealID(i)); ok && e.Has(sprout.ClassShow) {
			continue
		}
		fillRect(screen, rect.Offset(0, -scroll), withAlpha(g.cfg.ClearColor, hiddenReveal))
	}
}

func (g *Game) drawField(screen *ebiten.Image) {
	for i := 0; i < g.page.CellCount(); i++ {
		e, ok := g.surface.Get(sprout.CellID(i))
		if !ok || !e.HasTransform {
			continue
		}
		m := sprout.ElementMatrix(e.Transform, sprout.LeafSize, sprout.LeafSize)
		g.mesh.add(screen, m, sprout.LeafSize, e.Color, e.Opacity)
	}
	g.mesh.flush(screen)
}

func (g *Game) drawTiltLeaves(screen *ebiten.Image, scroll float64) {
	for i, leaf := range g.page.Document().Leaves {
		t := sprout.Transform{Rotation: leaf.BaseRotation, Scale: 1}
		if e, ok := g.surface.Get(sprout.LeafID(i)); ok && e.HasTransform {
			t = e.Transform
		}
		r := leaf.Rect
		m := sprout.Translated(sprout.ElementMatrix(t, r.Width, r.Height), r.X, r.Y-scroll)
		g.mesh.add(screen, m, min(r.Width, r.Height)*tiltLeafSz, sprout.DarkTone, 0.9)
	}
	g.mesh.flush(screen)
}

func (g *Game) drawNav(screen *ebiten.Image) {
	fillRect(screen, sprout.Rect{Width: float64(g.width), Height: navHeight}, navBarColor)

	if e, ok := g.surface.Get(sprout.BrandID); ok {
		text := e.Text
		if e.Has(sprout.ClassTyping) {
			text += "|"
		}
		ebitenutil.DebugPrintAt(screen, text, brandLeft, (navHeight-charH)/2)
	}

	for _, it := range g.nav {
		e, ok := g.surface.Get(sprout.LinkID(it.Href))
		if ok && e.Has(sprout.ClassFocused) {
			fillRect(screen, it.Rect, navFocus)
		}
		textX := int(it.Rect.X) + navPad + navLeafSz
		ebitenutil.DebugPrintAt(screen, it.Label, textX, int(it.Rect.Y)+(int(it.Rect.Height)-charH)/2)
		if !ok {
			continue
		}
		if e.Has(sprout.ClassSelected) || e.Has(sprout.ClassSprouting) {
			t := sprout.Transform{
				X:        it.Rect.X + navPad/2 + navLeafSz/2,
				Y:        it.Rect.Y + it.Rect.Height/2,
				Rotation: e.Transform.Rotation,
				Scale:    1,
				Centered: true,
			}
			g.mesh.add(screen, sprout.ElementMatrix(t, navLeafSz, navLeafSz), navLeafSz, sprout.DarkTone, 1)
		}
		if e.Has(sprout.ClassSelected) {
			underline := sprout.Rect{X: float64(textX), Y: it.Rect.Bottom() - 3, Width: it.Rect.Width - navPad*2 - navLeafSz, Height: 2}
			fillRect(screen, underline, focusColor)
		}
	}
	g.mesh.flush(screen)
}

func (g *Game) drawDateStamp(screen *ebiten.Image) {
	if e, ok := g.surface.Get(sprout.DateStampID); ok && e.Text != "" {
		ebitenutil.DebugPrintAt(screen, "Updated "+e.Text, brandLeft, g.height-charH-8)
	}
}
