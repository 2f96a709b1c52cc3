package termview

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/sprout"
)

// navItem is one link in the top row, in terminal columns.
type navItem struct {
	Href  string
	Label string
	Col   int
	Width int
}

// navLayout places links on row 0 after the brand label. Each item is a
// marker column, the label and a trailing space.
func navLayout(links []sprout.NavLink, brand string) []navItem {
	col := 1 + utf8.RuneCountInString(brand) + 3
	items := make([]navItem, 0, len(links))
	for _, l := range links {
		w := utf8.RuneCountInString(l.Label) + 3
		items = append(items, navItem{Href: l.Href, Label: l.Label, Col: col, Width: w})
		col += w
	}
	return items
}

func hitNav(items []navItem, col int) (string, bool) {
	for _, it := range items {
		if col >= it.Col && col < it.Col+it.Width {
			return it.Href, true
		}
	}
	return "", false
}

func colorfulOf(c sprout.RGB) colorful.Color {
	r, g, b := c.Floats()
	return colorful.Color{R: r, G: g, B: b}
}

// blend mixes fg over bg at alpha in RGB space and rounds each channel.
func blend(fg, bg sprout.RGB, alpha float64) sprout.RGB {
	alpha = max(0, min(1, alpha))
	r, g, b := colorfulOf(bg).BlendRgb(colorfulOf(fg), alpha).RGB255()
	return sprout.RGB{R: r, G: g, B: b}
}

func rgb(c sprout.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// glyphFor picks a leaf glyph that grows with the cell's scale.
func glyphFor(scale float64) rune {
	switch {
	case scale < 1.0:
		return '·'
	case scale < 1.1:
		return '•'
	default:
		return '❦'
	}
}

func (v *View) putString(col, row int, s string, style tcell.Style) int {
	for _, r := range s {
		if col >= v.cols {
			break
		}
		v.screen.SetContent(col, row, r, nil, style)
		col++
	}
	return col
}

// Draw renders the current surface state without showing it.
func (v *View) Draw() {
	bg := tcell.StyleDefault.Background(rgb(v.cfg.Background)).Foreground(rgb(sprout.LightTone))
	v.screen.SetStyle(bg)
	v.screen.Clear()

	scroll := v.page.Environment().ScrollY()
	v.drawField()
	v.drawTiltLeaves(scroll)
	v.drawSections(scroll, bg)
	v.drawNav(bg)
	v.drawDateStamp(bg)
}

func (v *View) drawField() {
	for i := 0; i < v.page.CellCount(); i++ {
		e, ok := v.surface.Get(sprout.CellID(i))
		if !ok || !e.HasTransform {
			continue
		}
		col, row := toTerm(e.Transform.X, e.Transform.Y)
		if col < 0 || row < 1 || col >= v.cols || row >= v.rows {
			continue
		}
		fg := blend(e.Color, v.cfg.Background, e.Opacity)
		style := tcell.StyleDefault.Background(rgb(v.cfg.Background)).Foreground(rgb(fg))
		v.screen.SetContent(col, row, glyphFor(e.Transform.Scale), nil, style)
	}
}

func (v *View) drawTiltLeaves(scroll float64) {
	style := tcell.StyleDefault.Background(rgb(v.cfg.Background)).Foreground(rgb(sprout.DarkTone))
	for i, leaf := range v.page.Document().Leaves {
		c := leaf.Rect.Center()
		if e, ok := v.surface.Get(sprout.LeafID(i)); ok && e.HasTransform {
			c.X += e.Transform.X
			c.Y += e.Transform.Y
		}
		col, row := toTerm(c.X, c.Y-scroll)
		if col < 0 || row < 1 || col >= v.cols || row >= v.rows {
			continue
		}
		v.screen.SetContent(col, row, '❦', nil, style)
	}
}

func (v *View) drawSections(scroll float64, base tcell.Style) {
	doc := v.page.Document()
	for _, sec := range doc.Tracked() {
		r := sec.Rect.Offset(0, -scroll)
		c0, r0 := toTerm(r.X, r.Y)
		c1, r1 := toTerm(r.X+r.Width-1, r.Y+r.Height-1)
		if r1 < 1 || r0 >= v.rows {
			continue
		}

		style := base
		if e, ok := v.surface.Get(sprout.SectionID(sec.ID)); ok {
			if e.Has(sprout.ClassFocused) {
				style = style.Foreground(rgb(sprout.LightTone)).Bold(true)
			}
			if e.Has(sprout.ClassDimmed) {
				style = style.Dim(true)
			}
		}
		v.box(c0, r0, c1, r1, style)
		if r0 >= 1 && r0 < v.rows {
			v.putString(c0+2, r0, " "+doc.LinkLabel(sec.ID)+" ", style)
		}
	}
}

// box draws a frame clipped to the rows below the navigation row.
func (v *View) box(c0, r0, c1, r1 int, style tcell.Style) {
	put := func(col, row int, ch rune) {
		if col >= 0 && col < v.cols && row >= 1 && row < v.rows {
			v.screen.SetContent(col, row, ch, nil, style)
		}
	}
	for col := c0 + 1; col < c1; col++ {
		put(col, r0, '─')
		put(col, r1, '─')
	}
	for row := r0 + 1; row < r1; row++ {
		put(c0, row, '│')
		put(c1, row, '│')
	}
	put(c0, r0, '┌')
	put(c1, r0, '┐')
	put(c0, r1, '└')
	put(c1, r1, '┘')
}

func (v *View) drawNav(base tcell.Style) {
	for col := 0; col < v.cols; col++ {
		v.screen.SetContent(col, 0, ' ', nil, base)
	}
	if e, ok := v.surface.Get(sprout.BrandID); ok {
		text := e.Text
		if e.Has(sprout.ClassTyping) {
			text += "▌"
		}
		v.putString(1, 0, text, base.Bold(true))
	}

	for _, it := range v.nav {
		style := base
		marker := ' '
		if e, ok := v.surface.Get(sprout.LinkID(it.Href)); ok {
			switch {
			case e.Has(sprout.ClassSprouting):
				marker = '✿'
			case e.Has(sprout.ClassSelected):
				marker = '❦'
			}
			if e.Has(sprout.ClassSelected) {
				style = style.Reverse(true)
			}
			if e.Has(sprout.ClassDimmed) {
				style = style.Dim(true)
			}
		}
		v.screen.SetContent(it.Col, 0, marker, nil, base.Foreground(rgb(sprout.LightTone)))
		v.putString(it.Col+1, 0, it.Label, style)
	}
}

func (v *View) drawDateStamp(base tcell.Style) {
	if e, ok := v.surface.Get(sprout.DateStampID); ok && e.Text != "" && v.rows > 1 {
		v.putString(1, v.rows-1, "Updated "+e.Text, base.Dim(true))
	}
}
