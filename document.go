package sprout

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors and attributes the page markup is read with.
const (
	leafFieldSelector = ".leaf-field"
	leafSelector      = ".leaf"
	brandSelector     = ".brand"
	navLinkSelector   = ".nav-link"
	topRowSelector    = ".top-row"
	revealSelector    = ".reveal"
	dateStampSelector = "#date-stamp"

	rectAttr          = "data-rect"
	baseRotationAttr  = "data-base-rotation"
	contentHeightAttr = "data-content-height"
)

// LeafSpec describes one decorative tilt leaf.
type LeafSpec struct {
	BaseRotation float64
	Rect         Rect
}

// NavLink is one navigation menu entry.
type NavLink struct {
	Href  string
	Label string
}

// Document is the page structure the effects attach to. Layout boxes come
// from data-rect="x,y,width,height" attributes in document coordinates,
// standing in for what a browser layout pass would report.
type Document struct {
	Title         string
	LeafField     bool
	Leaves        []LeafSpec
	HasBrand      bool
	BrandText     string
	HasDateStamp  bool
	Links         []NavLink
	TopRow        *Rect
	Reveals       []Rect
	ContentHeight float64

	sections map[string]Rect
	order    map[string]int
}

// LoadDocument reads and parses a page file.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ParseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument reads page markup. Missing elements are not errors; they
// only disable the effects that need them. Malformed geometry is an error.
func ParseDocument(r io.Reader) (*Document, error) {
	html, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	d := &Document{
		Title:    strings.TrimSpace(html.Find("title").First().Text()),
		sections: make(map[string]Rect),
		order:    make(map[string]int),
	}
	var errs []error
	rectOf := func(what string, sel *goquery.Selection) Rect {
		rect, err := parseRect(sel.AttrOr(rectAttr, ""))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", what, rectAttr, err))
		}
		return rect
	}

	d.LeafField = html.Find(leafFieldSelector).Length() > 0
	d.HasDateStamp = html.Find(dateStampSelector).Length() > 0

	if brand := html.Find(brandSelector).First(); brand.Length() > 0 {
		d.HasBrand = true
		d.BrandText = strings.TrimSpace(brand.Text())
	}

	html.Find(leafSelector).Each(func(i int, sel *goquery.Selection) {
		spec := LeafSpec{Rect: rectOf(fmt.Sprintf("leaf %d", i), sel)}
		if raw, ok := sel.Attr(baseRotationAttr); ok {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("leaf %d %s: %w", i, baseRotationAttr, err))
			}
			spec.BaseRotation = v
		}
		d.Leaves = append(d.Leaves, spec)
	})

	html.Find("[id]").Each(func(i int, sel *goquery.Selection) {
		id := "#" + sel.AttrOr("id", "")
		if _, dup := d.order[id]; dup {
			return
		}
		d.order[id] = i
		d.sections[id] = rectOf(id, sel)
	})

	html.Find(navLinkSelector).Each(func(_ int, sel *goquery.Selection) {
		d.Links = append(d.Links, NavLink{
			Href:  sel.AttrOr("href", ""),
			Label: strings.TrimSpace(sel.Text()),
		})
	})

	if top := html.Find(topRowSelector).First(); top.Length() > 0 {
		rect := rectOf("top row", top)
		d.TopRow = &rect
	}

	html.Find(revealSelector).Each(func(i int, sel *goquery.Selection) {
		d.Reveals = append(d.Reveals, rectOf(fmt.Sprintf("reveal %d", i), sel))
	})

	if raw, ok := html.Find("body").Attr(contentHeightAttr); ok {
		h, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("body %s: %w", contentHeightAttr, err))
		}
		d.ContentHeight = h
	} else {
		d.ContentHeight = d.lowestEdge()
	}

	if len(errs) > 0 {
		return nil, errs[0]
	}
	return d, nil
}

// parseRect parses "x,y,width,height". An empty string is the zero rect.
func parseRect(raw string) (Rect, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Rect{}, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("want 4 comma-separated values, got %q", raw)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rect{}, fmt.Errorf("value %d of %q: %w", i, raw, err)
		}
		v[i] = f
	}
	if v[2] < 0 || v[3] < 0 {
		return Rect{}, fmt.Errorf("negative size in %q", raw)
	}
	return Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func (d *Document) lowestEdge() float64 {
	var bottom float64
	for _, r := range d.sections {
		bottom = max(bottom, r.Bottom())
	}
	for _, l := range d.Leaves {
		bottom = max(bottom, l.Rect.Bottom())
	}
	for _, r := range d.Reveals {
		bottom = max(bottom, r.Bottom())
	}
	if d.TopRow != nil {
		bottom = max(bottom, d.TopRow.Bottom())
	}
	return bottom
}

// Section returns the layout box of the element with the given fragment.
func (d *Document) Section(fragment string) (Rect, bool) {
	r, ok := d.sections[fragment]
	return r, ok
}

// Tracked returns the sections reachable from a navigation link with a
// fragment href, each once, in document order.
func (d *Document) Tracked() []SpySection {
	var out []SpySection
	for _, l := range d.Links {
		if !strings.HasPrefix(l.Href, "#") {
			continue
		}
		rect, ok := d.sections[l.Href]
		if !ok {
			continue
		}
		if slices.ContainsFunc(out, func(s SpySection) bool { return s.ID == l.Href }) {
			continue
		}
		out = append(out, SpySection{ID: l.Href, Rect: rect})
	}
	slices.SortStableFunc(out, func(a, b SpySection) int {
		return d.order[a.ID] - d.order[b.ID]
	})
	return out
}

// LinkLabel returns the text of the first navigation link to fragment.
func (d *Document) LinkLabel(fragment string) string {
	for _, l := range d.Links {
		if l.Href == fragment {
			return l.Label
		}
	}
	return ""
}
