package ebitenview

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/sprout"
)

var screenView = sprout.Rect{Width: 1024, Height: 768}

func TestPlaceLeafTransformsAndScales(t *testing.T) {
	poly := []sprout.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	m := [6]float64{1, 0, 0, 1, 100, 50}
	pts, ok := placeLeaf(nil, poly, m, 10, screenView)
	if !ok {
		t.Fatal("on-screen leaf should be drawn")
	}
	if pts[0] != (sprout.Vec2{X: 90, Y: 40}) || pts[2] != (sprout.Vec2{X: 110, Y: 60}) {
		t.Errorf("placed = %v", pts)
	}
}

func TestPlaceLeafCulls(t *testing.T) {
	poly := []sprout.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	if _, ok := placeLeaf(nil, poly, [6]float64{1, 0, 0, 1, -50, 300}, 10, screenView); ok {
		t.Error("leaf left of the screen should be culled")
	}
	if _, ok := placeLeaf(nil, poly, [6]float64{1, 0, 0, 1, 500, 2000}, 10, screenView); ok {
		t.Error("leaf below the screen should be culled")
	}
	if _, ok := placeLeaf(nil, poly, [6]float64{0, 0, 0, 0, 500, 300}, 10, screenView); ok {
		t.Error("zero-scale leaf should be culled")
	}
}

func TestAppendLeafVerticesFan(t *testing.T) {
	pts := []sprout.Vec2{{90, 40}, {110, 40}, {110, 60}, {90, 60}}
	verts, inds := appendLeafVertices(nil, nil, pts, sprout.RGB{R: 255, G: 0, B: 0}, 0.5)

	if len(verts) != 5 {
		t.Fatalf("verts = %d, want hub + 4", len(verts))
	}
	if len(inds) != 12 {
		t.Fatalf("indices = %d, want 4 triangles", len(inds))
	}
	hub := verts[0]
	if hub.DstX != 100 || hub.DstY != 50 {
		t.Errorf("hub = (%v, %v), want centroid (100, 50)", hub.DstX, hub.DstY)
	}
	if verts[1].DstX != 90 || verts[1].DstY != 40 {
		t.Errorf("first corner = (%v, %v), want (90, 40)", verts[1].DstX, verts[1].DstY)
	}
	// Premultiplied colour.
	if verts[1].ColorR != 0.5 || verts[1].ColorA != 0.5 || verts[1].ColorG != 0 {
		t.Errorf("colour = %v/%v/%v", verts[1].ColorR, verts[1].ColorG, verts[1].ColorA)
	}
	// The last triangle closes back to the first outline vertex.
	if inds[9] != 0 || inds[10] != 4 || inds[11] != 1 {
		t.Errorf("closing triangle = %v", inds[9:12])
	}
}

func TestAppendLeafVerticesOffsetsIndices(t *testing.T) {
	pts := []sprout.Vec2{{0, 0}, {1, 0}, {0, 1}}
	verts, inds := appendLeafVertices(nil, nil, pts, sprout.LightTone, 1)
	verts, inds = appendLeafVertices(verts, inds, pts, sprout.LightTone, 1)
	if len(verts) != 8 {
		t.Fatalf("verts = %d, want 8", len(verts))
	}
	if inds[9] != 4 {
		t.Errorf("second hub index = %d, want 4", inds[9])
	}
}

func TestAppendLeafVerticesDegenerate(t *testing.T) {
	verts, inds := appendLeafVertices(nil, nil, []sprout.Vec2{{0, 0}, {1, 1}}, sprout.LightTone, 1)
	if len(verts) != 0 || len(inds) != 0 {
		t.Error("fewer than 3 points should add nothing")
	}
}

func TestLeafMeshPolygon(t *testing.T) {
	lm := newLeafMesh()
	if len(lm.poly) < 3 {
		t.Fatalf("leaf polygon has %d points", len(lm.poly))
	}
	b := sprout.PolygonBounds(lm.poly)
	if b.Width > 1 || b.Height > 1 {
		t.Errorf("unit leaf bounds %+v", b)
	}
}

func TestNavLayout(t *testing.T) {
	links := []sprout.NavLink{{Href: "#about", Label: "About"}, {Href: "#contact", Label: "Contact"}}
	items := navLayout(links, "Jane")
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
	if items[1].Rect.X <= items[0].Rect.X+items[0].Rect.Width {
		t.Error("items overlap")
	}
	wantW := float64(7*charW + 2*navPad + navLeafSz)
	if items[1].Rect.Width != wantW {
		t.Errorf("width = %v, want %v", items[1].Rect.Width, wantW)
	}
	if items[0].Rect.Bottom() > navHeight {
		t.Error("item taller than the bar")
	}
}

func TestHitNav(t *testing.T) {
	items := navLayout([]sprout.NavLink{{Href: "#about", Label: "About"}}, "")
	c := items[0].Rect.Center()
	if href, ok := hitNav(items, c.X, c.Y); !ok || href != "#about" {
		t.Errorf("hit = %q/%v", href, ok)
	}
	if _, ok := hitNav(items, c.X, 200); ok {
		t.Error("point below the bar should miss")
	}
}

func TestWithAlpha(t *testing.T) {
	c := withAlpha(color.RGBA{R: 10, G: 20, B: 30, A: 255}, 0.5)
	if c.R != 10 || c.A != 127 {
		t.Errorf("withAlpha = %+v", c)
	}
	if withAlpha(color.RGBA{A: 255}, 2).A != 255 {
		t.Error("alpha should clamp")
	}
}

func TestToNRGBAUnpremultiplies(t *testing.T) {
	img := toNRGBA([]byte{64, 32, 0, 128, 255, 255, 255, 255}, 2, 1)
	if img.Pix[0] != 127 || img.Pix[1] != 63 || img.Pix[3] != 128 {
		t.Errorf("first pixel = %v", img.Pix[:4])
	}
	if img.Pix[4] != 255 || img.Pix[7] != 255 {
		t.Errorf("opaque pixel changed: %v", img.Pix[4:8])
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := map[string]string{
		"":              "unlabeled",
		"  ":            "unlabeled",
		"contact view":  "contact_view",
		"a/b:c":         "a_b_c",
		"frame-1.final": "frame-1.final",
	}
	for in, want := range tests {
		if got := sanitizeLabel(in); got != want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	img := toNRGBA(make([]byte, 4*3*2), 3, 2)
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("decoded %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRunConfigDefaults(t *testing.T) {
	var c RunConfig
	c.applyDefaults()
	if c.Width != 1024 || c.Height != 768 || c.WheelStep != 60 || c.ScreenshotDir == "" {
		t.Errorf("defaults = %+v", c)
	}
}
