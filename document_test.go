package sprout

import (
	"strings"
	"testing"
)

const testPage = `<!doctype html>
<html>
<head><title> Jane Doe </title></head>
<body data-content-height="1900">
  <div class="leaf-field"></div>
  <span class="leaf" data-base-rotation="-12" data-rect="100,100,40,40"></span>
  <span class="leaf" data-rect="600,300,60,20"></span>
  <header>
    <a class="brand" href="/">
      Jane Doe
    </a>
    <nav>
      <a class="nav-link" href="#about">About</a>
      <a class="nav-link" href="#publications">Publications</a>
      <a class="nav-link" href="#contact">Contact</a>
      <a class="nav-link" href="#projects">Projects</a>
      <a class="nav-link" href="#missing">Missing</a>
      <a class="nav-link" href="/cv.pdf">CV</a>
      <a class="nav-link" href="#about">About again</a>
    </nav>
  </header>
  <div class="top-row" data-rect="0,100,1024,500">
    <section id="about" data-rect="0,100,500,500" class="reveal"></section>
    <section id="publications" data-rect="524,100,500,500"></section>
  </div>
  <section id="projects" data-rect="0,900,1024,600" class="reveal"></section>
  <section id="contact" data-rect="0,1600,1024,300"></section>
  <p>Updated <span id="date-stamp"></span></p>
</body>
</html>`

func TestParseDocument(t *testing.T) {
	d, err := ParseDocument(strings.NewReader(testPage))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if d.Title != "Jane Doe" {
		t.Errorf("Title = %q", d.Title)
	}
	if !d.LeafField || !d.HasBrand || !d.HasDateStamp {
		t.Errorf("presence flags = field:%v brand:%v date:%v", d.LeafField, d.HasBrand, d.HasDateStamp)
	}
	if d.BrandText != "Jane Doe" {
		t.Errorf("BrandText = %q", d.BrandText)
	}
	if len(d.Leaves) != 2 {
		t.Fatalf("leaves = %d, want 2", len(d.Leaves))
	}
	if d.Leaves[0].BaseRotation != -12 || d.Leaves[1].BaseRotation != 0 {
		t.Errorf("leaf rotations = %v, %v", d.Leaves[0].BaseRotation, d.Leaves[1].BaseRotation)
	}
	if d.Leaves[1].Rect != (Rect{X: 600, Y: 300, Width: 60, Height: 20}) {
		t.Errorf("leaf rect = %+v", d.Leaves[1].Rect)
	}
	if d.TopRow == nil || d.TopRow.Height != 500 {
		t.Errorf("TopRow = %+v", d.TopRow)
	}
	if len(d.Reveals) != 2 {
		t.Errorf("reveals = %d, want 2", len(d.Reveals))
	}
	if d.ContentHeight != 1900 {
		t.Errorf("ContentHeight = %v", d.ContentHeight)
	}
	if len(d.Links) != 7 {
		t.Errorf("links = %d, want 7", len(d.Links))
	}
}

func TestDocumentTrackedOrderAndFiltering(t *testing.T) {
	d, err := ParseDocument(strings.NewReader(testPage))
	if err != nil {
		t.Fatal(err)
	}
	got := d.Tracked()
	want := []string{"#about", "#publications", "#projects", "#contact"}
	if len(got) != len(want) {
		t.Fatalf("tracked = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("tracked[%d] = %q, want %q", i, got[i].ID, want[i])
		}
	}
	if got[3].Rect.Y != 1600 {
		t.Errorf("#contact rect = %+v", got[3].Rect)
	}
	if d.LinkLabel("#contact") != "Contact" {
		t.Errorf("LinkLabel = %q", d.LinkLabel("#contact"))
	}
}

func TestParseDocumentEmptyPage(t *testing.T) {
	d, err := ParseDocument(strings.NewReader(`<html><body><p>hi</p></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if d.LeafField || d.HasBrand || len(d.Leaves) != 0 || len(d.Tracked()) != 0 || d.TopRow != nil {
		t.Errorf("empty page should have no effect targets: %+v", d)
	}
}

func TestParseDocumentContentHeightFallback(t *testing.T) {
	d, err := ParseDocument(strings.NewReader(`<body><section id="a" data-rect="0,50,10,450"></section></body>`))
	if err != nil {
		t.Fatal(err)
	}
	if d.ContentHeight != 500 {
		t.Errorf("ContentHeight = %v, want 500", d.ContentHeight)
	}
}

func TestParseDocumentBadGeometry(t *testing.T) {
	for _, page := range []string{
		`<section id="a" data-rect="1,2,3"></section>`,
		`<section id="a" data-rect="1,2,x,4"></section>`,
		`<section id="a" data-rect="1,2,-3,4"></section>`,
		`<span class="leaf" data-base-rotation="tilted"></span>`,
		`<body data-content-height="tall"></body>`,
	} {
		if _, err := ParseDocument(strings.NewReader(page)); err == nil {
			t.Errorf("ParseDocument(%q) should fail", page)
		}
	}
}
