// Package ebitenview renders a sprout page in a desktop window using
// Ebitengine. The page is driven by real cursor, wheel, click and resize
// input.
package ebitenview

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sprout"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool

	// ClearColor fills the window before anything else is drawn.
	ClearColor color.RGBA

	// WheelStep is the scroll distance of one wheel notch, in pixels.
	WheelStep float64

	// ScreenshotDir receives PNGs from script screenshot steps.
	ScreenshotDir string
}

func (c *RunConfig) applyDefaults() {
	if c.Title == "" {
		c.Title = "sprout"
	}
	if c.Width <= 0 {
		c.Width = 1024
	}
	if c.Height <= 0 {
		c.Height = 768
	}
	if c.ClearColor == (color.RGBA{}) {
		c.ClearColor = color.RGBA{R: 246, G: 244, B: 236, A: 255}
	}
	if c.WheelStep <= 0 {
		c.WheelStep = 60
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
}

// Game implements ebiten.Game for a page. Most programs call Run instead.
type Game struct {
	page    *sprout.Page
	surface *sprout.Surface
	cfg     RunConfig

	frames        int64
	width, height int
	inside        bool
	lastX, lastY  int

	nav   []navItem
	mesh  leafMesh
	shots screenshotQueue
	fps   fpsOverlay
}

// NewGame wraps a page whose effects write to surface.
func NewGame(page *sprout.Page, surface *sprout.Surface, cfg RunConfig) *Game {
	cfg.applyDefaults()
	g := &Game{
		page:    page,
		surface: surface,
		cfg:     cfg,
		width:   cfg.Width,
		height:  cfg.Height,
		mesh:    newLeafMesh(),
		shots:   screenshotQueue{dir: cfg.ScreenshotDir},
	}
	g.nav = navLayout(page.Document().Links, page.Document().BrandText)
	page.SetScreenshotFunc(g.Screenshot)
	return g
}

// Run opens a window and drives the page until the window closes or
// Escape is pressed.
func Run(page *sprout.Page, surface *sprout.Surface, cfg RunConfig) error {
	g := NewGame(page, surface, cfg)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// Screenshot queues a labeled capture of the next drawn frame.
func (g *Game) Screenshot(label string) {
	g.shots.add(label)
}

// Update processes input and advances the page by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.processInput()

	g.frames++
	now := time.Duration(g.frames) * time.Second / time.Duration(ebiten.TPS())
	g.page.Update(now)
	g.fps.update(now)
	return nil
}

func (g *Game) processInput() {
	x, y := ebiten.CursorPosition()
	in := ebiten.IsFocused() && x >= 0 && y >= 0 && x < g.width && y < g.height
	switch {
	case in && (!g.inside || x != g.lastX || y != g.lastY):
		g.page.PointerMove(float64(x), float64(y))
	case !in && g.inside:
		g.page.PointerLeave()
	}
	g.inside, g.lastX, g.lastY = in, x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.page.ScrollBy(-wy * g.cfg.WheelStep)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.page.ScrollBy(float64(g.height) * 0.9)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.page.ScrollBy(-float64(g.height) * 0.9)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.page.ScrollTo(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		g.page.ScrollTo(g.page.Environment().MaxScroll())
	}

	if !in || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	fx, fy := float64(x), float64(y)
	if href, ok := hitNav(g.nav, fx, fy); ok {
		g.page.ClickLink(href)
		return
	}
	if id, ok := g.page.SectionAt(fx, fy); ok {
		g.page.ClickSection(id)
	}
}

// Layout follows the window size and forwards changes to the page.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.page.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Draw renders the current surface state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor)

	scroll := g.page.Environment().ScrollY()
	g.drawSections(screen, scroll)
	g.drawField(screen)
	g.drawTiltLeaves(screen, scroll)
	g.drawNav(screen)
	g.drawDateStamp(screen)
	if g.cfg.ShowFPS {
		g.fps.draw(screen)
	}

	g.shots.flush(screen)
}
