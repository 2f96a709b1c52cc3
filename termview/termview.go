// Package termview renders a sprout page in a terminal using tcell. Each
// terminal cell stands for a CellWidth×CellHeight block of page pixels, so
// the page effects run unchanged on a coarse grid.
package termview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/sprout"
)

// Page pixels covered by one terminal cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Config configures a View.
type Config struct {
	TickRate   time.Duration
	ScrollStep float64
	Background sprout.RGB

	// CaptureDir receives text captures from script screenshot steps and
	// the p key.
	CaptureDir string
}

func (c *Config) applyDefaults() {
	if c.TickRate <= 0 {
		c.TickRate = 16 * time.Millisecond // ~60 FPS
	}
	if c.ScrollStep <= 0 {
		c.ScrollStep = 3 * CellHeight
	}
	if c.Background == (sprout.RGB{}) {
		c.Background = sprout.RGB{R: 22, G: 26, B: 20}
	}
	if c.CaptureDir == "" {
		c.CaptureDir = "screenshots"
	}
}

// ViewportFor returns the page viewport covered by a cols×rows terminal.
func ViewportFor(cols, rows int) sprout.Viewport {
	return sprout.Viewport{Width: float64(cols * CellWidth), Height: float64(rows * CellHeight)}
}

// toTerm maps a page pixel to a terminal cell.
func toTerm(x, y float64) (int, int) {
	return int(floorDiv(x, CellWidth)), int(floorDiv(y, CellHeight))
}

// toPage maps a terminal cell to the page pixel at its centre.
func toPage(col, row int) (float64, float64) {
	return float64(col*CellWidth + CellWidth/2), float64(row*CellHeight + CellHeight/2)
}

func floorDiv(v, d float64) float64 {
	q := v / d
	if q < 0 && q != float64(int(q)) {
		return float64(int(q) - 1)
	}
	return float64(int(q))
}

// View drives a page from terminal events and draws it every tick.
type View struct {
	screen  tcell.Screen
	page    *sprout.Page
	surface *sprout.Surface
	cfg     Config

	cols, rows int
	pressed    bool
	nav        []navItem
}

// New wraps an initialised screen. The page viewport should match
// ViewportFor(screen.Size()).
func New(screen tcell.Screen, page *sprout.Page, surface *sprout.Surface, cfg Config) *View {
	cfg.applyDefaults()
	v := &View{screen: screen, page: page, surface: surface, cfg: cfg}
	v.cols, v.rows = screen.Size()
	v.nav = navLayout(page.Document().Links, page.Document().BrandText)
	page.SetScreenshotFunc(v.capture)
	return v
}

// Run opens the terminal and drives the page until Escape, q or Ctrl-C.
func Run(newPage func(sprout.Viewport) (*sprout.Page, *sprout.Surface), cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()

	page, surface := newPage(ViewportFor(screen.Size()))
	v := New(screen, page, surface, cfg)
	v.loop()
	return nil
}

func (v *View) loop() {
	ticker := time.NewTicker(v.cfg.TickRate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(v.screen, eventChan, done)

	start := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if v.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			v.page.Update(time.Since(start))
			v.Draw()
			v.screen.Show()
		}
	}
}

// pollEvents forwards screen events to out until the screen is finalised
// or done is closed.
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent routes one terminal event to the page. It reports whether
// the user asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)

	case *tcell.EventMouse:
		v.handleMouse(ev)

	case *tcell.EventFocus:
		if !ev.Focused {
			v.page.PointerLeave()
		}

	case *tcell.EventResize:
		v.cols, v.rows = v.screen.Size()
		vp := ViewportFor(v.cols, v.rows)
		v.page.Resize(vp.Width, vp.Height)
		v.screen.Sync()
	}
	return false
}

func (v *View) handleKey(ev *tcell.EventKey) bool {
	pageStep := float64(v.rows*CellHeight) * 0.9
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyDown:
		v.page.ScrollBy(v.cfg.ScrollStep)
	case tcell.KeyUp:
		v.page.ScrollBy(-v.cfg.ScrollStep)
	case tcell.KeyPgDn:
		v.page.ScrollBy(pageStep)
	case tcell.KeyPgUp:
		v.page.ScrollBy(-pageStep)
	case tcell.KeyHome:
		v.page.ScrollTo(0)
	case tcell.KeyEnd:
		v.page.ScrollTo(v.page.Environment().MaxScroll())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'p':
			v.capture("manual")
		}
	}
	return false
}

func (v *View) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, y := toPage(col, row)
	v.page.PointerMove(x, y)

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		v.page.ScrollBy(-v.cfg.ScrollStep)
	case buttons&tcell.WheelDown != 0:
		v.page.ScrollBy(v.cfg.ScrollStep)
	}

	down := buttons&tcell.Button1 != 0
	if down && !v.pressed {
		v.click(col, row, x, y)
	}
	v.pressed = down
}

func (v *View) click(col, row int, x, y float64) {
	if row == 0 {
		if href, ok := hitNav(v.nav, col); ok {
			v.page.ClickLink(href)
		}
		return
	}
	if id, ok := v.page.SectionAt(x, y); ok {
		v.page.ClickSection(id)
	}
}

// capture writes the visible screen as text, one line per row.
func (v *View) capture(label string) {
	if err := os.MkdirAll(v.cfg.CaptureDir, 0o755); err != nil {
		sprout.Logger().Warn("capture: mkdir failed", "dir", v.cfg.CaptureDir, "err", err)
		return
	}
	path := filepath.Join(v.cfg.CaptureDir, captureName(label))
	if err := os.WriteFile(path, []byte(v.Text()), 0o644); err != nil {
		sprout.Logger().Warn("capture failed", "path", path, "err", err)
		return
	}
	sprout.Logger().Info("capture saved", "path", path)
}

func captureName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' || r == ' ' {
			return '_'
		}
		return r
	}, label) + ".txt"
}

// Text returns the screen contents with trailing spaces trimmed.
func (v *View) Text() string {
	var b strings.Builder
	for row := 0; row < v.rows; row++ {
		var line []rune
		for col := 0; col < v.cols; col++ {
			r, _, _, _ := v.screen.GetContent(col, row)
			if r == 0 {
				r = ' '
			}
			line = append(line, r)
		}
		b.WriteString(strings.TrimRight(string(line), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
