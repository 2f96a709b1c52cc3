package sprout

import (
	"math/rand/v2"
	"time"
)

// PageOptions configures NewPage.
type PageOptions struct {
	Viewport      Viewport
	ReducedMotion bool

	// Rand drives every random choice (leaf jitter, initial opacity,
	// flourish tilt). Nil means a randomly seeded source.
	Rand *rand.Rand

	// Now is the wall-clock time shown by the date stamp. Zero means
	// time.Now().
	Now time.Time
}

// Page is the top-level object. It owns the environment, the frame ticker
// and every effect attached to a Document, and routes input events to them.
type Page struct {
	doc *Document
	cfg Config
	env *Environment
	r   Renderer
	rng *rand.Rand

	ticker Ticker
	field  *PointerField
	tilt   *TiltAnimator
	typing *TypingEffect
	spy    *ScrollSpy
	reveal *Revealer

	runner     *ScriptRunner
	screenshot func(label string)
	debug      bool
	last       Snapshot
}

// NewPage attaches every effect whose elements exist in doc. Effects with
// missing elements are skipped silently.
func NewPage(doc *Document, cfg Config, r Renderer, opts PageOptions) *Page {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	p := &Page{
		doc: doc,
		cfg: cfg,
		env: NewEnvironment(opts.Viewport, doc.ContentHeight, opts.ReducedMotion),
		r:   r,
		rng: rng,
	}
	load := p.env.Snapshot(0)
	p.last = load
	log := Logger()

	if doc.HasDateStamp {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		r.SetText(DateStampID, FormatDateStamp(now))
	}

	if doc.LeafField {
		p.field = NewPointerField(cfg.Field, opts.Viewport, r, rng)
		p.ticker.Register(p.field)
	} else {
		log.Debug("leaf field container absent; field effect disabled")
	}

	if p.tilt = NewTiltAnimator(cfg.Tilt, doc.Leaves, load, r); p.tilt != nil {
		p.ticker.Register(p.tilt)
	} else {
		log.Debug("tilt leaves disabled", "leaves", len(doc.Leaves), "reducedMotion", opts.ReducedMotion)
	}

	if doc.HasBrand {
		p.typing = NewTypingEffect(cfg.Typing, BrandID, doc.BrandText, r)
		p.typing.Start(0, opts.ReducedMotion)
		if !p.typing.Done() {
			p.registerUntilDone(p.typing, p.typing.Done)
		}
	} else {
		log.Debug("brand label absent; typing effect disabled")
	}

	if p.reveal = NewRevealer(cfg.Reveal, doc.Reveals, r); p.reveal != nil {
		p.registerUntilDone(p.reveal, p.reveal.Done)
	}

	_, hasA := doc.Section(cfg.Spy.TopRow[0])
	_, hasB := doc.Section(cfg.Spy.TopRow[1])
	if p.spy = NewScrollSpy(cfg.Spy, doc.Tracked(), doc.TopRow, hasA && hasB, r, rng); p.spy != nil {
		p.ticker.Register(p.spy)
		p.spy.ShowTopRowChoice()
		p.spy.UpdateFromScroll(load)
	} else {
		log.Debug("no tracked sections; scroll-spy disabled")
	}

	log.Info("page assembled",
		"title", doc.Title,
		"field", p.field != nil,
		"tilt", p.tilt != nil,
		"typing", p.typing != nil,
		"spy", p.spy != nil,
		"animators", p.ticker.Len())
	return p
}

// registerUntilDone runs a until done reports true, then drops it from the
// ticker.
func (p *Page) registerUntilDone(a Animator, done func() bool) {
	var reg Registration
	reg = p.ticker.Register(AnimatorFunc(func(snap Snapshot) {
		a.Update(snap)
		if done() {
			reg.Remove()
		}
	}))
}

// Update advances the page by one frame at time now, measured from page
// load.
func (p *Page) Update(now time.Duration) {
	if p.runner != nil {
		p.runner.step(p)
	}

	var t0 time.Time
	if p.debug {
		t0 = time.Now()
	}

	snap := p.env.Snapshot(now)
	p.last = snap
	p.ticker.Tick(snap)

	if p.debug {
		p.debugLog(frameStats{
			frame:     snap.Frame,
			tickTime:  time.Since(t0),
			animators: p.ticker.Len(),
			cells:     p.CellCount(),
			active:    p.ActiveSection(),
		})
	}
}

// PointerMove records a pointer position in viewport coordinates.
func (p *Page) PointerMove(x, y float64) {
	p.env.PointerMove(x, y)
}

// PointerLeave records that the pointer left the window.
func (p *Page) PointerLeave() {
	p.env.PointerLeave()
}

// Resize records a new viewport size. The leaf grid and tilt anchors are
// rebuilt on the next frame; the scroll-spy reconciles on the next frame.
func (p *Page) Resize(width, height float64) {
	p.env.Resize(width, height)
	p.requestSpy()
}

// ScrollTo scrolls the page to offset y.
func (p *Page) ScrollTo(y float64) {
	p.env.ScrollTo(y)
	p.requestSpy()
}

// ScrollBy scrolls the page by dy.
func (p *Page) ScrollBy(dy float64) {
	p.env.ScrollBy(dy)
	p.requestSpy()
}

func (p *Page) requestSpy() {
	if p.spy != nil {
		p.spy.RequestUpdate(&p.ticker)
	}
}

// ClickLink handles a click on the navigation link with the given href.
// The link selects its section and then follows the default anchor
// navigation by scrolling to the section. Non-fragment links are ignored.
func (p *Page) ClickLink(href string) {
	if p.spy == nil || len(href) < 2 || href[0] != '#' {
		return
	}
	p.spy.OnClick(href)
	if rect, ok := p.doc.Section(href); ok {
		p.ScrollTo(rect.Y)
	}
}

// ClickSection handles a click landing on a section. It reports whether
// the click's default navigation was suppressed, which happens when the
// section was dimmed.
func (p *Page) ClickSection(id string) bool {
	if p.spy == nil {
		return false
	}
	suppressed := p.spy.OnDimmedSectionClick(id)
	p.spy.OnTopPanelClick(id)
	return suppressed
}

// SectionAt returns the section under a viewport point. Tracked sections
// are tried first, then the top row panels, which take clicks even
// without a navigation link.
func (p *Page) SectionAt(x, y float64) (string, bool) {
	scroll := p.env.ScrollY()
	for _, sec := range p.doc.Tracked() {
		if sec.Rect.Offset(0, -scroll).Contains(x, y) {
			return sec.ID, true
		}
	}
	for _, id := range p.cfg.Spy.TopRow {
		if rect, ok := p.doc.Section(id); ok && rect.Offset(0, -scroll).Contains(x, y) {
			return id, true
		}
	}
	return "", false
}

// SetDebugMode enables per-frame stats on the debug log level.
func (p *Page) SetDebugMode(enabled bool) {
	p.debug = enabled
}

// SetScreenshotFunc installs the hook used by script screenshot steps.
func (p *Page) SetScreenshotFunc(fn func(label string)) {
	p.screenshot = fn
}

// Document returns the page structure.
func (p *Page) Document() *Document { return p.doc }

// Config returns the tuning in use.
func (p *Page) Config() Config { return p.cfg }

// Environment returns the live environment.
func (p *Page) Environment() *Environment { return p.env }

// LastSnapshot returns the snapshot of the most recent frame.
func (p *Page) LastSnapshot() Snapshot { return p.last }

// Field returns the leaf field, or nil when the page has none.
func (p *Page) Field() *PointerField { return p.field }

// Tilt returns the tilt animator, or nil when it is suppressed.
func (p *Page) Tilt() *TiltAnimator { return p.tilt }

// Typing returns the typing effect, or nil when the page has no brand.
func (p *Page) Typing() *TypingEffect { return p.typing }

// Spy returns the scroll-spy, or nil when nothing is tracked.
func (p *Page) Spy() *ScrollSpy { return p.spy }

// ActiveSection returns the selected section fragment, or "".
func (p *Page) ActiveSection() string {
	if p.spy == nil {
		return ""
	}
	return p.spy.ActiveID()
}

// CellCount returns the number of leaf field cells.
func (p *Page) CellCount() int {
	if p.field == nil {
		return 0
	}
	return len(p.field.Cells())
}
