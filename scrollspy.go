package sprout

import (
	"math/rand/v2"
	"time"
)

// SpySection is a navigation target: a section fragment ("#about") and its
// layout box in document space. Sections are kept in document order.
type SpySection struct {
	ID   string
	Rect Rect
}

// SpyRule identifies which priority rule chose the active section.
type SpyRule uint8

const (
	RuleNone       SpyRule = iota // nothing tracked
	RuleTopOfPage                 // scrolled to the very top
	RuleTopRowBand                // top row container is in the band
	RuleBottom                    // scrolled to the end of the content
	RuleActivation                // last section above the activation line
)

func (r SpyRule) String() string {
	switch r {
	case RuleTopOfPage:
		return "top-of-page"
	case RuleTopRowBand:
		return "top-row-band"
	case RuleBottom:
		return "bottom"
	case RuleActivation:
		return "activation-line"
	}
	return "none"
}

// ScrollSpy keeps exactly one navigation link selected, tracking scroll
// position and explicit clicks, and keeps section focus/dim flags in sync.
type ScrollSpy struct {
	cfg      SpyConfig
	r        Renderer
	rng      *rand.Rand
	sections []SpySection
	topRow   *Rect
	topVis   bool

	active    string
	topChoice string
	dimmed    map[string]bool

	flourish flourishSet
	lastTime time.Duration
	clocked  bool
	ticking  bool
}

// NewScrollSpy returns nil when there are no tracked sections. topRow is
// the top row container in document space, or nil when the page has none.
// topVisual enables the two-member focus toggle; it needs both top row
// sections to exist on the page.
func NewScrollSpy(cfg SpyConfig, sections []SpySection, topRow *Rect, topVisual bool, r Renderer, rng *rand.Rand) *ScrollSpy {
	if len(sections) == 0 {
		return nil
	}
	return &ScrollSpy{
		cfg:       cfg,
		r:         r,
		rng:       rng,
		sections:  sections,
		topRow:    topRow,
		topVis:    topVisual,
		topChoice: cfg.TopRow[0],
		dimmed:    make(map[string]bool),
		flourish:  newFlourishSet(r, cfg.SproutDuration, cfg.SproutTilt),
	}
}

// ActiveID returns the fragment of the selected section, or "" before the
// first reconciliation.
func (s *ScrollSpy) ActiveID() string { return s.active }

// TopRowChoice returns the last explicitly chosen top row member.
func (s *ScrollSpy) TopRowChoice() string { return s.topChoice }

// IsDimmed reports whether the section is currently de-emphasised.
func (s *ScrollSpy) IsDimmed(id string) bool { return s.dimmed[id] }

// IsTopMember reports whether id is one of the two top row sections.
func (s *ScrollSpy) IsTopMember(id string) bool {
	return id == s.cfg.TopRow[0] || id == s.cfg.TopRow[1]
}

// Resolve applies the priority rules to a snapshot without side effects.
func (s *ScrollSpy) Resolve(snap Snapshot) (string, SpyRule) {
	if len(s.sections) == 0 {
		return "", RuleNone
	}
	if snap.ScrollY <= s.cfg.TopEdge {
		return s.cfg.TopRow[0], RuleTopOfPage
	}

	vh := snap.Viewport.Height
	if s.topRow != nil {
		rect := s.topRow.Offset(0, -snap.ScrollY)
		if rect.Top() < vh*s.cfg.BandTopRatio && rect.Bottom() > s.cfg.BandBottom {
			return s.topChoice, RuleTopRowBand
		}
	}

	if snap.ContentHeight-(snap.ScrollY+vh) <= s.cfg.BottomGap {
		return s.sections[len(s.sections)-1].ID, RuleBottom
	}

	current := s.sections[0].ID
	for _, sec := range s.sections {
		if sec.Rect.Top()-snap.ScrollY <= s.cfg.ActivationLine {
			current = sec.ID
		}
	}
	return current, RuleActivation
}

// UpdateFromScroll reconciles the active section with the scroll position.
// Focus flags are always re-applied; the flourish only plays on change.
func (s *ScrollSpy) UpdateFromScroll(snap Snapshot) {
	target, rule := s.Resolve(snap)
	if rule == RuleNone {
		return
	}
	s.setActive(target, target != s.active)
	s.setTopRowVisual(target)
	s.setSectionVisual(target)
}

// RequestUpdate schedules one reconciliation on the next frame. Further
// requests before that frame are coalesced into it.
func (s *ScrollSpy) RequestUpdate(t *Ticker) {
	if s.ticking {
		return
	}
	s.ticking = true
	t.RequestFrame(func(snap Snapshot) {
		s.UpdateFromScroll(snap)
		s.ticking = false
	})
}

// OnClick selects a section from its navigation link. It always animates,
// even when the section is already active.
func (s *ScrollSpy) OnClick(id string) {
	if s.IsTopMember(id) {
		s.topChoice = id
		s.setTopRowVisual(s.topChoice)
	}
	s.setSectionVisual(id)
	s.setActive(id, true)
}

// OnDimmedSectionClick handles a click on the section itself. A dimmed
// section behaves like a click on its link and reports true, meaning the
// click's default navigation must be suppressed. Otherwise nothing happens.
// Only tracked sections respond.
func (s *ScrollSpy) OnDimmedSectionClick(id string) bool {
	if !s.tracked(id) || !s.dimmed[id] {
		return false
	}
	s.OnClick(id)
	return true
}

// OnTopPanelClick selects a top row member by clicking anywhere on its
// panel, dimmed or not. Other ids are ignored.
func (s *ScrollSpy) OnTopPanelClick(id string) {
	if !s.IsTopMember(id) {
		return
	}
	s.topChoice = id
	s.setTopRowVisual(s.topChoice)
	s.setSectionVisual(s.topChoice)
	s.setActive(id, true)
}

// ShowTopRowChoice applies the top row focus visual for the current choice.
func (s *ScrollSpy) ShowTopRowChoice() {
	s.setTopRowVisual(s.topChoice)
}

// Update advances running activation flourishes.
func (s *ScrollSpy) Update(snap Snapshot) {
	var dt time.Duration
	if s.clocked {
		dt = snap.Time - s.lastTime
	}
	s.lastTime = snap.Time
	s.clocked = true
	s.flourish.update(dt)
}

func (s *ScrollSpy) tracked(id string) bool {
	for _, sec := range s.sections {
		if sec.ID == id {
			return true
		}
	}
	return false
}

func (s *ScrollSpy) setActive(target string, animate bool) {
	if target == "" {
		return
	}
	if target == s.active && !animate {
		return
	}

	for _, sec := range s.sections {
		on := sec.ID == target
		s.r.SetClass(LinkID(sec.ID), ClassSelected, on)
		if !on {
			s.flourish.stop(LinkID(sec.ID))
		}
	}

	if !s.tracked(target) {
		return
	}
	if animate {
		s.flourish.start(LinkID(target), s.rng)
	}
	s.active = target
}

func (s *ScrollSpy) setTopRowVisual(focused string) {
	if !s.topVis {
		return
	}
	a, b := s.cfg.TopRow[0], s.cfg.TopRow[1]
	s.setFocus(SectionID(a), a, focused == a, focused == b)
	s.setFocus(SectionID(b), b, focused == b, focused == a)
}

func (s *ScrollSpy) setSectionVisual(focused string) {
	for _, sec := range s.sections {
		on := sec.ID == focused
		dim := focused != "" && !on
		s.setFocus(SectionID(sec.ID), sec.ID, on, dim)
		s.r.SetClass(LinkID(sec.ID), ClassFocused, on)
		s.r.SetClass(LinkID(sec.ID), ClassDimmed, dim)
	}
}

func (s *ScrollSpy) setFocus(el ElementID, id string, focused, dimmed bool) {
	s.r.SetClass(el, ClassFocused, focused)
	s.r.SetClass(el, ClassDimmed, dimmed)
	s.dimmed[id] = dimmed
}
