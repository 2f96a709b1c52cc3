package sprout

import "time"

// TypingState is the phase of the brand typing effect.
type TypingState uint8

const (
	TypingIdle     TypingState = iota // not started
	TypingActive                      // revealing characters
	TypingSettling                    // full text shown, indicator still on
	TypingDone                        // finished; text complete, indicator off
)

func (s TypingState) String() string {
	switch s {
	case TypingIdle:
		return "idle"
	case TypingActive:
		return "typing"
	case TypingSettling:
		return "settling"
	case TypingDone:
		return "done"
	}
	return "unknown"
}

// TypingEffect reveals the brand label one character at a time. It runs
// off snapshot time, so every frame may reveal zero or more characters.
type TypingEffect struct {
	cfg      TypingConfig
	r        Renderer
	id       ElementID
	text     []rune
	shown    int
	state    TypingState
	deadline time.Duration
}

// NewTypingEffect prepares the effect for the brand label's full text.
func NewTypingEffect(cfg TypingConfig, id ElementID, text string, r Renderer) *TypingEffect {
	return &TypingEffect{cfg: cfg, r: r, id: id, text: []rune(text)}
}

// State returns the current phase.
func (e *TypingEffect) State() TypingState {
	return e.state
}

// Start begins typing at time now. Under reduced motion the full text is
// written immediately and the effect finishes without a partial state.
// Calling Start again is a no-op.
func (e *TypingEffect) Start(now time.Duration, reducedMotion bool) {
	if e.state != TypingIdle {
		return
	}
	if reducedMotion {
		e.r.SetText(e.id, string(e.text))
		e.state = TypingDone
		return
	}
	e.r.SetText(e.id, "")
	e.r.SetClass(e.id, ClassTyping, true)
	e.state = TypingActive
	e.deadline = now + e.cfg.StartDelay
}

// Update advances the effect to snap.Time.
func (e *TypingEffect) Update(snap Snapshot) {
	now := snap.Time
	for now >= e.deadline {
		switch e.state {
		case TypingActive:
			e.shown++
			e.r.SetText(e.id, string(e.text[:min(e.shown, len(e.text))]))
			if e.shown < len(e.text) {
				e.deadline += e.cfg.CharDelay
			} else {
				e.state = TypingSettling
				e.deadline += e.cfg.SettleDelay
			}
		case TypingSettling:
			e.r.SetClass(e.id, ClassTyping, false)
			e.state = TypingDone
			return
		default:
			return
		}
	}
}

// Done reports whether the effect has finished.
func (e *TypingEffect) Done() bool {
	return e.state == TypingDone
}
