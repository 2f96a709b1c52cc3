package sprout

// Animator is advanced once per display refresh with that frame's snapshot.
type Animator interface {
	Update(snap Snapshot)
}

// AnimatorFunc adapts a plain function to the Animator interface.
type AnimatorFunc func(snap Snapshot)

// Update calls f(snap).
func (f AnimatorFunc) Update(snap Snapshot) { f(snap) }

type tickEntry struct {
	id uint32
	a  Animator
}

// Ticker is the frame scheduler. Registered animators run every tick in
// registration order; one-shot frame requests run once on the next tick,
// after the animators.
type Ticker struct {
	entries []tickEntry
	pending []func(Snapshot)
	running []func(Snapshot)
	nextID  uint32
}

// Registration allows removing a registered animator.
type Registration struct {
	id     uint32
	ticker *Ticker
}

// Remove unregisters the animator so it no longer runs. Removing twice, or
// removing the zero Registration, is a no-op. Safe to call from inside the
// animator's own Update.
func (r Registration) Remove() {
	if r.ticker == nil {
		return
	}
	r.ticker.entries = removeTickEntry(r.ticker.entries, r.id)
}

func removeTickEntry(s []tickEntry, id uint32) []tickEntry {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = tickEntry{}
			return s[:len(s)-1]
		}
	}
	return s
}

// Register adds an animator to the per-frame loop.
func (t *Ticker) Register(a Animator) Registration {
	t.nextID++
	id := t.nextID
	t.entries = append(t.entries, tickEntry{id: id, a: a})
	return Registration{id: id, ticker: t}
}

// RequestFrame queues fn to run once on the next tick. Requests made while
// a tick is running wait for the following tick.
func (t *Ticker) RequestFrame(fn func(Snapshot)) {
	t.pending = append(t.pending, fn)
}

// Len returns the number of registered animators.
func (t *Ticker) Len() int {
	return len(t.entries)
}

// Tick runs one frame.
func (t *Ticker) Tick(snap Snapshot) {
	// An animator may remove itself; only step past entries that survived.
	for i := 0; i < len(t.entries); {
		e := t.entries[i]
		e.a.Update(snap)
		if i < len(t.entries) && t.entries[i].id == e.id {
			i++
		}
	}

	t.running, t.pending = t.pending, t.running[:0]
	for _, fn := range t.running {
		fn(snap)
	}
	clear(t.running)
	t.running = t.running[:0]
}
