package sprout

// Renderer receives every visual side effect produced by the animators and
// the scroll-spy. Implementations must tolerate calls for elements they have
// not seen before (creating them) and calls for removed elements.
type Renderer interface {
	SetTransform(id ElementID, t Transform)
	SetOpacity(id ElementID, opacity float64)
	SetColor(id ElementID, c RGB)
	SetClass(id ElementID, c Class, on bool)
	SetText(id ElementID, text string)
	Remove(id ElementID)
}

// ElementState is the accumulated visual state of one element on a Surface.
type ElementState struct {
	Transform    Transform
	HasTransform bool
	Opacity      float64
	Color        RGB
	HasColor     bool
	Text         string
	classes      uint32

	// Activations counts off-to-on transitions per class. A re-triggered
	// animation class shows up as an increment even if the class was
	// already set before the call.
	Activations [classCount]uint32
}

// Has reports whether class c is currently set.
func (e *ElementState) Has(c Class) bool {
	return e.classes&(1<<c) != 0
}

// Surface is the in-memory Renderer. It keeps the latest state of every
// element in insertion order. Frontends draw from a Surface each frame, and
// tests inspect it directly.
type Surface struct {
	elements map[ElementID]*ElementState
	index    map[ElementID]int
	order    []ElementID
	removed  int
}

var _ Renderer = (*Surface)(nil)

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{
		elements: make(map[ElementID]*ElementState),
		index:    make(map[ElementID]int),
	}
}

func (s *Surface) element(id ElementID) *ElementState {
	if e, ok := s.elements[id]; ok {
		return e
	}
	e := &ElementState{Opacity: 1, Transform: Transform{Scale: 1}}
	s.elements[id] = e
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
	return e
}

// SetTransform records the element's combined transform.
func (s *Surface) SetTransform(id ElementID, t Transform) {
	e := s.element(id)
	e.Transform = t
	e.HasTransform = true
}

// SetOpacity records the element's opacity.
func (s *Surface) SetOpacity(id ElementID, opacity float64) {
	s.element(id).Opacity = opacity
}

// SetColor records the element's foreground colour.
func (s *Surface) SetColor(id ElementID, c RGB) {
	e := s.element(id)
	e.Color = c
	e.HasColor = true
}

// SetClass toggles a class flag on the element.
func (s *Surface) SetClass(id ElementID, c Class, on bool) {
	e := s.element(id)
	bit := uint32(1) << c
	if on {
		if e.classes&bit == 0 {
			e.Activations[c]++
		}
		e.classes |= bit
		return
	}
	e.classes &^= bit
}

// SetText replaces the element's text content.
func (s *Surface) SetText(id ElementID, text string) {
	s.element(id).Text = text
}

// Remove forgets the element entirely.
func (s *Surface) Remove(id ElementID) {
	pos, ok := s.index[id]
	if !ok {
		return
	}
	delete(s.elements, id)
	delete(s.index, id)
	s.order[pos] = ""
	s.removed++
	if s.removed > len(s.order)/2 {
		s.compact()
	}
}

// compact drops tombstones left by Remove and renumbers the index.
func (s *Surface) compact() {
	live := s.order[:0]
	for _, id := range s.order {
		if id == "" {
			continue
		}
		s.index[id] = len(live)
		live = append(live, id)
	}
	clear(s.order[len(live):])
	s.order = live
	s.removed = 0
}

// Get returns the state of an element.
func (s *Surface) Get(id ElementID) (*ElementState, bool) {
	e, ok := s.elements[id]
	return e, ok
}

// Len returns the number of live elements.
func (s *Surface) Len() int {
	return len(s.elements)
}

// Each calls fn for every live element in insertion order.
func (s *Surface) Each(fn func(id ElementID, e *ElementState)) {
	for _, id := range s.order {
		if id == "" {
			continue
		}
		fn(id, s.elements[id])
	}
}
