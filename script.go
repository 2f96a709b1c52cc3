package sprout

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNoSteps is returned when a script has nothing to run.
var ErrNoSteps = errors.New("script has no steps")

// ScriptStep is a single action in a script.
type ScriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Target string  `json:"target,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// Script is the top-level JSON structure for a script.
type Script struct {
	Steps []ScriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"move": true, "leave": true, "scroll": true, "resize": true,
	"click": true, "section": true, "wait": true, "screenshot": true,
}

// ScriptRunner sequences environment events across frames, one step per
// frame. Attach it to a Page via SetScript.
type ScriptRunner struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool

	// Suppressed counts section clicks whose default navigation was
	// suppressed.
	Suppressed int
}

// LoadScriptFile reads and parses a JSON script file.
func LoadScriptFile(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	return LoadScript(data)
}

// LoadScript parses a JSON script and returns a runner ready to be
// attached to a Page.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script Script
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrNoSteps)
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScript attaches a runner to the page. Its step method is called from
// Page.Update before the frame snapshot is taken.
func (p *Page) SetScript(runner *ScriptRunner) {
	p.runner = runner
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

func (r *ScriptRunner) step(p *Page) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		if r.waitCount == 0 && r.cursor >= len(r.steps) {
			r.done = true
		}
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		p.PointerMove(st.X, st.Y)
	case "leave":
		p.PointerLeave()
	case "scroll":
		p.ScrollTo(st.Y)
	case "resize":
		p.Resize(st.Width, st.Height)
	case "click":
		p.ClickLink(st.Target)
	case "section":
		if p.ClickSection(st.Target) {
			r.Suppressed++
		}
	case "screenshot":
		if p.screenshot != nil {
			p.screenshot(st.Label)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
