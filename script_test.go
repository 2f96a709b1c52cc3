package sprout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadScriptValid(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [{"action": "move", "x": 10, "y": 20}]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(r.steps) != 1 || r.steps[0].X != 10 {
		t.Errorf("steps = %+v", r.steps)
	}
	if r.Done() {
		t.Error("a fresh runner is not done")
	}
}

func TestLoadScriptNoSteps(t *testing.T) {
	_, err := LoadScript([]byte(`{"steps": []}`))
	if !errors.Is(err, ErrNoSteps) {
		t.Errorf("err = %v, want ErrNoSteps", err)
	}
}

func TestLoadScriptBadJSON(t *testing.T) {
	if _, err := LoadScript([]byte(`{"steps": [`)); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadScriptUnknownAction(t *testing.T) {
	_, err := LoadScript([]byte(`{"steps": [{"action": "drag"}]}`))
	if err == nil || !strings.Contains(err.Error(), `"drag"`) {
		t.Errorf("err = %v, want unknown action", err)
	}
}

func TestLoadScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	if err := os.WriteFile(path, []byte(`{"steps": [{"action": "leave"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScriptFile(path); err != nil {
		t.Fatalf("LoadScriptFile: %v", err)
	}
	if _, err := LoadScriptFile(path + ".missing"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func runScript(t *testing.T, p *Page, r *ScriptRunner, maxFrames int) {
	t.Helper()
	p.SetScript(r)
	for i := 1; i <= maxFrames && !r.Done(); i++ {
		p.Update(time.Duration(i) * 16 * time.Millisecond)
	}
	if !r.Done() {
		t.Fatalf("script not done after %d frames", maxFrames)
	}
}

func TestScriptDrivesPage(t *testing.T) {
	p, _ := newTestPage(t, false)
	var shots []string
	p.SetScreenshotFunc(func(label string) { shots = append(shots, label) })

	r, err := LoadScript([]byte(`{"steps": [
		{"action": "move", "x": 100, "y": 120},
		{"action": "wait", "frames": 2},
		{"action": "section", "target": "#contact"},
		{"action": "screenshot", "label": "contact"},
		{"action": "scroll", "y": 900},
		{"action": "wait", "frames": 1},
		{"action": "resize", "width": 700, "height": 500}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, p, r, 20)

	if r.Suppressed != 1 {
		t.Errorf("suppressed = %d, want 1", r.Suppressed)
	}
	if len(shots) != 1 || shots[0] != "contact" {
		t.Errorf("screenshots = %v", shots)
	}
	if p.ActiveSection() != "#projects" {
		t.Errorf("active = %q, want #projects", p.ActiveSection())
	}
	if v := p.Environment().Viewport(); v.Width != 700 || v.Height != 500 {
		t.Errorf("viewport = %+v", v)
	}
}

func TestScriptWaitCountsFrames(t *testing.T) {
	p, _ := newTestPage(t, false)
	r, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	p.SetScript(r)
	frames := 0
	for !r.Done() && frames < 10 {
		frames++
		p.Update(time.Duration(frames) * 16 * time.Millisecond)
	}
	if frames != 3 {
		t.Errorf("wait 3 took %d frames", frames)
	}
}

func TestScriptClickAndLeave(t *testing.T) {
	p, _ := newTestPage(t, false)
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "move", "x": 5, "y": 5},
		{"action": "click", "target": "#contact"},
		{"action": "leave"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, p, r, 10)
	if p.ActiveSection() != "#contact" {
		t.Errorf("active = %q, want #contact", p.ActiveSection())
	}
	if p.LastSnapshot().Pointer.Active {
		t.Error("pointer should be inactive after leave")
	}
}
