package sprout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseConfigEmptyKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	def := DefaultConfig()
	if cfg.Field.Radius != def.Field.Radius || cfg.Typing.CharDelay != def.Typing.CharDelay {
		t.Errorf("empty document changed defaults: %+v", cfg)
	}
}

func TestParseConfigPartialOverride(t *testing.T) {
	data := []byte(`
field:
  radius: 300
  smoothing:
    tone: 0.3
typing:
  charDelay: 40ms
spy:
  topRow: ["#intro", "#work"]
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Field.Radius != 300 {
		t.Errorf("radius = %v, want 300", cfg.Field.Radius)
	}
	assertNear(t, "tone smoothing", cfg.Field.Smoothing.Tone, 0.3)
	assertNear(t, "rotation smoothing kept", cfg.Field.Smoothing.Rotation, 0.11)
	if cfg.Field.Spacing != 48 {
		t.Errorf("spacing = %v, default should survive", cfg.Field.Spacing)
	}
	if cfg.Typing.CharDelay != 40*time.Millisecond {
		t.Errorf("charDelay = %v, want 40ms", cfg.Typing.CharDelay)
	}
	if cfg.Typing.StartDelay != 140*time.Millisecond {
		t.Errorf("startDelay = %v, default should survive", cfg.Typing.StartDelay)
	}
	if cfg.Spy.TopRow[0] != "#intro" || cfg.Spy.TopRow[1] != "#work" {
		t.Errorf("topRow = %v", cfg.Spy.TopRow)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"negative radius":   "field:\n  radius: -1\n",
		"smoothing over 1":  "field:\n  smoothing:\n    scale: 1.5\n",
		"zero ease":         "tilt:\n  ease: 0\n",
		"zero char delay":   "typing:\n  charDelay: 0s\n",
		"single top member": "spy:\n  topRow: [\"#about\"]\n",
		"same top members":  "spy:\n  topRow: [\"#a\", \"#a\"]\n",
		"inverted tilt":     "spy:\n  sproutTilt: {min: 9, max: 3}\n",
		"zero threshold":    "reveal:\n  threshold: 0\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseConfigMalformedYAML(t *testing.T) {
	_, err := ParseConfig([]byte("field: [unterminated"))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("a YAML syntax error is not a validation error")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprout.yaml")
	if err := os.WriteFile(path, []byte("tilt:\n  ease: 0.1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	assertNear(t, "ease", cfg.Tilt.Ease, 0.1)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestSpacingFor(t *testing.T) {
	f := DefaultConfig().Field
	if f.SpacingFor(1024) != 48 || f.SpacingFor(760) != 48 {
		t.Error("wide viewports use the regular spacing")
	}
	if f.SpacingFor(759) != 42 {
		t.Error("narrow viewports use the narrow spacing")
	}
}
