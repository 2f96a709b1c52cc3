package sprout

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure from LoadConfig
// and ParseConfig.
var ErrInvalidConfig = errors.New("invalid config")

// Config tunes every effect on the page. DefaultConfig returns the values
// the page ships with; a YAML file only needs to list what it changes.
type Config struct {
	Field  FieldConfig  `yaml:"field"`
	Tilt   TiltConfig   `yaml:"tilt"`
	Typing TypingConfig `yaml:"typing"`
	Spy    SpyConfig    `yaml:"spy"`
	Reveal RevealConfig `yaml:"reveal"`
}

// Smoothing holds per-channel exponential smoothing factors, applied once
// per frame as current += (target-current)*factor.
type Smoothing struct {
	Rotation float64 `yaml:"rotation"`
	Scale    float64 `yaml:"scale"`
	Opacity  float64 `yaml:"opacity"`
	Tone     float64 `yaml:"tone"`
}

// FieldConfig tunes the pointer-reactive leaf field.
type FieldConfig struct {
	Radius           float64 `yaml:"radius"`
	Spacing          float64 `yaml:"spacing"`
	NarrowSpacing    float64 `yaml:"narrowSpacing"`
	NarrowBreakpoint float64 `yaml:"narrowBreakpoint"`
	BaseRotation     float64 `yaml:"baseRotation"`
	BaseJitter       float64 `yaml:"baseJitter"`
	InitialOpacity   Range   `yaml:"initialOpacity"`
	IdleAmplitude    float64 `yaml:"idleAmplitude"`
	LightTone        RGB     `yaml:"lightTone"`
	DarkTone         RGB     `yaml:"darkTone"`

	Smoothing        Smoothing `yaml:"smoothing"`
	ReducedSmoothing Smoothing `yaml:"reducedSmoothing"`
}

// SpacingFor returns the grid spacing for a viewport width.
func (c FieldConfig) SpacingFor(width float64) float64 {
	if width < c.NarrowBreakpoint {
		return c.NarrowSpacing
	}
	return c.Spacing
}

// TiltConfig tunes the single-leaf tilt animator.
type TiltConfig struct {
	Ease float64 `yaml:"ease"`
}

// TypingConfig tunes the brand typing effect.
type TypingConfig struct {
	StartDelay  time.Duration `yaml:"startDelay"`
	CharDelay   time.Duration `yaml:"charDelay"`
	SettleDelay time.Duration `yaml:"settleDelay"`
}

// SpyConfig tunes the scroll-spy reconciler.
type SpyConfig struct {
	// TopRow lists the two mutually exclusive top sections. The first one
	// is the landing section.
	TopRow []string `yaml:"topRow"`

	TopEdge        float64       `yaml:"topEdge"`
	BandTopRatio   float64       `yaml:"bandTopRatio"`
	BandBottom     float64       `yaml:"bandBottom"`
	BottomGap      float64       `yaml:"bottomGap"`
	ActivationLine float64       `yaml:"activationLine"`
	SproutDuration time.Duration `yaml:"sproutDuration"`
	SproutTilt     Range         `yaml:"sproutTilt"`
}

// RevealConfig tunes reveal-on-scroll.
type RevealConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	return Config{
		Field: FieldConfig{
			Radius:           240,
			Spacing:          48,
			NarrowSpacing:    42,
			NarrowBreakpoint: 760,
			BaseRotation:     18,
			BaseJitter:       1,
			InitialOpacity:   Range{Min: 0.22, Max: 0.26},
			IdleAmplitude:    0.9,
			LightTone:        LightTone,
			DarkTone:         DarkTone,
			Smoothing:        Smoothing{Rotation: 0.11, Scale: 0.11, Opacity: 0.12, Tone: 0.14},
			ReducedSmoothing: Smoothing{Rotation: 0.16, Scale: 0.16, Opacity: 0.18, Tone: 0.2},
		},
		Tilt: TiltConfig{Ease: 0.05},
		Typing: TypingConfig{
			StartDelay:  140 * time.Millisecond,
			CharDelay:   70 * time.Millisecond,
			SettleDelay: 450 * time.Millisecond,
		},
		Spy: SpyConfig{
			TopRow:         []string{"#about", "#publications"},
			TopEdge:        6,
			BandTopRatio:   0.62,
			BandBottom:     120,
			BottomGap:      2,
			ActivationLine: 220,
			SproutDuration: 760 * time.Millisecond,
			SproutTilt:     Range{Min: 6, Max: 15},
		},
		Reveal: RevealConfig{Threshold: 0.12},
	}
}

// LoadConfig reads a YAML config file and applies it over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	Logger().Info("config loaded", "path", path)
	return cfg, nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	f := c.Field
	switch {
	case f.Radius <= 0:
		return invalid("field.radius must be positive")
	case f.Spacing <= 0 || f.NarrowSpacing <= 0:
		return invalid("field spacing must be positive")
	case f.InitialOpacity.Min > f.InitialOpacity.Max:
		return invalid("field.initialOpacity min exceeds max")
	case f.BaseJitter < 0:
		return invalid("field.baseJitter must not be negative")
	}
	if err := validateSmoothing("field.smoothing", f.Smoothing); err != nil {
		return err
	}
	if err := validateSmoothing("field.reducedSmoothing", f.ReducedSmoothing); err != nil {
		return err
	}
	if c.Tilt.Ease <= 0 || c.Tilt.Ease > 1 {
		return invalid("tilt.ease must be in (0, 1]")
	}
	if c.Typing.CharDelay <= 0 || c.Typing.StartDelay < 0 || c.Typing.SettleDelay < 0 {
		return invalid("typing delays must be non-negative and charDelay positive")
	}
	s := c.Spy
	switch {
	case len(s.TopRow) != 2:
		return invalid(fmt.Sprintf("spy.topRow needs exactly 2 entries, got %d", len(s.TopRow)))
	case s.TopRow[0] == s.TopRow[1]:
		return invalid("spy.topRow entries must differ")
	case s.SproutDuration < 0:
		return invalid("spy.sproutDuration must not be negative")
	case s.SproutTilt.Min > s.SproutTilt.Max:
		return invalid("spy.sproutTilt min exceeds max")
	}
	if c.Reveal.Threshold <= 0 || c.Reveal.Threshold > 1 {
		return invalid("reveal.threshold must be in (0, 1]")
	}
	return nil
}

func validateSmoothing(name string, s Smoothing) error {
	for _, v := range [...]float64{s.Rotation, s.Scale, s.Opacity, s.Tone} {
		if v <= 0 || v > 1 {
			return invalid(name + " factors must be in (0, 1]")
		}
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}
