package sprout

import (
	"math/rand/v2"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestGridDimensions1024x768(t *testing.T) {
	cols, rows, spacing := GridDimensions(Viewport{Width: 1024, Height: 768}, DefaultConfig().Field)
	if spacing != 48 {
		t.Errorf("spacing = %v, want 48", spacing)
	}
	if cols != 24 || rows != 18 {
		t.Errorf("cols×rows = %d×%d, want 24×18", cols, rows)
	}
}

func TestBuildGridCount1024x768(t *testing.T) {
	cells := BuildGrid(nil, Viewport{Width: 1024, Height: 768}, DefaultConfig().Field, testRand())
	if len(cells) != 432 {
		t.Errorf("len(cells) = %d, want 432", len(cells))
	}
}

func TestBuildGridNarrowSpacing(t *testing.T) {
	_, _, spacing := GridDimensions(Viewport{Width: 759, Height: 600}, DefaultConfig().Field)
	if spacing != 42 {
		t.Errorf("spacing = %v, want 42", spacing)
	}
	_, _, spacing = GridDimensions(Viewport{Width: 760, Height: 600}, DefaultConfig().Field)
	if spacing != 48 {
		t.Errorf("spacing at breakpoint = %v, want 48", spacing)
	}
}

func TestBuildGridRebuildIsIdempotentInCount(t *testing.T) {
	v := Viewport{Width: 1280, Height: 720}
	cfg := DefaultConfig().Field
	rng := testRand()
	first := len(BuildGrid(nil, v, cfg, rng))
	cells := BuildGrid(make([]Cell, 0, 8), v, cfg, rng)
	cells = BuildGrid(cells, v, cfg, rng)
	if len(cells) != first {
		t.Errorf("rebuild count = %d, want %d", len(cells), first)
	}
}

func TestBuildGridLayoutAndInitialState(t *testing.T) {
	cfg := DefaultConfig().Field
	cells := BuildGrid(nil, Viewport{Width: 1024, Height: 768}, cfg, testRand())
	cols := 24

	assertNear(t, "first.X", cells[0].X, -24)
	assertNear(t, "first.Y", cells[0].Y, -24)
	assertNear(t, "second.X", cells[1].X, 24)
	// Odd rows are staggered by a quarter of the spacing.
	assertNear(t, "row1.X", cells[cols].X, -24+12)
	assertNear(t, "row1.Y", cells[cols].Y, 24)

	for i, c := range cells {
		if c.Base < 17 || c.Base > 19 {
			t.Fatalf("cell %d base = %v, want within 18±1", i, c.Base)
		}
		if c.Opacity < 0.22 || c.Opacity > 0.26 {
			t.Fatalf("cell %d opacity = %v, want within [0.22, 0.26]", i, c.Opacity)
		}
		if c.Rot != 0 || c.Scale != 1 || c.Tone != 0 {
			t.Fatalf("cell %d initial state = %+v", i, c)
		}
	}
}

func TestBuildGridDeterministicWithSeed(t *testing.T) {
	v := Viewport{Width: 300, Height: 200}
	cfg := DefaultConfig().Field
	a := BuildGrid(nil, v, cfg, testRand())
	b := BuildGrid(nil, v, cfg, testRand())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
