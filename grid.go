package sprout

import (
	"math"
	"math/rand/v2"
)

// Cell is one leaf of the pointer field. X, Y and Base are fixed when the
// grid is built; the remaining fields are eased every frame.
type Cell struct {
	X, Y float64
	Base float64 // degrees

	Rot     float64
	Scale   float64
	Opacity float64
	Tone    float64
}

// GridDimensions returns the column and row counts and the spacing used to
// tile v with a one-cell overscan border on every side.
func GridDimensions(v Viewport, cfg FieldConfig) (cols, rows int, spacing float64) {
	spacing = cfg.SpacingFor(v.Width)
	cols = int(math.Ceil(v.Width/spacing)) + 2
	rows = int(math.Ceil(v.Height/spacing)) + 2
	return cols, rows, spacing
}

// BuildGrid lays out a fresh brick-pattern grid for v. Cells are appended
// to dst[:0]; nothing from the previous contents of dst survives.
func BuildGrid(dst []Cell, v Viewport, cfg FieldConfig, rng *rand.Rand) []Cell {
	cols, rows, spacing := GridDimensions(v, cfg)
	start := -spacing * 0.5

	cells := dst[:0]
	for row := 0; row < rows; row++ {
		stagger := float64(row%2) * spacing * 0.25
		for col := 0; col < cols; col++ {
			cells = append(cells, Cell{
				X:       start + float64(col)*spacing + stagger,
				Y:       start + float64(row)*spacing,
				Base:    cfg.BaseRotation + (rng.Float64()*2-1)*cfg.BaseJitter,
				Scale:   1,
				Opacity: cfg.InitialOpacity.Lerp(rng.Float64()),
			})
		}
	}
	return cells
}
