package sprout

import "time"

// frameStats holds per-frame metrics. Only populated when debug mode is on.
type frameStats struct {
	frame     uint64
	tickTime  time.Duration
	animators int
	cells     int
	active    string
}

// debugLog reports frame stats on the debug level.
func (p *Page) debugLog(stats frameStats) {
	if !p.debug {
		return
	}
	Logger().Debug("frame",
		"frame", stats.frame,
		"tick", stats.tickTime,
		"animators", stats.animators,
		"cells", stats.cells,
		"active", stats.active)
	if stats.cells > debugMaxCells {
		Logger().Warn("leaf field unusually large",
			"cells", stats.cells, "threshold", debugMaxCells)
	}
}

// debugMaxCells is the cell count past which a frame is flagged. A 4K
// viewport at the narrow spacing stays well below it.
const debugMaxCells = 10000
