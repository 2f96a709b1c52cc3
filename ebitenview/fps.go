package ebitenview

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS in the bottom-right corner.
// The text is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img  *ebiten.Image
	last time.Duration
	text string
}

func (f *fpsOverlay) update(now time.Duration) {
	if f.text != "" && now-f.last < 500*time.Millisecond {
		return
	}
	f.last = now
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if f.img != nil {
		f.redraw()
	}
}

func (f *fpsOverlay) redraw() {
	f.img.Clear()
	// Semi-transparent background for readability
	f.img.Fill(fpsBackdrop)
	ebitenutil.DebugPrint(f.img, f.text)
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
		f.redraw()
	}
	b := screen.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(b.Dx()-100-8), float64(b.Dy()-32-8))
	screen.DrawImage(f.img, &op)
}
