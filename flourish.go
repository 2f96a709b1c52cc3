package sprout

import (
	"math/rand/v2"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// flourish is the activation animation on one navigation link: a random
// tilt that eases back to upright while the sprouting class is set.
type flourish struct {
	id    ElementID
	tween *gween.Tween
	tilt  float64
}

// flourishSet tracks at most one running flourish per link. There is no
// global animation manager; the scroll-spy advances the set every frame.
type flourishSet struct {
	r        Renderer
	duration time.Duration
	tilt     Range
	easing   ease.TweenFunc
	active   []flourish
}

func newFlourishSet(r Renderer, duration time.Duration, tilt Range) flourishSet {
	return flourishSet{r: r, duration: duration, tilt: tilt, easing: ease.OutCubic}
}

// randomTilt picks a magnitude in the tilt range with a random sign.
func randomTilt(rng *rand.Rand, tilt Range) float64 {
	sign := 1.0
	if rng.Float64() <= 0.5 {
		sign = -1
	}
	return sign * tilt.Lerp(rng.Float64())
}

// start (re)triggers the flourish on id. The class is dropped and set again
// so an already-running animation restarts from the beginning.
func (fs *flourishSet) start(id ElementID, rng *rand.Rand) {
	fs.stop(id)
	tilt := randomTilt(rng, fs.tilt)
	fs.r.SetClass(id, ClassSprouting, true)
	fs.r.SetTransform(id, Transform{Rotation: tilt, Scale: 1})
	if fs.duration <= 0 {
		fs.finish(id)
		return
	}
	fs.active = append(fs.active, flourish{
		id:    id,
		tween: gween.New(float32(tilt), 0, float32(fs.duration.Seconds()), fs.easing),
		tilt:  tilt,
	})
}

// stop cancels any flourish on id and clears its class.
func (fs *flourishSet) stop(id ElementID) {
	for i := range fs.active {
		if fs.active[i].id == id {
			fs.active = append(fs.active[:i], fs.active[i+1:]...)
			break
		}
	}
	fs.r.SetClass(id, ClassSprouting, false)
}

func (fs *flourishSet) finish(id ElementID) {
	fs.r.SetClass(id, ClassSprouting, false)
	fs.r.SetTransform(id, Transform{Scale: 1})
}

// tiltOf returns the current tilt of a running flourish.
func (fs *flourishSet) tiltOf(id ElementID) (float64, bool) {
	for _, f := range fs.active {
		if f.id == id {
			return f.tilt, true
		}
	}
	return 0, false
}

// update advances every running flourish by dt.
func (fs *flourishSet) update(dt time.Duration) {
	if dt <= 0 || len(fs.active) == 0 {
		return
	}
	live := fs.active[:0]
	for _, f := range fs.active {
		v, finished := f.tween.Update(float32(dt.Seconds()))
		if finished {
			fs.finish(f.id)
			continue
		}
		f.tilt = float64(v)
		fs.r.SetTransform(f.id, Transform{Rotation: f.tilt, Scale: 1})
		live = append(live, f)
	}
	clear(fs.active[len(live):])
	fs.active = live
}

// running returns the number of flourishes still playing.
func (fs *flourishSet) running() int {
	return len(fs.active)
}
