package sprout

import "math"

// Default leaf tones. Light is used far from the pointer, dark under it.
var (
	LightTone = RGB{R: 184, G: 198, B: 174}
	DarkTone  = RGB{R: 132, G: 155, B: 116}
)

// MixTone interpolates per channel from LightTone (t=0) to DarkTone (t=1).
func MixTone(t float64) RGB {
	return MixTones(LightTone, DarkTone, t)
}

// MixTones interpolates per channel between light and dark, rounding each
// channel to the nearest integer.
func MixTones(light, dark RGB, t float64) RGB {
	return RGB{
		R: mixChannel(light.R, dark.R, t),
		G: mixChannel(light.G, dark.G, t),
		B: mixChannel(light.B, dark.B, t),
	}
}

func mixChannel(a, b uint8, t float64) uint8 {
	v := math.Round(lerp(float64(a), float64(b), t))
	return uint8(clamp(v, 0, 255))
}
