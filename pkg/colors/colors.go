// Package colors makes visually distinguishable hex colors for
// categorical data (compartment badges and the like). Hues are spaced
// by the golden ratio, which keeps neighbours apart for any count.
package colors

import (
	"fmt"
	"math"
)

const goldenRatio = 0.618033988749895

const (
	DefaultSaturation = 0.65
	DefaultLightness  = 0.55
)

// Generate returns n hex colors ("#rrggbb").
func Generate(n int, saturation, lightness float64) []string {
	if n <= 0 {
		return nil
	}

	out := make([]string, 0, n)
	hue := 0.0
	for i := 0; i < n; i++ {
		r, g, b := hlsToRGB(hue, lightness, saturation)
		out = append(out, fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255)))
		hue = math.Mod(hue+goldenRatio, 1.0)
	}
	return out
}

// Assign pairs each item with a color, in slice order.
func Assign(items []string, saturation, lightness float64) map[string]string {
	palette := Generate(len(items), saturation, lightness)
	out := make(map[string]string, len(items))
	for i, item := range items {
		out[item] = palette[i]
	}
	return out
}

// hlsToRGB converts hue/lightness/saturation (all 0..1) to RGB.
func hlsToRGB(h, l, s float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}

	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2

	return ramp(m1, m2, h+1.0/3), ramp(m1, m2, h), ramp(m1, m2, h-1.0/3)
}

func ramp(m1, m2, hue float64) float64 {
	hue = math.Mod(hue, 1.0)
	if hue < 0 {
		hue += 1.0
	}
	switch {
	case hue < 1.0/6:
		return m1 + (m2-m1)*hue*6
	case hue < 0.5:
		return m2
	case hue < 2.0/3:
		return m1 + (m2-m1)*(2.0/3-hue)*6
	default:
		return m1
	}
}
