package render

import (
	"image/color"
	"math"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillElevationRGBA shades an n×n elevation field with a hypsometric ramp.
// Steep cells are drawn more opaque so ridges and defenses stand out.
func fillElevationRGBA(buf []byte, field []float64, n int) {
	if n <= 0 || len(field) != n*n {
		return
	}
	lo, hi := field[0], field[0]
	for _, v := range field {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			idx := y*n + x
			t := 0.0
			if span > 0 {
				t = (field[idx] - lo) / span
			}
			col := ElevationColor(t)

			alpha := float64(col.A)
			if span > 0 {
				v := field[idx]
				maxDiff := 0.0
				if x > 0 {
					maxDiff = math.Max(maxDiff, math.Abs(v-field[idx-1]))
				}
				if x+1 < n {
					maxDiff = math.Max(maxDiff, math.Abs(v-field[idx+1]))
				}
				if y > 0 {
					maxDiff = math.Max(maxDiff, math.Abs(v-field[idx-n]))
				}
				if y+1 < n {
					maxDiff = math.Max(maxDiff, math.Abs(v-field[idx+n]))
				}
				alpha *= 0.55 + 0.45*clamp01(maxDiff/span)
			}

			base := idx * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = uint8(math.Round(math.Min(alpha, 255)))
		}
	}
}

// fillDepthRGBA tints each cell by its water depth relative to maxDepth.
// Dry cells stay transparent.
func fillDepthRGBA(buf []byte, depth []float64, maxDepth float64, tint color.RGBA) {
	const (
		maxAlpha      = 160.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	for i, d := range depth {
		base := i * 4
		intensity := 0.0
		if maxDepth > 0 {
			intensity = clamp01(d / maxDepth)
		}
		if intensity == 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		glow := glowBase + glowRange*math.Sqrt(intensity)
		buf[base+0] = scaleComponent(tint.R, glow)
		buf[base+1] = scaleComponent(tint.G, glow)
		buf[base+2] = scaleComponent(tint.B, glow)
		buf[base+3] = uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias)))
	}
}

// ElevationColor maps a normalized elevation in [0,1] onto a lowland to
// summit color ramp.
func ElevationColor(t float64) color.RGBA {
	t = clamp01(t)
	stops := []struct {
		t   float64
		col color.RGBA
	}{
		{0.0, color.RGBA{R: 40, G: 90, B: 60, A: 150}},
		{0.25, color.RGBA{R: 90, G: 140, B: 80, A: 165}},
		{0.5, color.RGBA{R: 170, G: 160, B: 90, A: 185}},
		{0.75, color.RGBA{R: 150, G: 110, B: 80, A: 205}},
		{1.0, color.RGBA{R: 240, G: 235, B: 225, A: 215}},
	}
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			local := (t - prev.t) / (curr.t - prev.t)
			return lerpRGBA(prev.col, curr.col, local)
		}
	}
	return stops[len(stops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

func scaleComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
