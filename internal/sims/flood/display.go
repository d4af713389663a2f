package flood

import "image/color"

// DepthBand buckets water depth for display.
type DepthBand uint8

const (
	BandDry DepthBand = iota
	BandTrace
	BandLight
	BandMedium
	BandDeep
	BandDeepest
)

const (
	// DryDepth is the depth at or below which a cell renders as dry land.
	DryDepth = 0.01

	displayBandMask     = 0x07
	displayTerrainShift = 3
	displayTerrainMask  = 0x18
)

// Upper bounds of the Trace..Deep bands; anything deeper is Deepest.
var bandLimits = [...]float64{0.05, 0.35, 0.65, 0.95}

// BandFor returns the display band for a water depth.
func BandFor(depth float64) DepthBand {
	if !(depth > DryDepth) {
		return BandDry
	}
	for i, limit := range bandLimits {
		if depth <= limit {
			return BandTrace + DepthBand(i)
		}
	}
	return BandDeepest
}

// terrainLevel quantizes elevation into four shades.
func terrainLevel(h float64) uint8 {
	switch {
	case h < 0.25:
		return 0
	case h < 1:
		return 1
	case h < 2:
		return 2
	default:
		return 3
	}
}

func encodeDisplayValue(band DepthBand, level uint8) uint8 {
	return uint8(band)&displayBandMask | (level<<displayTerrainShift)&displayTerrainMask
}

var floodPalette = buildFloodPalette()

// Cells exposes the N×N display buffer, rebuilt after every step and
// every defense placement.
func (d *Driver) Cells() []uint8 { return d.display }

// Palette exposes the colors indexed by Cells values.
func (d *Driver) Palette() []color.RGBA { return floodPalette }

func (d *Driver) rebuildDisplay() {
	g := d.grid
	if g == nil {
		d.display = nil
		return
	}
	n := g.n
	if len(d.display) != n*n {
		d.display = make([]uint8, n*n)
	}
	stride := n + 2
	water := g.WaterCells()
	terrain := g.TerrainCells()
	for y := 0; y < n; y++ {
		row := (y+1)*stride + 1
		for x := 0; x < n; x++ {
			i := row + x
			d.display[y*n+x] = encodeDisplayValue(BandFor(water[i]), terrainLevel(terrain[i]))
		}
	}
}

func buildFloodPalette() []color.RGBA {
	palette := make([]color.RGBA, 32)
	for i := range palette {
		band := DepthBand(i & displayBandMask)
		level := uint8((i & displayTerrainMask) >> displayTerrainShift)
		palette[i] = toRGBA(paletteColorFor(band, level))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func paletteColorFor(band DepthBand, level uint8) color.NRGBA {
	ground := terrainColor(level)
	switch band {
	case BandDry:
		return ground
	case BandTrace:
		return blendColors(ground, waterColor(band), 0.25)
	case BandLight:
		return blendColors(ground, waterColor(band), 0.55)
	case BandMedium:
		return blendColors(ground, waterColor(band), 0.75)
	default:
		return blendColors(ground, waterColor(band), 0.9)
	}
}

func terrainColor(level uint8) color.NRGBA {
	switch level {
	case 0:
		return color.NRGBA{R: 86, G: 120, B: 62, A: 255}
	case 1:
		return color.NRGBA{R: 120, G: 128, B: 74, A: 255}
	case 2:
		return color.NRGBA{R: 130, G: 112, B: 90, A: 255}
	default:
		return color.NRGBA{R: 170, G: 168, B: 172, A: 255}
	}
}

func waterColor(band DepthBand) color.NRGBA {
	switch band {
	case BandTrace:
		return color.NRGBA{R: 150, G: 200, B: 235, A: 255}
	case BandLight:
		return color.NRGBA{R: 90, G: 160, B: 225, A: 255}
	case BandMedium:
		return color.NRGBA{R: 50, G: 115, B: 200, A: 255}
	case BandDeep:
		return color.NRGBA{R: 25, G: 70, B: 160, A: 255}
	default:
		return color.NRGBA{R: 10, G: 35, B: 110, A: 255}
	}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	inv := 1 - overlayWeight
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*inv + float64(b)*overlayWeight + 0.5)
	}
	return color.NRGBA{
		R: mix(base.R, overlay.R),
		G: mix(base.G, overlay.G),
		B: mix(base.B, overlay.B),
		A: mix(base.A, overlay.A),
	}
}

// ElevationField returns a dense N×N copy of the interior terrain, row-major
// from the first logical row. It is nil before Initialize.
func (d *Driver) ElevationField() []float64 {
	if d.grid == nil {
		return nil
	}
	return d.grid.interior(d.grid.terrain)
}

// DepthField returns a dense N×N copy of the interior water depth.
func (d *Driver) DepthField() []float64 {
	if d.grid == nil {
		return nil
	}
	return d.grid.interiorWater()
}
