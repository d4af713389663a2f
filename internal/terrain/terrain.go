// Package terrain builds elevation fields for hosts and tests. It stands in
// for the map-loading collaborator: the flood engine only sees the resulting
// flood.Elevation.
package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"floodgrid/internal/sims/flood"
	"floodgrid/pkg/core"
)

// NoiseConfig holds layered simplex noise parameters.
type NoiseConfig struct {
	Seed        int64
	Octaves     int
	Frequency   float64 // base frequency in cycles per cell
	Persistence float64 // amplitude falloff per octave
	Amplitude   float64 // maximum elevation
	// BasinDepth lowers the map centre so water collects there; 0 disables it.
	BasinDepth float64
}

// DefaultNoiseConfig returns gentle rolling terrain.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Seed:        42,
		Octaves:     4,
		Frequency:   0.08,
		Persistence: 0.5,
		Amplitude:   2,
		BasinDepth:  0.5,
	}
}

// Noise generates an n×n elevation field in [0, Amplitude] from octave
// opensimplex noise. The same config always yields the same field.
func Noise(n int, cfg NoiseConfig) flood.ElevationGrid {
	out := flood.NewElevationGrid(n)
	if n == 0 {
		return out
	}
	if cfg.Octaves <= 0 {
		cfg.Octaves = 1
	}
	noise := opensimplex.NewNormalized(cfg.Seed)
	centre := float64(n-1) / 2
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			elev := octaveNoise(noise, float64(x), float64(y), cfg.Octaves, cfg.Frequency, cfg.Persistence)
			if cfg.BasinDepth > 0 && centre > 0 {
				dx := (float64(x) - centre) / centre
				dy := (float64(y) - centre) / centre
				r2 := dx*dx + dy*dy
				if r2 > 1 {
					r2 = 1
				}
				elev -= cfg.BasinDepth * (1 - r2)
				if elev < 0 {
					elev = 0
				}
			}
			out[y][x] = elev * cfg.Amplitude
		}
	}
	return out
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}

// ScatterConfig holds the two-pass wall scatter parameters.
type ScatterConfig struct {
	Seed           int64
	BaseChance     float64 // chance any cell becomes a wall
	AdjacentChance float64 // chance a cell next to a first-pass wall becomes one
	Height         float64
}

// DefaultScatterConfig returns sparse clustered walls one unit tall.
func DefaultScatterConfig() ScatterConfig {
	return ScatterConfig{Seed: 42, BaseChance: 0.05, AdjacentChance: 0.10, Height: 1}
}

// Scatter places walls at random in two passes: every cell rolls BaseChance,
// then every open cell with a first-pass wall among its eight neighbours
// rolls AdjacentChance. Second-pass walls do not seed further walls.
func Scatter(n int, cfg ScatterConfig) flood.ElevationGrid {
	out := flood.NewElevationGrid(n)
	rng := core.NewRNG(cfg.Seed)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if rng.Chance(cfg.BaseChance) {
				out[y][x] = cfg.Height
			}
		}
	}

	adjacent := make([]bool, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if out[y][x] > 0 {
				continue
			}
			adjacent[y*n+x] = hasWallNeighbour(out, x, y)
		}
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if adjacent[y*n+x] && rng.Chance(cfg.AdjacentChance) {
				out[y][x] = cfg.Height
			}
		}
	}
	return out
}

func hasWallNeighbour(e flood.ElevationGrid, x, y int) bool {
	n := len(e)
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= n {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= n || (dx == 0 && dy == 0) {
				continue
			}
			if e[ny][nx] > 0 {
				return true
			}
		}
	}
	return false
}

// Flat returns an n×n field at height h.
func Flat(n int, h float64) flood.ElevationGrid {
	out := flood.NewElevationGrid(n)
	for y := range out {
		for x := range out[y] {
			out[y][x] = h
		}
	}
	return out
}

// Ramp returns an n×n field rising by slope per cell along +x.
func Ramp(n int, slope float64) flood.ElevationGrid {
	out := flood.NewElevationGrid(n)
	for y := range out {
		for x := range out[y] {
			out[y][x] = float64(x) * slope
		}
	}
	return out
}
