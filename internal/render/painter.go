//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads per-cell colors into a single n×n image and draws it
// scaled onto the screen.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// BlitPalette draws palette-indexed cells.
func (gp *GridPainter) BlitPalette(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, palette)
	gp.draw(dst, scale)
}

// BlitElevation draws a square elevation field as a translucent heat map.
func (gp *GridPainter) BlitElevation(dst *ebiten.Image, field []float64, scale int) {
	if gp.w != gp.h || len(field) != gp.w*gp.h {
		return
	}
	fillElevationRGBA(gp.buf, field, gp.w)
	gp.draw(dst, scale)
}

// BlitDepth draws water depth as a tint that saturates at maxDepth.
func (gp *GridPainter) BlitDepth(dst *ebiten.Image, depth []float64, maxDepth float64, tint color.RGBA, scale int) {
	if len(depth) != gp.w*gp.h {
		return
	}
	fillDepthRGBA(gp.buf, depth, maxDepth, tint)
	gp.draw(dst, scale)
}

func (gp *GridPainter) draw(dst *ebiten.Image, scale int) {
	if scale <= 0 {
		scale = 1
	}
	gp.img.WritePixels(gp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
