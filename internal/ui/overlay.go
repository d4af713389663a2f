//go:build ebiten

package ui

import (
	"image/color"

	"floodgrid/internal/core"
	"floodgrid/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// FieldSource exposes the scalar fields the overlay can visualise.
type FieldSource interface {
	Size() core.Size
	ElevationField() []float64
	DepthField() []float64
	MaxDepth() float64
}

var depthTint = color.RGBA{R: 64, G: 164, B: 223}

// Overlay draws optional terrain and depth heat maps over the grid view.
type Overlay struct {
	src       FieldSource
	scale     int
	showElev  bool
	showDepth bool

	painter *render.GridPainter
}

// NewOverlay constructs an overlay for src.
func NewOverlay(src FieldSource, scale int) *Overlay {
	return &Overlay{src: src, scale: scale}
}

// Update toggles layers: 1 or E for elevation, 2 or D for depth.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) || inpututil.IsKeyJustPressed(ebiten.KeyE) {
		o.showElev = !o.showElev
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.showDepth = !o.showDepth
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showElev && !o.showDepth {
		return
	}
	size := o.src.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.painter == nil {
		o.painter = render.NewGridPainter(size.W, size.H)
	} else if w, h := o.painter.Size(); w != size.W || h != size.H {
		o.painter = render.NewGridPainter(size.W, size.H)
	}

	if o.showElev {
		o.painter.BlitElevation(screen, o.src.ElevationField(), o.scale)
	}
	if o.showDepth {
		o.painter.BlitDepth(screen, o.src.DepthField(), o.src.MaxDepth(), depthTint, o.scale)
	}
}
