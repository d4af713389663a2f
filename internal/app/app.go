//go:build ebiten

package app

import (
	"floodgrid/internal/render"
	"floodgrid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a flood session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale int
	panel int
}

// New constructs a Game for the provided session.
func New(s *Session, scale, panel int) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := s.Size()
	return &Game{
		session: s,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(s, scale),
		hud:     ui.NewHUD(s, s, panel),
		scale:   scale,
		panel:   panel,
	}
}

// Update handles per-frame input and lets the auto-stepper sample the wall
// clock, so dropped frames do not slow the simulation down.
func (g *Game) Update() error {
	d := g.session.Driver
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		d.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := d.Reset(); err != nil {
			return err
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if mx < g.viewWidth() {
			// Rejections are logged by the driver.
			_ = g.session.PlaceWall(mx, my, g.scale)
		}
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth())
	d.Poll()
	return nil
}

// Draw renders the grid, overlays and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	d := g.session.Driver
	g.painter.BlitPalette(screen, d.Cells(), d.Palette(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Size()
	return s.W*g.scale + g.panel, s.H * g.scale
}

func (g *Game) viewWidth() int { return g.session.Size().W * g.scale }
