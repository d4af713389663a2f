//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"floodgrid/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := app.NewLogger(os.Stderr, cfg.Verbose)

	session, err := app.NewSession(cfg, logger)
	if err != nil {
		logger.Error("failed to start session", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	game := app.New(session, cfg.Scale, cfg.Panel)
	size := session.Size()

	ebiten.SetWindowTitle("floodgrid: " + session.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.Panel, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}
