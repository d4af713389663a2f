//go:build !ebiten

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"floodgrid/internal/app"
)

// Without the ebiten tag the viewer runs headless for a fixed number of steps
// and prints the final statistics.
func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", 200, "steps to run in the headless build")
	flag.Parse()

	logger := app.NewLogger(os.Stderr, cfg.Verbose)
	logger.Info("GUI disabled; rebuild with -tags ebiten for the viewer")

	session, err := app.NewSession(cfg, logger)
	if err != nil {
		logger.Error("failed to start session", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	stats := session.Run(*steps)
	fmt.Printf("ticks=%s flooded=%s/%s (%.1f%%) volume=%s max_depth=%s\n",
		humanize.Comma(int64(stats.Tick)),
		humanize.Comma(int64(stats.FloodedCells)),
		humanize.Comma(int64(stats.TotalCells)),
		stats.FloodedFraction*100,
		humanize.FtoaWithDigits(stats.TotalVolume, 4),
		humanize.FtoaWithDigits(stats.MaxDepth, 3),
	)
	if a, ok := session.Alert(); ok {
		fmt.Printf("%s alert %s raised at tick %d (%.0f%% of dry land flooded)\n", a.Level, a.ID, a.Tick, a.Fraction*100)
	}
}
