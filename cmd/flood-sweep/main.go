package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"floodgrid/internal/app"
	"floodgrid/internal/sims/flood"
	"floodgrid/internal/sweep"
	"floodgrid/internal/terrain"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	*l = (*l)[:0]
	for _, part := range strings.Split(value, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return err
		}
		*l = append(*l, v)
	}
	return nil
}

func main() {
	steps := flag.Int("steps", 240, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	n := flag.Int("n", 64, "interior grid size")
	seed := flag.Int64("seed", 1337, "terrain seed")
	top := flag.Int("top", 5, "results to print")
	blanket := flag.String("blanket", "corners", "initial water layout: full, edges or corners")
	depth := flag.Float64("depth", 2, "blanket depth")
	plotPath := flag.String("plot", "", "write a PNG of peak flooded area against dt to this path")
	verbose := flag.Bool("v", false, "debug logging")
	frictions := floatList{0.0, 0.02, 0.1}
	dts := floatList{0.05, 0.1, 0.2}
	gravities := floatList{4.9, 9.81}
	flag.Var(&frictions, "friction", "comma-separated friction values")
	flag.Var(&dts, "dt", "comma-separated timesteps")
	flag.Var(&gravities, "gravity", "comma-separated gravity values")
	var overrides kvList
	flag.Var(&overrides, "set", "base config override in key=value form (repeatable)")
	flag.Parse()

	logger := app.NewLogger(os.Stderr, *verbose)

	nSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "n" {
			nSet = true
		}
	})
	base := baseConfig(overrides, *n, nSet, logger)

	b, err := flood.ParseBlanket(*blanket)
	if err != nil {
		logger.Error("bad blanket", "error", err)
		os.Exit(2)
	}

	noise := terrain.DefaultNoiseConfig()
	noise.Seed = *seed
	src := terrain.Noise(base.N, noise)

	scenarios := sweep.Grid(base, frictions, dts, gravities)
	fmt.Printf("Sweeping %d scenarios (%d workers, %d steps, %d×%d grid)\n",
		len(scenarios), *workers, *steps, base.N, base.N)

	start := time.Now()
	results, err := sweep.Run(context.Background(), base, src, scenarios, sweep.Options{
		Steps:   *steps,
		Workers: *workers,
		Monitor: flood.DefaultMonitorConfig(),
		Init:    []flood.InitOption{flood.WithBlanket(b, *depth)},
	})
	if err != nil {
		logger.Error("sweep failed", "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	if *plotPath != "" {
		if err := writePlot(*plotPath, results); err != nil {
			logger.Error("plot failed", "path", *plotPath, "error", err)
			os.Exit(1)
		}
		logger.Info("plot written", "path", *plotPath)
	}
	sweep.Rank(results)

	cells := int64(base.N) * int64(base.N) * int64(*steps) * int64(len(scenarios))
	fmt.Printf("\nTop %d results (elapsed %s, %s cell updates):\n",
		*top, elapsed.Round(time.Millisecond), humanize.Comma(cells))
	for i := 0; i < len(results) && i < *top; i++ {
		res := results[i]
		alert := "never"
		switch {
		case res.AlertTick > 0:
			alert = "critical@" + humanize.Comma(int64(res.AlertTick))
		case res.WarningTick > 0:
			alert = "warning@" + humanize.Comma(int64(res.WarningTick))
		}
		fmt.Printf("%2d) peak=%.1f%% final=%.1f%% maxDepth=%s retained=%.1f%% alert=%s %s\n",
			i+1,
			res.PeakFlooded*100,
			res.Final.FloodedFraction*100,
			humanize.FtoaWithDigits(res.Final.MaxDepth, 3),
			res.Retained*100,
			alert,
			res.Scenario,
		)
	}
}

// baseConfig applies -set overrides to the flood defaults. The -n flag
// decides the grid size when given explicitly or when no n override exists.
func baseConfig(overrides kvList, n int, nSet bool, logger *slog.Logger) flood.Config {
	kv := map[string]string{}
	for _, entry := range overrides {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			logger.Warn("ignoring malformed override", "value", entry)
			continue
		}
		kv[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	base := flood.FromMap(kv)
	if _, ok := kv["n"]; nSet || !ok {
		base.N = n
	}
	return base
}

func writePlot(path string, results []sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sweep.WritePlot(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
