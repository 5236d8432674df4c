// Package main searches for the heaviest default star field that still renders
// within a frame budget on this machine, and writes it out as a config file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/game"
)

// evalRecord is one row of tune_log.csv.
type evalRecord struct {
	Eval        int     `csv:"eval"`
	Fitness     float64 `csv:"fitness"`
	StarCount   int     `csv:"star_count"`
	TrailLength int     `csv:"trail_length"`
	AvgFrameUS  int64   `csv:"avg_frame_us"`
}

// Search bounds. The optimizer works on [0, 1] per dimension.
const (
	minStars = 100
	maxStars = 3000
	maxTrail = 100
)

func denormalize(x []float64) (stars, trail int) {
	clamp := func(v float64) float64 { return math.Max(0, math.Min(1, v)) }
	stars = minStars + int(math.Round(clamp(x[0])*(maxStars-minStars)))
	trail = int(math.Round(clamp(x[1]) * maxTrail))
	return stars, trail
}

// fitness rewards load and penalises frames over budget. Trails count for a
// fifth of a star each, so the search prefers more stars over longer trails.
func fitness(stars, trail int, avg, budget time.Duration) float64 {
	load := float64(stars) * (1 + 0.2*float64(trail)/maxTrail)
	if avg > budget {
		over := float64(avg-budget) / float64(budget)
		return -load + 1e4*over
	}
	return -load
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	frames := flag.Int("frames", 600, "Headless frames per evaluation")
	budgetMs := flag.Float64("budget-ms", 4, "Mean frame time budget in milliseconds")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	base := config.Cfg()
	budget := time.Duration(*budgetMs * float64(time.Millisecond))
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	headerWritten := false

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestStars, bestTrail int
	start := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			stars, trail := denormalize(x)

			cfg := *base
			cfg.Defaults.StarCount = stars
			cfg.Defaults.TrailLength = trail
			cfg.Quality.Enabled = false // Measure the count we asked for

			res := game.RunHeadless(game.Options{
				Config: &cfg,
				Rand:   rand.New(rand.NewSource(42)),
				Logger: quiet,
			}, *frames)

			f := fitness(stars, trail, res.Perf.AvgFrame, budget)
			evalCount++
			if f < bestFitness {
				bestFitness, bestStars, bestTrail = f, stars, trail
			}

			rec := []evalRecord{{
				Eval:        evalCount,
				Fitness:     f,
				StarCount:   stars,
				TrailLength: trail,
				AvgFrameUS:  res.Perf.AvgFrame.Microseconds(),
			}}
			if headerWritten {
				err = gocsv.MarshalWithoutHeaders(rec, logFile)
			} else {
				err = gocsv.Marshal(rec, logFile)
				headerWritten = true
			}
			if err != nil {
				log.Printf("failed to log evaluation: %v", err)
			}

			fmt.Printf("Eval %d/%d: stars=%d trail=%d avg=%s (best stars=%d trail=%d) | elapsed: %s\n",
				evalCount, *maxEvals, stars, trail, res.Perf.AvgFrame,
				bestStars, bestTrail, time.Since(start).Round(time.Second))
			return f
		},
	}

	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	initX := []float64{
		float64(base.Defaults.StarCount-minStars) / (maxStars - minStars),
		float64(base.Defaults.TrailLength) / maxTrail,
	}

	fmt.Printf("Tuning against a %s frame budget, %d frames per evaluation\n", budget, *frames)
	if _, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{}); err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if evalCount == 0 {
		log.Fatal("no evaluations ran")
	}

	fmt.Printf("\nBest: stars=%d trail=%d after %d evaluations\n", bestStars, bestTrail, evalCount)

	best := *base
	best.Defaults.StarCount = bestStars
	best.Defaults.TrailLength = bestTrail
	outPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := best.WriteYAML(outPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("Best config saved to: %s\n", outPath)
	}
}
