// Command sketch-soak drives every sketch with random pointer and key input
// and reports step times and any sketch that panics.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/prepositions/internal/logger"
	"github.com/plus3/prepositions/sketch"
	_ "github.com/plus3/prepositions/sketch/catalog"
)

func main() {
	frames := flag.Int("frames", 3000, "Frames of random input per sketch.")
	seed := flag.Uint64("seed", 1, "Seed for the random input.")
	only := flag.String("sketch", "", "Soak only the variants of this preposition.")
	flag.Parse()

	log := logger.Default().WithPrefix("soak")

	defs := sketch.All()
	if *only != "" {
		defs = sketch.Variants(*only)
		if len(defs) == 0 {
			log.Error("unknown sketch %q", *only)
			os.Exit(1)
		}
	}

	report := &Report{Frames: *frames, Seed: *seed}
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	for _, def := range defs {
		done := log.Step(def.Name())
		result, err := soak(def, *frames, *seed)
		done()
		if err != nil {
			log.Error("%v", err)
			report.Failed = append(report.Failed, err.Error())
			continue
		}
		report.Results = append(report.Results, result)
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)

	if err := report.Generate(os.Stdout); err != nil {
		log.Error("failed to generate report: %v", err)
		os.Exit(1)
	}
	if len(report.Failed) > 0 {
		fmt.Fprintf(os.Stderr, "%d sketches failed\n", len(report.Failed))
		os.Exit(1)
	}
}
