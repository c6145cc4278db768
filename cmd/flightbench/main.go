package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/config"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/delay"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/synth"
)

func main() {
	var (
		rows    = flag.Int("rows", 20_000, "flights to generate")
		seed    = flag.Int64("seed", 42, "random seed for the delay noise")
		depth   = flag.Int("tree-depth", 0, "decision tree depth limit (0 = unlimited)")
		mode    = flag.String("scaling", "per_split", "scaling mode: per_split or train_fit")
		jsonOut = flag.Bool("json", false, "emit JSON summary")
		verbose = flag.Bool("v", false, "log pipeline steps to stderr")
	)
	flag.Parse()

	if *verbose {
		slog.SetDefault(config.Log{Level: "debug"}.Logger(os.Stderr))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	cfg := config.Default()
	cfg.Models.TreeMaxDepth = *depth
	cfg.Scaling.Mode = *mode
	raw := synth.Flights(*rows, *seed)

	runtime.GC()
	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	rep, err := delay.Run(context.Background(), raw, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	r2 := map[string]float64{}
	for _, s := range rep.Scores {
		r2[s.Model] = s.Test.R2
	}
	summary := map[string]any{
		"rows":                  *rows,
		"train_rows":            rep.TrainRows,
		"test_rows":             rep.TestRows,
		"selected":              len(rep.Selected),
		"elapsed_ms":            elapsed.Milliseconds(),
		"rows_per_sec":          float64(*rows) / elapsed.Seconds(),
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
		"r2_test":               r2,
	}

	if *jsonOut {
		b, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(b))
		return
	}
	fmt.Printf("Rows: %d (train %d, test %d)\n", *rows, rep.TrainRows, rep.TestRows)
	fmt.Printf("Selected features: %d\n", len(rep.Selected))
	fmt.Printf("Elapsed: %s\n", elapsed)
	fmt.Printf("Throughput: %.0f rows/s\n", float64(*rows)/elapsed.Seconds())
	fmt.Printf("Total Alloc (delta): %d MB\n", (msAfter.TotalAlloc-msBefore.TotalAlloc)/1024/1024)
	fmt.Printf("GC cycles (delta): %d\n", msAfter.NumGC-msBefore.NumGC)
	for _, s := range rep.Scores {
		fmt.Printf("R2 test %-26s %.4f\n", s.Model, s.Test.R2)
	}
}
