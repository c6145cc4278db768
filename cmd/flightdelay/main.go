package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/config"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/delay"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/profile"
)

var (
	version = "0.1.0-dev"
)

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to run config (JSON, YAML or TOML)")
	input := flag.String("input", "", "Flight dataset; overrides input.path (default flight_delay.csv when present)")
	output := flag.String("output", "", "Score report file (csv, jsonl, parquet, xlsx); overrides output.path")
	showProfile := flag.Bool("profile", false, "Print a column profile of the prepared table")
	flag.Parse()

	if *showVersion {
		fmt.Println("flightdelay", version)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *input != "" {
		cfg.Input.Path = *input
	}
	if *output != "" {
		cfg.Output.Path = *output
	}
	cfg.Input = cfg.Input.OrDefault(".")
	if cfg.Input.Path == "" {
		fmt.Fprintln(os.Stderr, "no input provided and no flight_delay.csv here; try -input <file>, -config <file> or -version")
		os.Exit(2)
	}
	slog.SetDefault(cfg.Log.Logger(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raw, err := delay.Load(cfg.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rep, err := delay.Run(ctx, raw, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *showProfile || slog.Default().Enabled(ctx, slog.LevelDebug) {
		p := profile.Collect(rep.Cleaned, 5)
		if *showProfile {
			p.Render(os.Stdout)
		} else {
			slog.DebugContext(ctx, "prepared table profile", "run_id", rep.RunID.String(), "profile", p)
		}
	}
	if err := rep.Render(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Output.Path != "" {
		if err := rep.Save(cfg.Output); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
