// Package config holds the run settings for the delay pipeline.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

type Input struct {
	Path      string `json:"path" yaml:"path" toml:"path"`
	Type      string `json:"type" yaml:"type" toml:"type"` // csv|jsonl|parquet|xlsx (default: by extension, else csv)
	HasHeader bool   `json:"has_header" yaml:"has_header" toml:"has_header"`
	Delimiter string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
	Sheet     string `json:"sheet" yaml:"sheet" toml:"sheet"`
}

// DefaultInputPath is the dataset file looked up when no input is configured.
const DefaultInputPath = "flight_delay.csv"

// OrDefault fills an empty Path with DefaultInputPath under dir when that
// file exists.
func (in Input) OrDefault(dir string) Input {
	if in.Path != "" {
		return in
	}
	p := filepath.Join(dir, DefaultInputPath)
	if st, err := os.Stat(p); err == nil && !st.IsDir() {
		in.Path = p
	}
	return in
}

type Output struct {
	Path      string `json:"path" yaml:"path" toml:"path"`
	Type      string `json:"type" yaml:"type" toml:"type"`
	Delimiter string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
}

// Columns names the dataset fields the pipeline relies on.
type Columns struct {
	Departure          string `json:"departure" yaml:"departure" toml:"departure"`
	Arrival            string `json:"arrival" yaml:"arrival" toml:"arrival"`
	DepartureAirport   string `json:"departure_airport" yaml:"departure_airport" toml:"departure_airport"`
	DestinationAirport string `json:"destination_airport" yaml:"destination_airport" toml:"destination_airport"`
	Target             string `json:"target" yaml:"target" toml:"target"`
}

func (c Columns) Categorical() []string {
	return []string{c.DepartureAirport, c.DestinationAirport}
}

func (c Columns) Required() []string {
	return []string{c.Departure, c.Arrival, c.DepartureAirport, c.DestinationAirport, c.Target}
}

type Outliers struct {
	Whisker float64 `json:"whisker" yaml:"whisker" toml:"whisker"`
}

type Split struct {
	Column   string  `json:"column" yaml:"column" toml:"column"`
	TestYear float64 `json:"test_year" yaml:"test_year" toml:"test_year"`
}

type Scaling struct {
	Mode          string     `json:"mode" yaml:"mode" toml:"mode"` // per_split|train_fit
	QuantileRange [2]float64 `json:"quantile_range" yaml:"quantile_range" toml:"quantile_range"`
}

type Selection struct {
	K           int     `json:"k" yaml:"k" toml:"k"`
	MaxFeatures int     `json:"max_features" yaml:"max_features" toml:"max_features"`
	RidgeAlpha  float64 `json:"ridge_alpha" yaml:"ridge_alpha" toml:"ridge_alpha"`
}

type Models struct {
	Names            []string `json:"names" yaml:"names" toml:"names"` // ridge|polynomial|decision_tree|linear
	RidgeAlpha       float64  `json:"ridge_alpha" yaml:"ridge_alpha" toml:"ridge_alpha"`
	PolynomialDegree int      `json:"polynomial_degree" yaml:"polynomial_degree" toml:"polynomial_degree"`
	TreeMaxDepth     int      `json:"tree_max_depth" yaml:"tree_max_depth" toml:"tree_max_depth"` // 0 grows until pure
	// TestReference picks the reference series for test metrics:
	// "actual" (default) or "prediction". Train metrics always use the prediction.
	TestReference string `json:"test_reference" yaml:"test_reference" toml:"test_reference"`
}

type Log struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Format string `json:"format" yaml:"format" toml:"format"` // text|json
}

type Config struct {
	Input     Input     `json:"input" yaml:"input" toml:"input"`
	Output    Output    `json:"output" yaml:"output" toml:"output"`
	Columns   Columns   `json:"columns" yaml:"columns" toml:"columns"`
	Outliers  Outliers  `json:"outliers" yaml:"outliers" toml:"outliers"`
	Split     Split     `json:"split" yaml:"split" toml:"split"`
	Scaling   Scaling   `json:"scaling" yaml:"scaling" toml:"scaling"`
	Selection Selection `json:"selection" yaml:"selection" toml:"selection"`
	Models    Models    `json:"models" yaml:"models" toml:"models"`
	Log       Log       `json:"log" yaml:"log" toml:"log"`
}

// Default returns a configuration matching the published flight dataset.
func Default() Config {
	return Config{
		Input: Input{HasHeader: true},
		Columns: Columns{
			Departure:          "Scheduled depature time",
			Arrival:            "Scheduled arrival time",
			DepartureAirport:   "Depature Airport",
			DestinationAirport: "Destination Airport",
			Target:             "Delay",
		},
		Outliers:  Outliers{Whisker: 1.5},
		Split:     Split{Column: "Departure year", TestYear: 2018},
		Scaling:   Scaling{Mode: "per_split", QuantileRange: [2]float64{25, 75}},
		Selection: Selection{K: 7, MaxFeatures: 7, RidgeAlpha: 1.0},
		Models: Models{
			Names:            []string{"ridge", "polynomial", "decision_tree"},
			RidgeAlpha:       1.0,
			PolynomialDegree: 2,
			TestReference:    "actual",
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads a JSON, YAML or TOML file on top of Default. The format is
// picked from the file extension; unknown extensions are read as JSON.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		err = json.Unmarshal(b, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	for _, n := range c.Columns.Required() {
		if n == "" {
			return fmt.Errorf("config: columns section has an empty name")
		}
	}
	if c.Outliers.Whisker < 0 {
		return fmt.Errorf("config: outliers.whisker must be >= 0, got %v", c.Outliers.Whisker)
	}
	if c.Split.Column == "" {
		return fmt.Errorf("config: split.column is empty")
	}
	switch c.Scaling.Mode {
	case "", "per_split", "train_fit":
	default:
		return fmt.Errorf("config: unknown scaling.mode %q", c.Scaling.Mode)
	}
	q := c.Scaling.QuantileRange
	if q[0] < 0 || q[1] > 100 || q[0] >= q[1] {
		return fmt.Errorf("config: invalid scaling.quantile_range %v", q)
	}
	if c.Selection.K < 0 || c.Selection.MaxFeatures < 0 {
		return fmt.Errorf("config: selection sizes must be >= 0")
	}
	if len(c.Models.Names) == 0 {
		return fmt.Errorf("config: models.names is empty")
	}
	for _, m := range c.Models.Names {
		switch m {
		case "ridge", "polynomial", "decision_tree", "linear":
		default:
			return fmt.Errorf("config: unknown model %q", m)
		}
	}
	if c.Models.PolynomialDegree < 1 {
		return fmt.Errorf("config: models.polynomial_degree must be >= 1")
	}
	switch c.Models.TestReference {
	case "", "actual", "prediction":
	default:
		return fmt.Errorf("config: unknown models.test_reference %q", c.Models.TestReference)
	}
	return nil
}

// Delimiter returns the first rune of s, or ',' when s is empty.
func Delimiter(s string) rune {
	if s == "" {
		return ','
	}
	return []rune(s)[0]
}

// Logger builds the process logger from the log section.
func (l Log) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
