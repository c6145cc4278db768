package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.Split.TestYear != 2018 || c.Selection.K != 7 || c.Outliers.Whisker != 1.5 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Columns.Departure != "Scheduled depature time" {
		t.Fatalf("departure column = %q", c.Columns.Departure)
	}
}

func TestLoad(t *testing.T) {
	Convey("Given config files in each format", t, func() {
		Convey("YAML overrides only the fields it sets", func() {
			p := write(t, "run.yaml", "input:\n  path: flights.csv\nsplit:\n  test_year: 2017\nscaling:\n  mode: train_fit\n")
			c, err := Load(p)
			So(err, ShouldBeNil)
			So(c.Input.Path, ShouldEqual, "flights.csv")
			So(c.Input.HasHeader, ShouldBeTrue)
			So(c.Split.TestYear, ShouldEqual, 2017)
			So(c.Split.Column, ShouldEqual, "Departure year")
			So(c.Scaling.Mode, ShouldEqual, "train_fit")
		})
		Convey("TOML is decoded by extension", func() {
			p := write(t, "run.toml", "[selection]\nk = 5\n\n[models]\nnames = [\"ridge\", \"linear\"]\n")
			c, err := Load(p)
			So(err, ShouldBeNil)
			So(c.Selection.K, ShouldEqual, 5)
			So(c.Models.Names, ShouldResemble, []string{"ridge", "linear"})
			So(c.Models.PolynomialDegree, ShouldEqual, 2)
		})
		Convey("JSON is the fallback", func() {
			p := write(t, "run.json", `{"log":{"level":"debug","format":"json"}}`)
			c, err := Load(p)
			So(err, ShouldBeNil)
			So(c.Log.Level, ShouldEqual, "debug")
		})
		Convey("Invalid values are rejected", func() {
			p := write(t, "bad.yaml", "models:\n  names: [forest]\n")
			_, err := Load(p)
			So(err, ShouldNotBeNil)
		})
		Convey("The test metric reference is switchable", func() {
			p := write(t, "ref.yaml", "models:\n  test_reference: prediction\n")
			c, err := Load(p)
			So(err, ShouldBeNil)
			So(c.Models.TestReference, ShouldEqual, "prediction")
			So(c.Models.Names, ShouldResemble, []string{"ridge", "polynomial", "decision_tree"})

			_, err = Load(write(t, "badref.yaml", "models:\n  test_reference: observed\n"))
			So(err, ShouldNotBeNil)
		})
		Convey("Missing files are errors", func() {
			_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDelimiter(t *testing.T) {
	if Delimiter("") != ',' || Delimiter(";") != ';' || Delimiter("\t") != '\t' {
		t.Fatal("delimiter parsing")
	}
}

func TestInputOrDefault(t *testing.T) {
	Convey("Given a run without an input path", t, func() {
		dir := t.TempDir()

		Convey("Nothing is picked when the dataset file is absent", func() {
			So(Input{}.OrDefault(dir).Path, ShouldEqual, "")
		})
		Convey("flight_delay.csv in the directory is used", func() {
			p := filepath.Join(dir, DefaultInputPath)
			So(os.WriteFile(p, []byte("Delay\n1\n"), 0o644), ShouldBeNil)
			in := Input{HasHeader: true}.OrDefault(dir)
			So(in.Path, ShouldEqual, p)
			So(in.HasHeader, ShouldBeTrue)
		})
		Convey("An explicit path is kept", func() {
			So(os.WriteFile(filepath.Join(dir, DefaultInputPath), nil, 0o644), ShouldBeNil)
			So(Input{Path: "other.csv"}.OrDefault(dir).Path, ShouldEqual, "other.csv")
		})
	})
}
