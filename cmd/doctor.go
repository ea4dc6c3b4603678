package main

import (
	"context"
	"math"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geo-tutorial/internal/analysis"
	"github.com/sells-group/geo-tutorial/internal/buffer"
	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/export"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

type check struct {
	name string
	run  func(ctx context.Context) error
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify the environment can run the tutorial",
	Long:  "Checks that the output directory is writable and runs a small pipeline through every stage and export format.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := newConsole(cmd.OutOrStdout())
		out.banner("ENVIRONMENT CHECK")

		var failed int
		for _, c := range doctorChecks() {
			if err := c.run(cmd.Context()); err != nil {
				failed++
				out.linef("  FAIL  %s: %v", c.name, err)
				zap.L().Warn("doctor check failed", zap.String("check", c.name), zap.Error(err))
				continue
			}
			out.linef("  ok    %s", c.name)
		}

		if failed > 0 {
			return eris.Errorf("doctor: %d check(s) failed", failed)
		}
		out.linef("\nEverything looks good.")
		return nil
	},
}

func doctorChecks() []check {
	return []check{
		{"output directory writable", checkOutputDir},
		{"embedded seeds parse", checkSeeds},
		{"reprojection round trip", checkRoundTrip},
		{"influence areas", checkBuffers},
		{"export formats", checkExports},
	}
}

func checkOutputDir(context.Context) error {
	dir := cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return geoerr.NewIOError("mkdir", dir, err)
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return geoerr.NewIOError("create", dir, err)
	}
	name := f.Name()
	f.Close()
	if err := os.Remove(name); err != nil {
		return geoerr.NewIOError("remove", name, err)
	}
	return nil
}

func checkSeeds(context.Context) error {
	for _, name := range dataset.SeedNames() {
		if _, err := dataset.LoadSeed(name); err != nil {
			return err
		}
	}
	return nil
}

func smokeDataset() (*dataset.Dataset, error) {
	s, err := dataset.LoadSeed("us-cities")
	if err != nil {
		return nil, err
	}
	return s.Dataset, nil
}

func checkRoundTrip(context.Context) error {
	ds, err := smokeDataset()
	if err != nil {
		return err
	}
	merc, err := analysis.Reproject(ds, crs.WebMercator)
	if err != nil {
		return err
	}
	back, err := analysis.Reproject(merc, crs.WGS84)
	if err != nil {
		return err
	}
	for i := 0; i < ds.Len(); i++ {
		a, b := ds.Record(i), back.Record(i)
		if math.Abs(a.X()-b.X()) > 1e-6 || math.Abs(a.Y()-b.Y()) > 1e-6 {
			return eris.Errorf("%s drifted to (%f, %f)", a.Name, b.X(), b.Y())
		}
	}
	return nil
}

func checkBuffers(ctx context.Context) error {
	ds, err := smokeDataset()
	if err != nil {
		return err
	}
	bufs, err := buffer.Build(ctx, ds, cfg.Analysis.BufferRadiusM, buffer.WithSegments(cfg.Analysis.BufferSegments))
	if err != nil {
		return err
	}
	for i, b := range bufs {
		r := ds.Record(i)
		if !b.Contains(r.X(), r.Y()) {
			return eris.Errorf("influence area of %s does not contain it", b.Name)
		}
	}
	return nil
}

func checkExports(context.Context) error {
	ds, err := smokeDataset()
	if err != nil {
		return err
	}
	dir, err := os.MkdirTemp("", "geo-tutorial-doctor-")
	if err != nil {
		return geoerr.NewIOError("mkdir", os.TempDir(), err)
	}
	defer os.RemoveAll(dir)

	for _, f := range export.Formats() {
		if err := export.Export(ds, f, filepath.Join(dir, "smoke"+f.Ext())); err != nil {
			return eris.Wrapf(err, "%s", f)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
