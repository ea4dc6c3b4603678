package main

import (
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geo-tutorial/internal/analysis"
	"github.com/sells-group/geo-tutorial/internal/buffer"
	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/export"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
	"github.com/sells-group/geo-tutorial/internal/render"
)

var (
	tutorialSeed      string
	tutorialReference string
	tutorialFilter    string
)

var tips = []string{
	"Check the CRS of your data before any spatial operation.",
	"Use a projected CRS for distance and area calculations.",
	"Consider a spatial index for large datasets.",
	"Validate geometries before processing them.",
	"Pick the file format that fits each use case.",
	"Document every coordinate transformation.",
	"Web Mercator distances stretch with latitude; use geodesic math when accuracy matters.",
	"Test spatial operations on small example data first.",
}

var tutorialCmd = &cobra.Command{
	Use:   "tutorial",
	Short: "Full geospatial workflow on a seed dataset",
	Long:  "Walks through dataset inspection, maps and charts, filtering, distances, group statistics, influence areas, and exports in every supported format.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := newConsole(cmd.OutOrStdout())
		a := cfg.Analysis

		reference := a.Reference
		if tutorialReference != "" {
			reference = tutorialReference
		}

		out.banner("GEOSPATIAL TUTORIAL")

		s, err := dataset.LoadSeed(tutorialSeed)
		if err != nil {
			return err
		}
		ds := s.Dataset
		out.linef("Loaded %q: %d records", s.Title, ds.Len())

		// 1. Inspect.
		out.banner("Dataset information")
		out.linef("  CRS:        %s (%s)", ds.CRS(), ds.CRS().Units())
		out.linef("  Dimensions: %d records x %d attributes", ds.Len(), len(ds.Keys()))
		out.linef("  Columns:    %v", describeColumns(ds))

		sum, err := analysis.Describe(ds, a.NumericKey)
		if err != nil {
			return eris.Wrap(err, "tutorial: describe")
		}
		out.linef("\n  %s", a.NumericKey)
		out.linef("    count  %d", sum.Count)
		out.linef("    mean   %.1f", sum.Mean)
		if !math.IsNaN(sum.Std) {
			out.linef("    std    %.1f", sum.Std)
		}
		out.linef("    min    %.0f (%s)", sum.Min, sum.MinName)
		out.linef("    25%%    %.0f", sum.Q25)
		out.linef("    50%%    %.0f", sum.Median)
		out.linef("    75%%    %.0f", sum.Q75)
		out.linef("    max    %.0f (%s)", sum.Max, sum.MaxName)

		var written []string
		groups, err := analysis.GroupAggregate(ds, a.GroupKey, a.NumericKey)
		if err != nil {
			return eris.Wrap(err, "tutorial: group aggregate")
		}

		// 2. Visualize.
		if cfg.Render.Enabled {
			out.banner("Visualizations")
			path, err := outputPath("cities_map.png")
			if err != nil {
				return err
			}
			if err := render.PointMap(ds, mapOptions(s.Title, &s.Bounds), path); err != nil {
				return eris.Wrap(err, "tutorial: point map")
			}
			written = append(written, path)
			out.linef("  map:    %s", path)

			chartPath, err := outputPath("cities_charts.html")
			if err != nil {
				return err
			}
			if err := writeCharts(ds, s.Title, chartPath); err != nil {
				return err
			}
			written = append(written, chartPath)
			out.linef("  charts: %s", chartPath)
		}

		// 3. Spatial operations.
		out.banner("Spatial operations")
		if tutorialFilter != "" {
			subset, err := ds.Filter(a.GroupKey, tutorialFilter)
			if err != nil {
				return eris.Wrap(err, "tutorial: filter")
			}
			out.linef("Records with %s=%s: %v", a.GroupKey, tutorialFilter, subset.Names())
		}

		projected, err := analysis.Reproject(ds, crs.WebMercator)
		if err != nil {
			return eris.Wrap(err, "tutorial: reproject")
		}
		distances, err := analysis.PairwiseDistance(projected, reference)
		if err != nil {
			return eris.Wrap(err, "tutorial: distances")
		}
		out.linef("\nDistances from %s (planar, %s):", reference, projected.CRS())
		for _, d := range distances {
			out.linef("  %s -> %s: %.1f km", reference, d.Name, d.Kilometers())
		}

		out.linef("\nStatistics by %s:", a.GroupKey)
		out.linef("  %-15s %8s %15s %15s", a.GroupKey, "count", "sum", "mean")
		for _, g := range groups {
			out.linef("  %-15s %8d %15.0f %15.2f", g.Group, g.Count, g.Sum, g.Mean)
		}

		// 4. Influence areas.
		out.banner("Influence areas")
		bufs, err := buffer.Build(ctx, ds, a.BufferRadiusM,
			buffer.WithSegments(a.BufferSegments),
			buffer.WithConcurrency(a.Concurrency),
		)
		if err != nil {
			return eris.Wrap(err, "tutorial: buffers")
		}
		out.linef("Built %d influence areas of %.0f km", len(bufs), a.BufferRadiusM/1000)

		bufPath, err := outputPath("influence_areas" + export.GeoJSON.Ext())
		if err != nil {
			return err
		}
		if err := export.WriteBuffersGeoJSON(bufs, bufPath); err != nil {
			return eris.Wrap(err, "tutorial: write buffers")
		}
		written = append(written, bufPath)

		if cfg.Render.Enabled {
			path, err := outputPath("influence_areas.png")
			if err != nil {
				return err
			}
			title := out.p.Sprintf("Influence areas (%.0f km)", a.BufferRadiusM/1000)
			if err := render.BufferMap(ds, bufs, mapOptions(title, &s.Bounds), path); err != nil {
				return eris.Wrap(err, "tutorial: buffer map")
			}
			written = append(written, path)
		}

		// 5. Export.
		out.banner("Saving data")
		for _, f := range export.Formats() {
			path, err := outputPath("cities_example" + f.Ext())
			if err != nil {
				return err
			}
			if err := export.Export(ds, f, path); err != nil {
				return eris.Wrapf(err, "tutorial: export %s", f)
			}
			out.linef("  saved %s", f)
			if f == export.Shapefile {
				written = append(written, export.ShapefileParts(path)...)
			} else {
				written = append(written, path)
			}
		}

		xlsxPath, err := outputPath("cities_stats.xlsx")
		if err != nil {
			return err
		}
		if err := render.StatsWorkbook(ds, groups, xlsxPath); err != nil {
			return eris.Wrap(err, "tutorial: workbook")
		}
		written = append(written, xlsxPath)

		out.linef("")
		out.files(export.Stat(written...))

		// 6. Tips.
		out.banner("Tips and good practices")
		for i, tip := range tips {
			out.linef("  %d. %s", i+1, tip)
		}

		zap.L().Info("tutorial complete",
			zap.String("seed", tutorialSeed),
			zap.String("reference", reference),
			zap.Int("buffers", len(bufs)),
			zap.Int("files", len(written)),
		)
		return nil
	},
}

func writeCharts(ds *dataset.Dataset, title, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return geoerr.NewIOError("create", path, err)
	}
	defer f.Close()

	err = render.Charts(ds, render.ChartOptions{
		Title:      title,
		NumericKey: cfg.Analysis.NumericKey,
		GroupKey:   cfg.Analysis.GroupKey,
	}, f)
	if err != nil {
		return eris.Wrap(err, "tutorial: charts")
	}
	if err := f.Close(); err != nil {
		return geoerr.NewIOError("close", path, err)
	}
	return nil
}

func init() {
	tutorialCmd.Flags().StringVar(&tutorialSeed, "seed", "us-cities", "embedded seed to use")
	tutorialCmd.Flags().StringVar(&tutorialReference, "reference", "", "record to measure distances from (default analysis.reference)")
	tutorialCmd.Flags().StringVar(&tutorialFilter, "filter", "South", "group value to list (empty skips)")
	rootCmd.AddCommand(tutorialCmd)
}
