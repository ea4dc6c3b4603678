package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geo-tutorial/internal/analysis"
	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/export"
	"github.com/sells-group/geo-tutorial/internal/render"
)

var demoSeed string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Quick example on a small seed",
	Long:  "Loads a seed, prints basic info and statistics, draws a point map, and saves the records as GeoJSON.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := newConsole(cmd.OutOrStdout())

		s, err := dataset.LoadSeed(demoSeed)
		if err != nil {
			return err
		}
		ds := s.Dataset
		key := cfg.Analysis.NumericKey

		out.banner("QUICK GEOSPATIAL EXAMPLE")
		out.linef("Created %d points from %q", ds.Len(), s.Title)

		out.banner("Dataset")
		out.linef("  Records: %d", ds.Len())
		out.linef("  CRS:     %s", ds.CRS())
		out.linef("  Columns: %v", describeColumns(ds))

		sum, err := analysis.Describe(ds, key)
		if err != nil {
			return eris.Wrap(err, "demo: describe")
		}
		out.banner("Statistics")
		out.linef("  Total %s: %d", key, int64(sum.Sum))
		out.linef("  Mean %s:  %.0f", key, sum.Mean)
		out.linef("  Largest:  %s", sum.MaxName)

		var written []string
		if cfg.Render.Enabled {
			path, err := outputPath(demoSeed + "_demo.png")
			if err != nil {
				return err
			}
			if err := render.PointMap(ds, mapOptions(s.Title+" - quick example", &s.Bounds), path); err != nil {
				return eris.Wrap(err, "demo: point map")
			}
			written = append(written, path)
		}

		path, err := outputPath(demoSeed + "_demo" + export.GeoJSON.Ext())
		if err != nil {
			return err
		}
		if err := export.Export(ds, export.GeoJSON, path); err != nil {
			return eris.Wrap(err, "demo: export")
		}
		written = append(written, path)

		out.banner("Output")
		out.files(export.Stat(written...))
		out.linef("\nDone. Run `geo-tutorial tutorial` for the full walkthrough.")

		zap.L().Info("demo complete", zap.String("seed", demoSeed), zap.Int("files", len(written)))
		return nil
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoSeed, "seed", "br-cities", "embedded seed to use")
	rootCmd.AddCommand(demoCmd)
}
