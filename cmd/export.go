package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geo-tutorial/internal/buffer"
	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/export"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

var (
	exportSeed    string
	exportFormat  string
	exportOut     string
	exportBuffers bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a seed dataset in one format",
	Long:  "Writes an embedded seed (or its influence areas with --buffers) to a single GeoJSON, Shapefile, CSV, or Parquet file.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		s, err := dataset.LoadSeed(exportSeed)
		if err != nil {
			return err
		}

		path := exportOut
		if path == "" {
			name := exportSeed
			if exportBuffers {
				name += "_buffers"
			}
			if path, err = outputPath(name + format.Ext()); err != nil {
				return err
			}
		}

		if exportBuffers {
			err = writeBuffers(cmd.Context(), s.Dataset, format, path)
		} else {
			err = export.Export(s.Dataset, format, path)
		}
		if err != nil {
			return eris.Wrap(err, "export")
		}

		paths := []string{path}
		if format == export.Shapefile {
			paths = export.ShapefileParts(path)
		}
		newConsole(cmd.OutOrStdout()).files(export.Stat(paths...))

		zap.L().Info("export complete",
			zap.String("seed", exportSeed),
			zap.String("format", string(format)),
			zap.String("path", path),
			zap.Bool("buffers", exportBuffers),
		)
		return nil
	},
}

func writeBuffers(ctx context.Context, ds *dataset.Dataset, format export.Format, path string) error {
	a := cfg.Analysis
	bufs, err := buffer.Build(ctx, ds, a.BufferRadiusM,
		buffer.WithSegments(a.BufferSegments),
		buffer.WithConcurrency(a.Concurrency),
	)
	if err != nil {
		return err
	}

	switch format {
	case export.GeoJSON:
		return export.WriteBuffersGeoJSON(bufs, path)
	case export.Shapefile:
		return export.WriteBuffersShapefile(bufs, path)
	default:
		return eris.Wrapf(geoerr.ErrUnsupportedFormat, "export: buffers cannot be written as %s", format)
	}
}

func init() {
	exportCmd.Flags().StringVar(&exportSeed, "seed", "us-cities", "embedded seed to export")
	exportCmd.Flags().StringVar(&exportFormat, "format", "geojson", "output format: geojson, shapefile, csv, parquet")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default <output.dir>/<seed><ext>)")
	exportCmd.Flags().BoolVar(&exportBuffers, "buffers", false, "export influence areas instead of points (geojson or shapefile)")
	rootCmd.AddCommand(exportCmd)
}
