// Package export writes datasets and influence areas to interchange formats.
package export

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geo-tutorial/internal/analysis"
	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// Format names an export target.
type Format string

// Supported formats.
const (
	GeoJSON   Format = "geojson"
	Shapefile Format = "shapefile"
	CSV       Format = "csv"
	Parquet   Format = "parquet"
)

var extensions = map[Format]string{
	GeoJSON:   ".geojson",
	Shapefile: ".shp",
	CSV:       ".csv",
	Parquet:   ".parquet",
}

// Formats returns every supported format in a stable order.
func Formats() []Format {
	return []Format{GeoJSON, Shapefile, CSV, Parquet}
}

// ParseFormat returns the Format named by s (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := extensions[f]; !ok {
		return "", eris.Wrapf(geoerr.ErrUnsupportedFormat, "export: %q (want one of %v)", s, Formats())
	}
	return f, nil
}

// Ext returns the conventional file extension, including the dot.
func (f Format) Ext() string { return extensions[f] }

// Export writes ds to path in the given format. Projected datasets are
// converted to EPSG:4326 first, so every output is geographic.
func Export(ds *dataset.Dataset, format Format, path string) error {
	geo, err := toGeographic(ds)
	if err != nil {
		return err
	}

	switch format {
	case GeoJSON:
		err = writeGeoJSON(geo, path)
	case Shapefile:
		err = writeShapefile(geo, path)
	case CSV:
		err = writeCSV(geo, path)
	case Parquet:
		err = writeParquet(geo, path)
	default:
		return eris.Wrapf(geoerr.ErrUnsupportedFormat, "export: %q", format)
	}
	if err != nil {
		return err
	}

	zap.L().Debug("export: wrote dataset",
		zap.String("format", string(format)),
		zap.String("path", path),
		zap.Int("records", geo.Len()),
	)
	return nil
}

func toGeographic(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if ds.CRS() == crs.WGS84 {
		return ds, nil
	}
	geo, err := analysis.Reproject(ds, crs.WGS84)
	if err != nil {
		return nil, eris.Wrap(err, "export: reproject to geographic")
	}
	return geo, nil
}
