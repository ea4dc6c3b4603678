package export

import (
	"github.com/parquet-go/parquet-go"
	"github.com/rotisserie/eris"

	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// ParquetRow is the columnar layout of one exported record. Attributes are
// split by kind; the location is WKB in the geometry column.
type ParquetRow struct {
	Name     string             `parquet:"name"`
	Numeric  map[string]float64 `parquet:"numeric"`
	Text     map[string]string  `parquet:"text"`
	CRS      string             `parquet:"crs"`
	Geometry []byte             `parquet:"geometry"`
}

func parquetRows(ds *dataset.Dataset) ([]ParquetRow, error) {
	rows := make([]ParquetRow, 0, ds.Len())
	for _, r := range ds.Records() {
		geomBytes, err := EncodeWKB(r.Location)
		if err != nil {
			return nil, eris.Wrapf(err, "export: record %q", r.Name)
		}
		row := ParquetRow{
			Name:     r.Name,
			Numeric:  map[string]float64{},
			Text:     map[string]string{},
			CRS:      ds.CRS().String(),
			Geometry: geomBytes,
		}
		for k, v := range r.Attributes {
			if f, ok := v.Float(); ok {
				row.Numeric[k] = f
			} else {
				row.Text[k], _ = v.Label()
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeParquet(ds *dataset.Dataset, path string) error {
	rows, err := parquetRows(ds)
	if err != nil {
		return err
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return geoerr.NewIOError("write", path, err)
	}
	return nil
}
