package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// csvHeader returns the ordered CSV columns for ds. The point location is
// split into longitude/latitude and no geometry column is emitted.
func csvHeader(ds *dataset.Dataset) []string {
	header := append([]string{"name"}, ds.Keys()...)
	return append(header, "longitude", "latitude")
}

func writeCSV(ds *dataset.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return geoerr.NewIOError("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	keys := ds.Keys()
	if err := w.Write(csvHeader(ds)); err != nil {
		return geoerr.NewIOError("write header", path, err)
	}

	for _, r := range ds.Records() {
		row := make([]string, 0, len(keys)+3)
		row = append(row, r.Name)
		for _, k := range keys {
			row = append(row, r.Attributes[k].String())
		}
		row = append(row, formatCoord(r.X()), formatCoord(r.Y()))
		if err := w.Write(row); err != nil {
			return geoerr.NewIOError("write row", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return geoerr.NewIOError("flush", path, err)
	}
	if err := f.Close(); err != nil {
		return geoerr.NewIOError("close", path, err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
