package render

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/geo-tutorial/internal/analysis"
	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// Workbook sheet names.
const (
	RecordsSheet = "records"
	GroupsSheet  = "groups"
)

// StatsWorkbook writes an .xlsx file with one row per record on the records
// sheet and one row per group on the groups sheet.
func StatsWorkbook(ds *dataset.Dataset, groups []analysis.GroupStats, path string) error {
	f := xlsx.NewFile()

	records, err := f.AddSheet(RecordsSheet)
	if err != nil {
		return eris.Wrap(err, "render: add records sheet")
	}
	keys := ds.Keys()
	header := append([]string{"name"}, keys...)
	if ds.CRS().Planar() {
		header = append(header, "x", "y")
	} else {
		header = append(header, "longitude", "latitude")
	}
	addStringRow(records, header)
	for _, r := range ds.Records() {
		row := records.AddRow()
		row.AddCell().SetString(r.Name)
		for _, k := range keys {
			v := r.Attributes[k]
			if n, ok := v.Float(); ok {
				row.AddCell().SetFloat(n)
			} else {
				s, _ := v.Label()
				row.AddCell().SetString(s)
			}
		}
		row.AddCell().SetFloat(r.X())
		row.AddCell().SetFloat(r.Y())
	}

	sheet, err := f.AddSheet(GroupsSheet)
	if err != nil {
		return eris.Wrap(err, "render: add groups sheet")
	}
	addStringRow(sheet, []string{"group", "count", "sum", "mean"})
	for _, g := range groups {
		row := sheet.AddRow()
		row.AddCell().SetString(g.Group)
		row.AddCell().SetInt(g.Count)
		row.AddCell().SetFloat(g.Sum)
		row.AddCell().SetFloat(g.Mean)
	}

	if err := f.Save(path); err != nil {
		return geoerr.NewIOError("save", path, err)
	}
	return nil
}

func addStringRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
