package export

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/geo-tutorial/internal/buffer"
	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// dbfNameLimit is the dBase III field name length limit.
const dbfNameLimit = 10

// ShapefileParts returns the sidecar paths written for a shapefile at path.
func ShapefileParts(path string) []string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return []string{base + ".shp", base + ".shx", base + ".dbf", base + ".prj"}
}

// dbfFieldNames maps attribute keys to unique DBF field names of at most
// ten characters. Keys that collide after truncation get a numeric suffix.
func dbfFieldNames(keys []string) []string {
	taken := map[string]bool{"name": true}
	names := make([]string, len(keys))
	for i, k := range keys {
		name := truncate(k, dbfNameLimit)
		for n := 1; taken[name]; n++ {
			suffix := "_" + strconv.Itoa(n)
			name = truncate(k, dbfNameLimit-len(suffix)) + suffix
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// dbfFields builds the attribute table layout: name first, then every
// attribute in key order. Numeric attributes become float fields.
func dbfFields(ds *dataset.Dataset) ([]shp.Field, []string) {
	keys := ds.Keys()
	fields := make([]shp.Field, 0, len(keys)+1)
	fields = append(fields, shp.StringField("name", 254))
	for i, name := range dbfFieldNames(keys) {
		if kind, _ := ds.KindOf(keys[i]); kind == dataset.Numeric {
			fields = append(fields, shp.FloatField(name, 24, 6))
		} else {
			fields = append(fields, shp.StringField(name, 254))
		}
	}
	return fields, keys
}

func writeShapefile(ds *dataset.Dataset, path string) error {
	fields, keys := dbfFields(ds)
	return writeShapes(shpPath(path), shp.POINT, fields, crs.WGS84, func(w *shp.Writer) error {
		for _, r := range ds.Records() {
			shape := toShape(r.Location)
			if shape == nil {
				return eris.Wrapf(geoerr.ErrMalformedInput, "export: record %q has no location", r.Name)
			}
			row := int(w.Write(shape))
			if err := w.WriteAttribute(row, 0, r.Name); err != nil {
				return geoerr.NewIOError("write attribute", path, err)
			}
			for i, k := range keys {
				if err := w.WriteAttribute(row, i+1, r.Attributes[k].Interface()); err != nil {
					return geoerr.NewIOError("write attribute", path, err)
				}
			}
		}
		return nil
	})
}

// WriteBuffersShapefile writes influence areas as a POLYGON shapefile with
// name and radius attributes.
func WriteBuffersShapefile(bufs []buffer.BufferPolygon, path string) error {
	fields := []shp.Field{
		shp.StringField("name", 254),
		shp.FloatField("radius_m", 24, 2),
	}
	return writeShapes(shpPath(path), shp.POLYGON, fields, crs.WGS84, func(w *shp.Writer) error {
		for _, b := range bufs {
			shape := toShape(b.Polygon)
			if shape == nil {
				return eris.Wrapf(geoerr.ErrMalformedInput, "export: buffer %q has no ring", b.Name)
			}
			row := int(w.Write(shape))
			if err := w.WriteAttribute(row, 0, b.Name); err != nil {
				return geoerr.NewIOError("write attribute", path, err)
			}
			if err := w.WriteAttribute(row, 1, b.Radius); err != nil {
				return geoerr.NewIOError("write attribute", path, err)
			}
		}
		return nil
	})
}

// writeShapes creates the shapefile, runs fn, closes the writer, and then
// places the attribute table and projection next to the .shp.
func writeShapes(path string, kind shp.ShapeType, fields []shp.Field, code crs.Code, fn func(*shp.Writer) error) error {
	w, err := shp.Create(path, kind)
	if err != nil {
		return geoerr.NewIOError("create", path, err)
	}

	if err := w.SetFields(fields); err != nil {
		w.Close()
		return geoerr.NewIOError("set fields", path, err)
	}
	if err := fn(w); err != nil {
		w.Close()
		return err
	}
	w.Close()

	if err := fixDBFName(path); err != nil {
		return err
	}
	return writePRJ(path, code)
}

// fixDBFName moves "<base>dbf" to "<base>.dbf". go-shp v0.1.1 drops the dot
// when it creates the attribute table.
func fixDBFName(shpFile string) error {
	base := strings.TrimSuffix(shpFile, filepath.Ext(shpFile))
	stray, want := base+"dbf", base+".dbf"
	if _, err := os.Stat(stray); err != nil {
		return nil
	}
	if err := os.Rename(stray, want); err != nil {
		return geoerr.NewIOError("rename", want, err)
	}
	return nil
}

func shpPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".shp"
}

func writePRJ(shpFile string, code crs.Code) error {
	prj := strings.TrimSuffix(shpFile, filepath.Ext(shpFile)) + ".prj"
	if err := os.WriteFile(prj, []byte(code.WKT()), 0o644); err != nil {
		return geoerr.NewIOError("write", prj, err)
	}
	return nil
}
