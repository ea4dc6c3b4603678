package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/geo-tutorial/internal/buffer"
	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// FeatureCollection converts ds into a GeoJSON collection with one Point
// feature per record. Properties carry the name and every attribute.
func FeatureCollection(ds *dataset.Dataset) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, ds.Len())}
	for _, r := range ds.Records() {
		props := make(map[string]interface{}, len(r.Attributes)+1)
		props["name"] = r.Name
		for k, v := range r.Attributes {
			props[k] = v.Interface()
		}
		fc.Features = append(fc.Features, &geojson.Feature{Geometry: r.Location, Properties: props})
	}
	return fc
}

// BufferCollection converts influence areas into a Polygon collection.
func BufferCollection(bufs []buffer.BufferPolygon) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(bufs))}
	for _, b := range bufs {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: b.Polygon,
			Properties: map[string]interface{}{
				"name":     b.Name,
				"radius_m": b.Radius,
			},
		})
	}
	return fc
}

// WriteBuffersGeoJSON writes influence areas as a GeoJSON file.
func WriteBuffersGeoJSON(bufs []buffer.BufferPolygon, path string) error {
	return writeCollection(BufferCollection(bufs), path)
}

func writeGeoJSON(ds *dataset.Dataset, path string) error {
	return writeCollection(FeatureCollection(ds), path)
}

func writeCollection(fc *geojson.FeatureCollection, path string) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return geoerr.NewIOError("write", path, err)
	}
	return nil
}
