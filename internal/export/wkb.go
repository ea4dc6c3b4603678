package export

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// EncodeWKB converts a geometry to little-endian WKB bytes.
// Returns nil, nil for a nil geometry.
func EncodeWKB(g geom.T) ([]byte, error) {
	if g == nil {
		return nil, nil
	}
	data, err := wkb.Marshal(g, wkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "export: encode WKB")
	}
	return data, nil
}

// toShape converts a go-geom Point or Polygon into its go-shp equivalent.
// Returns nil for unsupported geometries.
func toShape(g geom.T) shp.Shape {
	switch t := g.(type) {
	case *geom.Point:
		if t == nil || t.Empty() {
			return nil
		}
		return &shp.Point{X: t.X(), Y: t.Y()}

	case *geom.Polygon:
		if t == nil || t.NumLinearRings() == 0 {
			return nil
		}
		parts := make([][]shp.Point, 0, t.NumLinearRings())
		for i := 0; i < t.NumLinearRings(); i++ {
			ring := t.LinearRing(i)
			pts := make([]shp.Point, 0, ring.NumCoords())
			// Shapefile outer rings are clockwise; go-geom buffers are counter-clockwise.
			for j := ring.NumCoords() - 1; j >= 0; j-- {
				c := ring.Coord(j)
				pts = append(pts, shp.Point{X: c.X(), Y: c.Y()})
			}
			parts = append(parts, pts)
		}
		// go-shp declares Polygon as a PolyLine with a different shape type.
		p := shp.Polygon(*shp.NewPolyLine(parts))
		return &p

	default:
		return nil
	}
}
