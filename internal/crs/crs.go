// Package crs names the coordinate reference systems the workflow supports
// and converts XY coordinates between them.
package crs

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// Code is an EPSG authority tag.
type Code string

// Supported coordinate reference systems.
const (
	WGS84       Code = "EPSG:4326" // geographic degrees
	WebMercator Code = "EPSG:3857" // spherical mercator meters
)

// esriWKT holds the .prj contents written next to shapefiles.
var esriWKT = map[Code]string{
	WGS84: `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],` +
		`PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`,
	WebMercator: `PROJCS["WGS_1984_Web_Mercator_Auxiliary_Sphere",GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",` +
		`SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]],` +
		`PROJECTION["Mercator_Auxiliary_Sphere"],PARAMETER["False_Easting",0.0],PARAMETER["False_Northing",0.0],` +
		`PARAMETER["Central_Meridian",0.0],PARAMETER["Standard_Parallel_1",0.0],` +
		`PARAMETER["Auxiliary_Sphere_Type",0.0],UNIT["Meter",1.0]]`,
}

// Parse normalizes s (case and surrounding space) and returns the matching
// Code, or ErrUnsupportedCRS.
func Parse(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Supported() {
		return "", eris.Wrapf(geoerr.ErrUnsupportedCRS, "crs: %q", s)
	}
	return c, nil
}

// Supported reports whether c is one of the two known systems.
func (c Code) Supported() bool {
	return c == WGS84 || c == WebMercator
}

// Planar reports whether coordinates in c are meters on a plane.
func (c Code) Planar() bool {
	return c == WebMercator
}

// Units returns the coordinate unit name.
func (c Code) Units() string {
	if c.Planar() {
		return "meters"
	}
	return "degrees"
}

// SRID returns the numeric EPSG identifier, or 0 if c is unsupported.
func (c Code) SRID() int {
	switch c {
	case WGS84:
		return 4326
	case WebMercator:
		return 3857
	default:
		return 0
	}
}

// WKT returns the ESRI well-known text for c.
func (c Code) WKT() string {
	return esriWKT[c]
}

func (c Code) String() string {
	return string(c)
}

// Transformer converts coordinates from one Code to another.
type Transformer struct {
	From Code
	To   Code
	proj orb.Projection
}

// NewTransformer returns a Transformer for the from → to pair. Equal codes
// yield an identity transform.
func NewTransformer(from, to Code) (*Transformer, error) {
	if !from.Supported() {
		return nil, eris.Wrapf(geoerr.ErrUnsupportedCRS, "crs: source %q", from)
	}
	if !to.Supported() {
		return nil, eris.Wrapf(geoerr.ErrUnsupportedCRS, "crs: target %q", to)
	}

	t := &Transformer{From: from, To: to}
	switch {
	case from == to:
		t.proj = func(p orb.Point) orb.Point { return p }
	case from == WGS84:
		t.proj = project.WGS84.ToMercator
	default:
		t.proj = project.Mercator.ToWGS84
	}
	return t, nil
}

// Coord transforms a single XY coordinate. Extra ordinates are dropped.
func (t *Transformer) Coord(c geom.Coord) geom.Coord {
	p := t.proj(orb.Point{c.X(), c.Y()})
	return geom.Coord{p[0], p[1]}
}

// Flat transforms XY flat coordinates into a new slice.
func (t *Transformer) Flat(flat []float64) []float64 {
	out := make([]float64, len(flat))
	for i := 0; i+1 < len(flat); i += 2 {
		p := t.proj(orb.Point{flat[i], flat[i+1]})
		out[i], out[i+1] = p[0], p[1]
	}
	return out
}
