// Package dataset holds labeled point records that share one coordinate
// reference system and one attribute schema.
package dataset

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// GeoRecord is one named entity with scalar attributes and a point location.
type GeoRecord struct {
	Name       string
	Attributes map[string]Value
	Location   *geom.Point
}

// X returns the first ordinate (longitude or easting).
func (r GeoRecord) X() float64 { return r.Location.X() }

// Y returns the second ordinate (latitude or northing).
func (r GeoRecord) Y() float64 { return r.Location.Y() }

// Attr returns the named attribute.
func (r GeoRecord) Attr(key string) (Value, bool) {
	v, ok := r.Attributes[key]
	return v, ok
}

func (r GeoRecord) clone() GeoRecord {
	attrs := make(map[string]Value, len(r.Attributes))
	for k, v := range r.Attributes {
		attrs[k] = v
	}
	return GeoRecord{Name: r.Name, Attributes: attrs, Location: r.Location.Clone()}
}

// RecordInput is the literal form of a record handed to the builder.
type RecordInput struct {
	Name       string         `yaml:"name"`
	Attributes map[string]any `yaml:"attributes"`
	Longitude  float64        `yaml:"longitude"`
	Latitude   float64        `yaml:"latitude"`
}

// Dataset is an ordered, immutable sequence of records in one CRS. Every
// accessor returns copies; transformations return a new Dataset.
type Dataset struct {
	crs     crs.Code
	records []GeoRecord
	keys    []string
	kinds   map[string]Kind
}

// Build assembles a geographic (EPSG:4326) dataset from literal inputs.
func Build(inputs []RecordInput) (*Dataset, error) {
	return New(crs.WGS84, inputs)
}

// New assembles a dataset whose input coordinates are already in code.
//
// Coordinates must be finite; out-of-range degrees are accepted as-is.
// Every record must carry the same attribute keys with the same kinds, and
// names must be unique. Violations are ErrMalformedInput.
func New(code crs.Code, inputs []RecordInput) (*Dataset, error) {
	if !code.Supported() {
		return nil, eris.Wrapf(geoerr.ErrUnsupportedCRS, "dataset: %q", code)
	}

	d := &Dataset{crs: code, records: make([]GeoRecord, 0, len(inputs))}
	seen := make(map[string]bool, len(inputs))

	for i, in := range inputs {
		if in.Name == "" {
			return nil, eris.Wrapf(geoerr.ErrMalformedInput, "dataset: record %d has no name", i)
		}
		if seen[in.Name] {
			return nil, eris.Wrapf(geoerr.ErrMalformedInput, "dataset: duplicate name %q", in.Name)
		}
		seen[in.Name] = true

		if !finite(in.Longitude) || !finite(in.Latitude) {
			return nil, eris.Wrapf(geoerr.ErrMalformedInput,
				"dataset: record %q has non-finite coordinates (%v, %v)", in.Name, in.Longitude, in.Latitude)
		}

		attrs := make(map[string]Value, len(in.Attributes))
		for k, raw := range in.Attributes {
			v, err := ValueOf(raw)
			if err != nil {
				return nil, eris.Wrapf(err, "dataset: record %q attribute %q", in.Name, k)
			}
			attrs[k] = v
		}

		if i == 0 {
			d.setSchema(attrs)
		} else if err := d.checkSchema(in.Name, attrs); err != nil {
			return nil, err
		}

		pt := geom.NewPointFlat(geom.XY, []float64{in.Longitude, in.Latitude}).SetSRID(code.SRID())
		d.records = append(d.records, GeoRecord{Name: in.Name, Attributes: attrs, Location: pt})
	}

	if d.kinds == nil {
		d.kinds = map[string]Kind{}
	}
	return d, nil
}

func (d *Dataset) setSchema(attrs map[string]Value) {
	d.kinds = make(map[string]Kind, len(attrs))
	d.keys = make([]string, 0, len(attrs))
	for k, v := range attrs {
		d.kinds[k] = v.Kind()
		d.keys = append(d.keys, k)
	}
	sort.Strings(d.keys)
}

func (d *Dataset) checkSchema(name string, attrs map[string]Value) error {
	if len(attrs) != len(d.kinds) {
		return eris.Wrapf(geoerr.ErrMalformedInput,
			"dataset: record %q has %d attributes, expected %d %v", name, len(attrs), len(d.kinds), d.keys)
	}
	for k, v := range attrs {
		want, ok := d.kinds[k]
		if !ok {
			return eris.Wrapf(geoerr.ErrMalformedInput, "dataset: record %q has unexpected attribute %q", name, k)
		}
		if v.Kind() != want {
			return eris.Wrapf(geoerr.ErrMalformedInput,
				"dataset: record %q attribute %q is %s, expected %s", name, k, v.Kind(), want)
		}
	}
	return nil
}

// CRS returns the coordinate reference system shared by every record.
func (d *Dataset) CRS() crs.Code { return d.crs }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Keys returns the attribute names in sorted order.
func (d *Dataset) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// KindOf returns the kind of the named attribute.
func (d *Dataset) KindOf(key string) (Kind, bool) {
	k, ok := d.kinds[key]
	return k, ok
}

// Record returns a copy of the i-th record.
func (d *Dataset) Record(i int) GeoRecord { return d.records[i].clone() }

// Records returns copies of all records in order.
func (d *Dataset) Records() []GeoRecord {
	out := make([]GeoRecord, len(d.records))
	for i, r := range d.records {
		out[i] = r.clone()
	}
	return out
}

// Names returns record names in order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.records))
	for i, r := range d.records {
		out[i] = r.Name
	}
	return out
}

// Lookup returns a copy of the record with the given name.
func (d *Dataset) Lookup(name string) (GeoRecord, bool) {
	for _, r := range d.records {
		if r.Name == name {
			return r.clone(), true
		}
	}
	return GeoRecord{}, false
}

// Map returns a new dataset tagged with code whose locations are fn applied
// to each source location. The receiver is not modified.
func (d *Dataset) Map(code crs.Code, fn func(geom.Coord) geom.Coord) *Dataset {
	out := &Dataset{crs: code, records: make([]GeoRecord, len(d.records)), keys: d.Keys(), kinds: d.copyKinds()}
	for i, r := range d.records {
		c := fn(r.Location.Coords())
		nr := r.clone()
		nr.Location = geom.NewPointFlat(geom.XY, []float64{c.X(), c.Y()}).SetSRID(code.SRID())
		out.records[i] = nr
	}
	return out
}

// Filter returns the records whose categorical attribute key equals label.
func (d *Dataset) Filter(key, label string) (*Dataset, error) {
	kind, ok := d.kinds[key]
	if !ok {
		return nil, eris.Wrapf(geoerr.ErrAttributeNotFound, "dataset: filter key %q", key)
	}
	if kind != Categorical {
		return nil, eris.Wrapf(geoerr.ErrMalformedInput, "dataset: filter key %q is %s", key, kind)
	}

	out := &Dataset{crs: d.crs, keys: d.Keys(), kinds: d.copyKinds()}
	for _, r := range d.records {
		if s, _ := r.Attributes[key].Label(); s == label {
			out.records = append(out.records, r.clone())
		}
	}
	return out, nil
}

func (d *Dataset) copyKinds() map[string]Kind {
	out := make(map[string]Kind, len(d.kinds))
	for k, v := range d.kinds {
		out[k] = v
	}
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
