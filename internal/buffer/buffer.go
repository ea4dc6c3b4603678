// Package buffer derives circular influence-area polygons around dataset
// records.
package buffer

import (
	"context"
	"math"
	"runtime"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/geo-tutorial/internal/analysis"
	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// DefaultSegments is the number of ring segments used to approximate a circle.
const DefaultSegments = 32

// MinSegments is the smallest segment count that still yields a polygon.
const MinSegments = 3

// BufferPolygon is the influence area of one record. It is never mutated
// after Build returns it.
type BufferPolygon struct {
	Name    string
	Radius  float64 // meters, measured in the projected plane
	Polygon *geom.Polygon
	CRS     crs.Code
}

// Centroid returns the area centroid of the polygon.
func (b BufferPolygon) Centroid() (geom.Coord, error) {
	c, err := xy.Centroid(b.Polygon)
	if err != nil {
		return nil, eris.Wrapf(err, "buffer: centroid of %q", b.Name)
	}
	return c, nil
}

// Contains reports whether (x, y) lies inside or on the polygon ring.
func (b BufferPolygon) Contains(x, y float64) bool {
	ring := b.Polygon.LinearRing(0)
	return xy.IsPointInRing(geom.XY, geom.Coord{x, y}, ring.FlatCoords())
}

type options struct {
	segments    int
	concurrency int
}

// Option configures Build.
type Option func(*options)

// WithSegments sets the number of ring segments (default 32).
func WithSegments(n int) Option {
	return func(o *options) { o.segments = n }
}

// WithConcurrency bounds the number of records processed at once. Values
// below 1 fall back to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// Build returns one buffer polygon of radius meters per record, in dataset
// order. Records are projected to EPSG:3857, buffered there, and the rings
// are projected back to EPSG:4326.
func Build(ctx context.Context, ds *dataset.Dataset, radius float64, opts ...Option) ([]BufferPolygon, error) {
	o := options{segments: DefaultSegments}
	for _, fn := range opts {
		fn(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}

	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return nil, eris.Wrapf(geoerr.ErrInvalidParameter, "buffer: radius must be > 0, got %v", radius)
	}
	if o.segments < MinSegments {
		return nil, eris.Wrapf(geoerr.ErrInvalidParameter, "buffer: segments must be >= %d, got %d", MinSegments, o.segments)
	}

	projected, err := analysis.Reproject(ds, crs.WebMercator)
	if err != nil {
		return nil, eris.Wrap(err, "buffer: project")
	}
	back, err := crs.NewTransformer(crs.WebMercator, crs.WGS84)
	if err != nil {
		return nil, eris.Wrap(err, "buffer: inverse transform")
	}

	records := projected.Records()
	out := make([]BufferPolygon, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, r := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			flat := back.Flat(circle(r.X(), r.Y(), radius, o.segments))
			poly := geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
			out[i] = BufferPolygon{
				Name:    r.Name,
				Radius:  radius,
				Polygon: poly.SetSRID(crs.WGS84.SRID()),
				CRS:     crs.WGS84,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "buffer: build")
	}

	zap.L().Debug("buffer: built influence areas",
		zap.Int("records", len(out)),
		zap.Float64("radius_m", radius),
		zap.Int("segments", o.segments),
	)
	return out, nil
}

// BuildKM is Build with the radius given in kilometers.
func BuildKM(ctx context.Context, ds *dataset.Dataset, km float64, opts ...Option) ([]BufferPolygon, error) {
	return Build(ctx, ds, km*1000, opts...)
}

// circle returns a closed counter-clockwise ring of n segments around (cx, cy).
func circle(cx, cy, radius float64, n int) []float64 {
	flat := make([]float64, 0, 2*(n+1))
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		flat = append(flat, cx+radius*math.Cos(theta), cy+radius*math.Sin(theta))
	}
	return append(flat, flat[0], flat[1])
}
