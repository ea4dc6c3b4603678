// Package render draws datasets and influence areas as static maps, HTML
// charts, and spreadsheets. Every call takes explicit options; nothing is
// shared between calls.
package render

import (
	"image/color"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sells-group/geo-tutorial/internal/analysis"
	"github.com/sells-group/geo-tutorial/internal/buffer"
	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// Default map size in inches.
const (
	DefaultWidthIn  = 10.0
	DefaultHeightIn = 8.0
)

// MapOptions configures a static map.
type MapOptions struct {
	Title    string
	Bounds   *dataset.Bounds // nil autoscale
	WidthIn  float64
	HeightIn float64
}

func (o MapOptions) size() (vg.Length, vg.Length) {
	w, h := o.WidthIn, o.HeightIn
	if w <= 0 {
		w = DefaultWidthIn
	}
	if h <= 0 {
		h = DefaultHeightIn
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

// PointMap writes a PNG (or any extension plot.Save understands) of the
// labeled record locations.
func PointMap(ds *dataset.Dataset, o MapOptions, path string) error {
	p := newMap(o)
	if err := addPoints(p, ds); err != nil {
		return err
	}
	return save(p, o, path)
}

// BufferMap writes a map with the influence areas drawn under the labeled
// record locations.
func BufferMap(ds *dataset.Dataset, bufs []buffer.BufferPolygon, o MapOptions, path string) error {
	p := newMap(o)
	if err := addBuffers(p, bufs); err != nil {
		return err
	}
	if err := addPoints(p, ds); err != nil {
		return err
	}
	return save(p, o, path)
}

func newMap(o MapOptions) *plot.Plot {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(plotter.NewGrid())
	return p
}

func addBuffers(p *plot.Plot, bufs []buffer.BufferPolygon) error {
	for i, b := range bufs {
		ring := b.Polygon.LinearRing(0)
		xys := make(plotter.XYs, ring.NumCoords())
		for j := range xys {
			c := ring.Coord(j)
			xys[j] = plotter.XY{X: c.X(), Y: c.Y()}
		}

		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return eris.Wrapf(err, "render: buffer %q", b.Name)
		}
		edge := plotutil.Color(i)
		r, g, bl, _ := edge.RGBA()
		poly.Color = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: 60}
		poly.LineStyle.Color = edge
		poly.LineStyle.Width = vg.Points(1)
		p.Add(poly)
	}
	return nil
}

func addPoints(p *plot.Plot, ds *dataset.Dataset) error {
	geo := ds
	if ds.CRS() != crs.WGS84 {
		var err error
		if geo, err = analysis.Reproject(ds, crs.WGS84); err != nil {
			return eris.Wrap(err, "render: map")
		}
	}
	if geo.Len() == 0 {
		return nil
	}

	xys := make(plotter.XYs, geo.Len())
	for i, r := range geo.Records() {
		xys[i] = plotter.XY{X: r.X(), Y: r.Y()}
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return eris.Wrap(err, "render: scatter")
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: geo.Names()})
	if err != nil {
		return eris.Wrap(err, "render: labels")
	}
	labels.Offset = vg.Point{X: vg.Points(6), Y: vg.Points(4)}

	p.Add(scatter, labels)
	return nil
}

// save applies fixed bounds last, since Add widens the axes to fit data.
func save(p *plot.Plot, o MapOptions, path string) error {
	if b := o.Bounds; b != nil {
		p.X.Min, p.X.Max = b.MinLon, b.MaxLon
		p.Y.Min, p.Y.Max = b.MinLat, b.MaxLat
	}
	w, h := o.size()
	if err := p.Save(w, h, path); err != nil {
		return geoerr.NewIOError("save", path, err)
	}
	zap.L().Debug("render: saved map", zap.String("path", path))
	return nil
}
