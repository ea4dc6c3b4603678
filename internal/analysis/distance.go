package analysis

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/xy"

	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// Distance is the planar distance from the reference record to Name.
type Distance struct {
	Name   string  `json:"name"`
	Meters float64 `json:"meters"`
}

// Kilometers returns the distance in km.
func (d Distance) Kilometers() float64 { return d.Meters / 1000 }

// Distances is an ordered distance result.
type Distances []Distance

// Map returns the distances keyed by name.
func (ds Distances) Map() map[string]float64 {
	out := make(map[string]float64, len(ds))
	for _, d := range ds {
		out[d.Name] = d.Meters
	}
	return out
}

// PairwiseDistance returns the straight-line distance in the projected plane
// from the reference record to every other record, in dataset order. The
// reference itself is excluded, so the result has Len()-1 entries.
//
// ds must be in a planar CRS. Web Mercator distances are not geodesic and
// grow with latitude; they are only a regional approximation.
func PairwiseDistance(ds *dataset.Dataset, reference string) (Distances, error) {
	if !ds.CRS().Planar() {
		return nil, eris.Wrapf(geoerr.ErrUnsupportedCRS,
			"analysis: distance needs a planar crs, dataset is %s (%s)", ds.CRS(), ds.CRS().Units())
	}

	ref, ok := ds.Lookup(reference)
	if !ok {
		return nil, eris.Wrapf(geoerr.ErrReferenceNotFound, "analysis: reference %q", reference)
	}
	origin := ref.Location.Coords()

	out := make(Distances, 0, ds.Len()-1)
	for _, r := range ds.Records() {
		if r.Name == reference {
			continue
		}
		out = append(out, Distance{Name: r.Name, Meters: xy.Distance(origin, r.Location.Coords())})
	}
	return out, nil
}
