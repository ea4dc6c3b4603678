package analysis

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// Summary describes the distribution of one numeric attribute.
type Summary struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Sum     float64 `json:"sum"`
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Min     float64 `json:"min"`
	Q25     float64 `json:"q25"`
	Median  float64 `json:"median"`
	Q75     float64 `json:"q75"`
	Max     float64 `json:"max"`
	MinName string  `json:"min_name"`
	MaxName string  `json:"max_name"`
}

// Describe summarizes the numeric attribute key. Std is the sample standard
// deviation (NaN for a single record); quartiles use linear interpolation.
func Describe(ds *dataset.Dataset, key string) (*Summary, error) {
	if err := requireKind(ds, key, dataset.Numeric); err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return nil, eris.Wrapf(geoerr.ErrMalformedInput, "analysis: describe %q on empty dataset", key)
	}

	names := ds.Names()
	values := make([]float64, ds.Len())
	for i, r := range ds.Records() {
		values[i], _ = r.Attributes[key].Float()
	}

	s := &Summary{
		Key:     key,
		Count:   len(values),
		Sum:     floats.Sum(values),
		MinName: names[floats.MinIdx(values)],
		MaxName: names[floats.MaxIdx(values)],
	}

	if len(values) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	} else {
		s.Mean, s.Std = values[0], math.NaN()
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	s.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	s.Q75 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)

	return s, nil
}
