package analysis

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// GroupStats holds count/sum/mean of a numeric attribute for one group.
type GroupStats struct {
	Group string  `json:"group"`
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
}

// GroupAggregate groups records by the categorical attribute groupKey and
// computes count, sum, and mean of numericKey per group. Groups appear in
// the order their value is first seen.
func GroupAggregate(ds *dataset.Dataset, groupKey, numericKey string) ([]GroupStats, error) {
	if err := requireKind(ds, groupKey, dataset.Categorical); err != nil {
		return nil, err
	}
	if err := requireKind(ds, numericKey, dataset.Numeric); err != nil {
		return nil, err
	}

	index := map[string]int{}
	var groups []GroupStats

	for _, r := range ds.Records() {
		gv, ok := r.Attr(groupKey)
		if !ok {
			return nil, eris.Wrapf(geoerr.ErrAttributeNotFound, "analysis: record %q lacks %q", r.Name, groupKey)
		}
		nv, ok := r.Attr(numericKey)
		if !ok {
			return nil, eris.Wrapf(geoerr.ErrAttributeNotFound, "analysis: record %q lacks %q", r.Name, numericKey)
		}

		label, _ := gv.Label()
		num, _ := nv.Float()

		i, seen := index[label]
		if !seen {
			i = len(groups)
			index[label] = i
			groups = append(groups, GroupStats{Group: label})
		}
		groups[i].Count++
		groups[i].Sum += num
	}

	for i := range groups {
		groups[i].Mean = groups[i].Sum / float64(groups[i].Count)
	}
	return groups, nil
}

func requireKind(ds *dataset.Dataset, key string, want dataset.Kind) error {
	kind, ok := ds.KindOf(key)
	if !ok {
		return eris.Wrapf(geoerr.ErrAttributeNotFound, "analysis: attribute %q (have %v)", key, ds.Keys())
	}
	if kind != want {
		return eris.Wrapf(geoerr.ErrMalformedInput, "analysis: attribute %q is %s, need %s", key, kind, want)
	}
	return nil
}
