// Package analysis implements the spatial analyzer: reprojection, planar
// distance from a reference record, grouped attribute statistics, and
// descriptive summaries.
package analysis

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/dataset"
)

// Reproject transforms every record of ds into target and returns a new
// dataset tagged with target. ds is left untouched.
func Reproject(ds *dataset.Dataset, target crs.Code) (*dataset.Dataset, error) {
	tr, err := crs.NewTransformer(ds.CRS(), target)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: reproject")
	}

	zap.L().Debug("analysis: reproject",
		zap.String("from", ds.CRS().String()),
		zap.String("to", target.String()),
		zap.Int("records", ds.Len()),
	)

	return ds.Map(target, tr.Coord), nil
}
