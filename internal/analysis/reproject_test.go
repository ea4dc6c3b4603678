package analysis

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

func TestReproject_RoundTrip(t *testing.T) {
	ds := scenario(t)

	merc, err := Reproject(ds, crs.WebMercator)
	require.NoError(t, err)
	assert.Equal(t, crs.WebMercator, merc.CRS())

	back, err := Reproject(merc, crs.WGS84)
	require.NoError(t, err)
	assert.Equal(t, crs.WGS84, back.CRS())

	orig := ds.Records()
	for i, r := range back.Records() {
		assert.Equal(t, orig[i].Name, r.Name)
		assert.InDelta(t, orig[i].X(), r.X(), 1e-6)
		assert.InDelta(t, orig[i].Y(), r.Y(), 1e-6)
	}
}

func TestReproject_SourceUnchanged(t *testing.T) {
	ds := scenario(t)

	merc, err := Reproject(ds, crs.WebMercator)
	require.NoError(t, err)

	assert.Equal(t, crs.WGS84, ds.CRS())
	assert.InDelta(t, -74.006, ds.Record(0).X(), 1e-12)
	assert.InDelta(t, -8238310.2356, merc.Record(0).X(), 0.01)
	assert.InDelta(t, 4970071.5791, merc.Record(0).Y(), 0.01)
}

func TestReproject_SameCRS(t *testing.T) {
	ds := scenario(t)

	same, err := Reproject(ds, crs.WGS84)
	require.NoError(t, err)
	assert.NotSame(t, ds, same)
	assert.Equal(t, ds.Names(), same.Names())
	assert.Equal(t, ds.Record(2).X(), same.Record(2).X())
}

func TestReproject_Unsupported(t *testing.T) {
	_, err := Reproject(scenario(t), "EPSG:32618")
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrUnsupportedCRS))
}
