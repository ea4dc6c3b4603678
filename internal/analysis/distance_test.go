package analysis

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom/xy"

	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

func TestPairwiseDistance(t *testing.T) {
	merc, err := Reproject(scenario(t), crs.WebMercator)
	require.NoError(t, err)

	got, err := PairwiseDistance(merc, "New York")
	require.NoError(t, err)
	require.Len(t, got, merc.Len()-1)

	wantKM := map[string]float64{
		"Chicago":     1526.39,
		"Los Angeles": 5012.36,
		"Houston":     2810.29,
		"Miami":       2115.67,
	}
	names := make([]string, 0, len(got))
	for _, d := range got {
		names = append(names, d.Name)
		assert.GreaterOrEqual(t, d.Meters, 0.0)
		assert.InDelta(t, wantKM[d.Name], d.Kilometers(), 0.01, d.Name)
	}
	assert.Equal(t, []string{"Chicago", "Los Angeles", "Houston", "Miami"}, names)
	assert.NotContains(t, got.Map(), "New York")
}

func TestPairwiseDistance_EveryReference(t *testing.T) {
	merc, err := Reproject(scenario(t), crs.WebMercator)
	require.NoError(t, err)

	for _, name := range merc.Names() {
		got, err := PairwiseDistance(merc, name)
		require.NoError(t, err)
		assert.Len(t, got, merc.Len()-1)
		assert.NotContains(t, got.Map(), name)
	}
}

func TestPairwiseDistance_SelfIsZero(t *testing.T) {
	merc, err := Reproject(scenario(t), crs.WebMercator)
	require.NoError(t, err)

	r := merc.Record(0)
	assert.Equal(t, 0.0, xy.Distance(r.Location.Coords(), r.Location.Coords()))
}

func TestPairwiseDistance_ReferenceNotFound(t *testing.T) {
	merc, err := Reproject(scenario(t), crs.WebMercator)
	require.NoError(t, err)

	_, err = PairwiseDistance(merc, "Boston")
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrReferenceNotFound))
}

func TestPairwiseDistance_GeographicRejected(t *testing.T) {
	_, err := PairwiseDistance(scenario(t), "New York")
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrUnsupportedCRS))
}
