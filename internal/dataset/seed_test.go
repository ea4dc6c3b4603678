package dataset

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

func TestSeedNames(t *testing.T) {
	assert.Equal(t, []string{"br-cities", "us-cities"}, SeedNames())
}

func TestLoadSeed_USCities(t *testing.T) {
	s, err := LoadSeed("us-cities")
	require.NoError(t, err)

	assert.Equal(t, "us-cities", s.Name)
	assert.Equal(t, Bounds{MinLon: -120, MaxLon: -70, MinLat: 25, MaxLat: 45}, s.Bounds)
	assert.Equal(t, crs.WGS84, s.Dataset.CRS())
	assert.Equal(t, []string{"New York", "Chicago", "Los Angeles", "Houston", "Miami"}, s.Dataset.Names())
	assert.Equal(t, []string{"population", "region", "state"}, s.Dataset.Keys())

	want := []float64{8336817, 2693976, 3979576, 2320268, 454279}
	for i, r := range s.Dataset.Records() {
		pop, ok := r.Attributes["population"].Float()
		require.True(t, ok)
		assert.Equal(t, want[i], pop)
	}
}

func TestLoadSeed_BRCities(t *testing.T) {
	s, err := LoadSeed("br-cities")
	require.NoError(t, err)

	assert.Equal(t, 5, s.Dataset.Len())
	r, ok := s.Dataset.Lookup("São Paulo")
	require.True(t, ok)
	assert.InDelta(t, -46.6388, r.X(), 1e-12)
	assert.InDelta(t, -23.5489, r.Y(), 1e-12)
}

func TestLoadSeed_Unknown(t *testing.T) {
	_, err := LoadSeed("eu-cities")
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrMalformedInput))
}

func TestParseSeed_Invalid(t *testing.T) {
	_, err := ParseSeed([]byte("records: [: nope"))
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrMalformedInput))

	doc := `
name: broken
records:
  - name: a
    attributes: {population: 1}
  - name: b
    attributes: {region: x}
`
	_, err = ParseSeed([]byte(doc))
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrMalformedInput))
}
