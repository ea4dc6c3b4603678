package analysis

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

func TestDescribe(t *testing.T) {
	s, err := Describe(scenario(t), "population")
	require.NoError(t, err)

	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 17784916.0, s.Sum)
	assert.InDelta(t, 3556983.2, s.Mean, 1e-6)
	assert.InDelta(t, 2954928.7257, s.Std, 1e-3)
	assert.Equal(t, 454279.0, s.Min)
	assert.Equal(t, 8336817.0, s.Max)
	assert.Equal(t, "New York", s.MaxName)
	assert.Equal(t, "Miami", s.MinName)

	assert.LessOrEqual(t, s.Min, s.Q25)
	assert.LessOrEqual(t, s.Q25, s.Median)
	assert.LessOrEqual(t, s.Median, s.Q75)
	assert.LessOrEqual(t, s.Q75, s.Max)
}

func TestDescribe_SingleRecord(t *testing.T) {
	ds, err := dataset.Build([]dataset.RecordInput{
		{Name: "only", Attributes: map[string]any{"population": 10}},
	})
	require.NoError(t, err)

	s, err := Describe(ds, "population")
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.Mean)
	assert.True(t, math.IsNaN(s.Std))
	assert.Equal(t, "only", s.MaxName)
}

func TestDescribe_Errors(t *testing.T) {
	_, err := Describe(scenario(t), "region")
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrMalformedInput))

	_, err = Describe(scenario(t), "area")
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrAttributeNotFound))
}
