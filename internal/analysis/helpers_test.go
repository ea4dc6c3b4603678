package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/geo-tutorial/internal/dataset"
)

// scenario builds the five-city table used across the analyzer tests, with a
// two-valued region column.
func scenario(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Build([]dataset.RecordInput{
		{Name: "New York", Longitude: -74.006, Latitude: 40.7128, Attributes: map[string]any{"population": 8336817, "region": "East"}},
		{Name: "Chicago", Longitude: -87.6298, Latitude: 41.8781, Attributes: map[string]any{"population": 2693976, "region": "East"}},
		{Name: "Los Angeles", Longitude: -118.2437, Latitude: 34.0522, Attributes: map[string]any{"population": 3979576, "region": "West"}},
		{Name: "Houston", Longitude: -95.3698, Latitude: 29.7604, Attributes: map[string]any{"population": 2320268, "region": "West"}},
		{Name: "Miami", Longitude: -80.1918, Latitude: 25.7617, Attributes: map[string]any{"population": 454279, "region": "East"}},
	})
	require.NoError(t, err)
	return ds
}
