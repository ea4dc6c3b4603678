package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

// runCLI executes the root command in a fresh working directory with output
// redirected to <tmp>/out and returns everything printed to stdout.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	outDir := filepath.Join(dir, "out")
	t.Setenv("GEOTUTORIAL_OUTPUT_DIR", outDir)
	t.Setenv("GEOTUTORIAL_LOG_LEVEL", "error")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), outDir, err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"demo", "tutorial", "export", "seeds", "doctor"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "geo-tutorial", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestExportCommand_Flags(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{"seed", "us-cities"},
		{"format", "geojson"},
		{"out", ""},
		{"buffers", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := exportCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "export command should have --%s flag", tt.name)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}
}

func TestTutorialCommand_Flags(t *testing.T) {
	flag := tutorialCmd.Flags().Lookup("seed")
	require.NotNil(t, flag)
	assert.Equal(t, "us-cities", flag.DefValue)

	flag = tutorialCmd.Flags().Lookup("filter")
	require.NotNil(t, flag)
	assert.Equal(t, "South", flag.DefValue)

	assert.NotNil(t, tutorialCmd.Flags().Lookup("reference"))
}

func TestDemoCommand_Flags(t *testing.T) {
	flag := demoCmd.Flags().Lookup("seed")
	require.NotNil(t, flag)
	assert.Equal(t, "br-cities", flag.DefValue)
}

func TestSeedsCommand(t *testing.T) {
	out, _, err := runCLI(t, "seeds")
	require.NoError(t, err)
	assert.Contains(t, out, "us-cities")
	assert.Contains(t, out, "br-cities")
	assert.Contains(t, out, "United States cities")
}

func TestExportCommand_CSV(t *testing.T) {
	out, outDir, err := runCLI(t, "export", "--seed", "us-cities", "--format", "csv", "--out", "", "--buffers=false")
	require.NoError(t, err)

	path := filepath.Join(outDir, "us-cities.csv")
	assert.FileExists(t, path)
	assert.Contains(t, out, path)
}

func TestExportCommand_ShapefileBuffers(t *testing.T) {
	_, outDir, err := runCLI(t, "export", "--seed", "br-cities", "--format", "shapefile", "--out", "", "--buffers=true")
	require.NoError(t, err)

	for _, ext := range []string{".shp", ".shx", ".dbf", ".prj"} {
		assert.FileExists(t, filepath.Join(outDir, "br-cities_buffers"+ext))
	}
}

func TestExportCommand_BuffersUnsupportedFormat(t *testing.T) {
	_, _, err := runCLI(t, "export", "--seed", "us-cities", "--format", "parquet", "--out", "", "--buffers=true")
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrUnsupportedFormat))
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "export", "--seed", "us-cities", "--format", "kml", "--out", "", "--buffers=false")
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrUnsupportedFormat))
}

func TestExportCommand_UnknownSeed(t *testing.T) {
	_, _, err := runCLI(t, "export", "--seed", "atlantis", "--format", "csv", "--out", "", "--buffers=false")
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrMalformedInput))
}

func TestDemoCommand(t *testing.T) {
	t.Setenv("GEOTUTORIAL_RENDER_ENABLED", "false")

	out, outDir, err := runCLI(t, "demo", "--seed", "br-cities")
	require.NoError(t, err)

	assert.Contains(t, out, "Created 5 points")
	assert.Contains(t, out, "Total population: 25,561,833")
	assert.Contains(t, out, "Largest:  São Paulo")
	assert.FileExists(t, filepath.Join(outDir, "br-cities_demo.geojson"))
	assert.NoFileExists(t, filepath.Join(outDir, "br-cities_demo.png"))
}

func TestTutorialCommand(t *testing.T) {
	out, outDir, err := runCLI(t, "tutorial", "--seed", "us-cities", "--reference", "", "--filter", "South")
	require.NoError(t, err)

	assert.Contains(t, out, "Records with region=South: [Houston Miami]")
	assert.Contains(t, out, "New York -> Chicago: 1,526.4 km")
	assert.Contains(t, out, "New York -> Los Angeles: 5,012.4 km")
	assert.Contains(t, out, "Built 5 influence areas of 300 km")
	assert.Contains(t, out, "Northeast")

	for _, name := range []string{
		"cities_map.png",
		"cities_charts.html",
		"influence_areas.geojson",
		"influence_areas.png",
		"cities_example.geojson",
		"cities_example.shp",
		"cities_example.shx",
		"cities_example.dbf",
		"cities_example.prj",
		"cities_example.csv",
		"cities_example.parquet",
		"cities_stats.xlsx",
	} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
}

func TestTutorialCommand_UnknownReference(t *testing.T) {
	t.Setenv("GEOTUTORIAL_RENDER_ENABLED", "false")

	_, _, err := runCLI(t, "tutorial", "--seed", "us-cities", "--reference", "Atlantis", "--filter", "")
	require.Error(t, err)
	assert.True(t, eris.Is(err, geoerr.ErrReferenceNotFound))
}

func TestDoctorCommand(t *testing.T) {
	out, _, err := runCLI(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "ok    export formats")
	assert.Contains(t, out, "Everything looks good.")
}

func TestInvalidConfigFailsFast(t *testing.T) {
	t.Setenv("GEOTUTORIAL_ANALYSIS_BUFFER_SEGMENTS", "1")

	_, _, err := runCLI(t, "seeds")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis.buffer_segments must be >= 3")
}
