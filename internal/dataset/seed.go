package dataset

import (
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/geo-tutorial/internal/geoerr"
)

//go:embed seeds/*.yaml
var seedFS embed.FS

// Bounds is a lon/lat display window.
type Bounds struct {
	MinLon float64 `yaml:"min_lon" json:"min_lon"`
	MaxLon float64 `yaml:"max_lon" json:"max_lon"`
	MinLat float64 `yaml:"min_lat" json:"min_lat"`
	MaxLat float64 `yaml:"max_lat" json:"max_lat"`
}

// Seed is an embedded literal table together with its display metadata.
type Seed struct {
	Name    string
	Title   string
	Bounds  Bounds
	Dataset *Dataset
}

type seedFile struct {
	Name    string        `yaml:"name"`
	Title   string        `yaml:"title"`
	Bounds  Bounds        `yaml:"bounds"`
	Records []RecordInput `yaml:"records"`
}

// SeedNames lists the embedded seeds in sorted order.
func SeedNames() []string {
	entries, err := seedFS.ReadDir("seeds")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// LoadSeed parses the embedded seed with the given name into a geographic
// dataset.
func LoadSeed(name string) (*Seed, error) {
	data, err := seedFS.ReadFile(path.Join("seeds", name+".yaml"))
	if err != nil {
		return nil, eris.Wrapf(geoerr.ErrMalformedInput, "dataset: unknown seed %q (have %v)", name, SeedNames())
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) (*Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(geoerr.ErrMalformedInput, "dataset: decode seed: %v", err)
	}

	ds, err := Build(f.Records)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: seed %q", f.Name)
	}

	return &Seed{Name: f.Name, Title: f.Title, Bounds: f.Bounds, Dataset: ds}, nil
}
