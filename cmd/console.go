package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/geo-tutorial/internal/dataset"
	"github.com/sells-group/geo-tutorial/internal/export"
	"github.com/sells-group/geo-tutorial/internal/geoerr"
	"github.com/sells-group/geo-tutorial/internal/render"
)

// console prints human-readable progress with grouped thousands.
type console struct {
	w io.Writer
	p *message.Printer
}

func newConsole(w io.Writer) *console {
	return &console{w: w, p: message.NewPrinter(language.English)}
}

func (c *console) banner(title string) {
	c.p.Fprintf(c.w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func (c *console) linef(format string, args ...any) {
	c.p.Fprintf(c.w, format+"\n", args...)
}

func (c *console) files(infos []export.FileInfo) {
	c.linef("Files created:")
	for _, f := range infos {
		c.linef("  - %s: %.1f KB", f.Path, f.KB())
	}
}

// outputPath joins name onto the configured output directory, creating the
// directory on first use.
func outputPath(name string) (string, error) {
	dir := cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", geoerr.NewIOError("mkdir", dir, err)
	}
	return filepath.Join(dir, name), nil
}

func mapOptions(title string, bounds *dataset.Bounds) render.MapOptions {
	return render.MapOptions{
		Title:    title,
		Bounds:   bounds,
		WidthIn:  cfg.Render.WidthIn,
		HeightIn: cfg.Render.HeightIn,
	}
}

func describeColumns(ds *dataset.Dataset) []string {
	cols := []string{"name"}
	for _, k := range ds.Keys() {
		kind, _ := ds.KindOf(k)
		cols = append(cols, k+" ("+kind.String()+")")
	}
	return append(cols, "geometry")
}
