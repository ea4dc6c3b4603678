package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rotisserie/eris"

	"github.com/sells-group/geo-tutorial/internal/analysis"
	"github.com/sells-group/geo-tutorial/internal/crs"
	"github.com/sells-group/geo-tutorial/internal/dataset"
)

// ChartOptions configures the interactive chart page.
type ChartOptions struct {
	Title      string
	NumericKey string
	GroupKey   string
	AssetsHost string // empty uses the go-echarts default CDN
}

var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// Charts renders an HTML page to w with three charts: the record locations
// colored by the numeric attribute, a bar per record, and a pie of the
// numeric total per group.
func Charts(ds *dataset.Dataset, o ChartOptions, w io.Writer) error {
	groups, err := analysis.GroupAggregate(ds, o.GroupKey, o.NumericKey)
	if err != nil {
		return eris.Wrap(err, "render: charts")
	}

	geo := ds
	if ds.CRS() != crs.WGS84 {
		if geo, err = analysis.Reproject(ds, crs.WGS84); err != nil {
			return eris.Wrap(err, "render: charts")
		}
	}

	page := components.NewPage()
	if o.AssetsHost != "" {
		page.SetAssetsHost(o.AssetsHost)
	}
	page.AddCharts(
		locationScatter(geo, o),
		recordBar(geo, o),
		groupPie(groups, o),
	)

	if err := page.Render(w); err != nil {
		return eris.Wrap(err, "render: charts page")
	}
	return nil
}

func initOpts(o ChartOptions, title string) opts.Initialization {
	return opts.Initialization{PageTitle: o.Title, Width: "900px", Height: "600px", AssetsHost: o.AssetsHost, ChartID: title}
}

func locationScatter(ds *dataset.Dataset, o ChartOptions) *charts.Scatter {
	data := make([]opts.ScatterData, 0, ds.Len())
	var maxV float64
	for _, r := range ds.Records() {
		v, _ := r.Attributes[o.NumericKey].Float()
		if v > maxV {
			maxV = v
		}
		data = append(data, opts.ScatterData{Name: r.Name, Value: []interface{}{r.X(), r.Y(), v}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(o, "locations")),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: fmt.Sprintf("colored by %s", o.NumericKey)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Longitude", NameLocation: "middle", NameGap: 25, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Latitude", NameLocation: "middle", NameGap: 30, Scale: opts.Bool(true)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxV),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	scatter.AddSeries(o.NumericKey, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 14}))
	return scatter
}

func recordBar(ds *dataset.Dataset, o ChartOptions) *charts.Bar {
	names := ds.Names()
	data := make([]opts.BarData, 0, ds.Len())
	for _, r := range ds.Records() {
		v, _ := r.Attributes[o.NumericKey].Float()
		data = append(data, opts.BarData{Value: v})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(o, "records")),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s by record", o.NumericKey)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries(o.NumericKey, data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

func groupPie(groups []analysis.GroupStats, o ChartOptions) *charts.Pie {
	data := make([]opts.PieData, 0, len(groups))
	for _, g := range groups {
		data = append(data, opts.PieData{Name: g.Group, Value: g.Sum})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(o, "groups")),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s by %s", o.NumericKey, o.GroupKey)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries(o.GroupKey, data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return pie
}
