package chart

import (
	"errors"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hubertkaluzny/weight-exporter/record"
)

var ErrNoRecords = errors.New("no records to chart")

// WeightLine plots weight over time with one series per source.
func WeightLine(records []record.FlatRecord) (*charts.Line, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	bySource := make(map[string][]opts.LineData)
	min := math.MaxFloat64
	max := -math.MaxFloat64
	for _, rec := range records {
		bySource[rec.Source] = append(bySource[rec.Source], opts.LineData{
			Value: []interface{}{rec.Date, rec.ValueKg},
		})
		if rec.ValueKg > max {
			max = rec.ValueKg
		}
		if rec.ValueKg < min {
			min = rec.ValueKg
		}
	}

	sources := make([]string, 0, len(bySource))
	for src := range bySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Body Weight",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "kg",
			Min:  math.Floor(min) - 1,
			Max:  math.Ceil(max) + 1,
		}),
	)

	for _, src := range sources {
		name := src
		if name == "" {
			name = "(unnamed source)"
		}
		line.AddSeries(name, bySource[src])
	}

	return line, nil
}

// Render writes records as a standalone HTML page.
func Render(w io.Writer, records []record.FlatRecord) error {
	line, err := WeightLine(records)
	if err != nil {
		return err
	}
	page := components.NewPage()
	page.SetLayout(components.PageCenterLayout)
	page.AddCharts(line)
	return page.Render(w)
}
