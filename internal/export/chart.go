package export

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/contribfang/internal/contrib"
)

const (
	pieChartWidth  = "900px"
	pieChartHeight = "600px"
	pieRadius      = "65%"
)

// PieSlice is one labeled value in a proportional chart. Values are
// passed through unvalidated; pie semantics (non-negative, meaningful
// sum) are the caller's responsibility.
type PieSlice struct {
	Label string
	Value int
}

// CommitterCommitSlices maps committers to slices sized by commit count.
func CommitterCommitSlices(agg *contrib.Aggregates) []PieSlice {
	slices := make([]PieSlice, 0, len(agg.Committers))
	for _, committer := range agg.Committers {
		slices = append(slices, PieSlice{Label: committer.Email, Value: committer.NumCommits})
	}

	return sortSlices(slices)
}

// CommitterAdditionSlices maps committers to slices sized by added lines.
func CommitterAdditionSlices(agg *contrib.Aggregates) []PieSlice {
	slices := make([]PieSlice, 0, len(agg.Committers))
	for _, committer := range agg.Committers {
		slices = append(slices, PieSlice{Label: committer.Email, Value: committer.NumAdditions})
	}

	return sortSlices(slices)
}

// DomainCommitSlices maps domains to slices sized by commit count.
func DomainCommitSlices(agg *contrib.Aggregates) []PieSlice {
	slices := make([]PieSlice, 0, len(agg.Domains))
	for _, bucket := range agg.Domains {
		slices = append(slices, PieSlice{Label: bucket.Domain, Value: bucket.NumCommits})
	}

	return sortSlices(slices)
}

// DomainAdditionSlices maps domains to slices sized by added lines.
func DomainAdditionSlices(agg *contrib.Aggregates) []PieSlice {
	slices := make([]PieSlice, 0, len(agg.Domains))
	for _, bucket := range agg.Domains {
		slices = append(slices, PieSlice{Label: bucket.Domain, Value: bucket.NumAdditions})
	}

	return sortSlices(slices)
}

// sortSlices orders slices largest-first, then by label for stability.
func sortSlices(slices []PieSlice) []PieSlice {
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}

		return slices[i].Label < slices[j].Label
	})

	return slices
}

// RenderPie renders a pie chart with one slice per entry and a
// percentage annotation per slice.
func RenderPie(w io.Writer, title string, pieSlices []PieSlice) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     pieChartWidth,
			Height:    pieChartHeight,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	pieData := make([]opts.PieData, len(pieSlices))
	for i, slice := range pieSlices {
		pieData[i] = opts.PieData{Name: slice.Label, Value: slice.Value}
	}

	pie.AddSeries(title, pieData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c} ({d}%)",
			}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: pieRadius,
			}),
		)

	err := pie.Render(w)
	if err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}

	return nil
}

// WritePie renders the chart to a standalone HTML file at path.
func WritePie(path, title string, pieSlices []PieSlice) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	renderErr := RenderPie(file, title, pieSlices)
	closeErr := file.Close()

	if renderErr != nil {
		return renderErr
	}

	if closeErr != nil {
		return fmt.Errorf("close chart file: %w", closeErr)
	}

	return nil
}
