package export

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/railgen/internal/engine"
	"github.com/piwi3910/railgen/internal/evaluator"
	"github.com/piwi3910/railgen/internal/model"
)

const holeAreaBinCount = 8

// ExportReport writes a standalone HTML report for a generated railing:
// the best-fitness progression across attempts, a histogram of hole areas
// and per-layer breakdowns. The history is the drained progress channel
// and may be empty.
func ExportReport(path string, frame *model.Frame, infill model.Infill, history []engine.ProgressUpdate) error {
	if frame == nil || len(frame.Rods) == 0 {
		return fmt.Errorf("no frame to report on")
	}

	page := components.NewPage()

	if len(history) > 0 {
		page.AddCharts(fitnessChart(history))
	}

	holes, err := evaluator.IdentifyHoles(&infill, frame)
	if err != nil {
		return fmt.Errorf("failed to identify holes: %w", err)
	}
	areas := make([]float64, len(holes))
	for i, hole := range holes {
		areas[i] = hole.Area()
	}
	page.AddCharts(holeAreaChart(areas))

	page.AddCharts(layerRodChart(infill), layerWeightChart(infill))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// fitnessChart plots the best fitness seen after each generation attempt.
func fitnessChart(history []engine.ProgressUpdate) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Railing Generation Report"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Best Fitness by Attempt",
			Subtitle: fmt.Sprintf("%d attempts recorded", len(history)),
		}),
	)

	xs := make([]string, len(history))
	data := make([]opts.LineData, len(history))
	for i, u := range history {
		xs[i] = fmt.Sprintf("%d", u.Iteration)
		data[i] = opts.LineData{Value: u.BestFitness}
	}

	line.SetXAxis(xs).AddSeries("best fitness", data)
	return line
}

// holeAreaChart renders a histogram of the enclosed hole areas.
func holeAreaChart(areas []float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Hole Area Distribution",
			Subtitle: fmt.Sprintf("%d holes", len(areas)),
		}),
	)

	labels, counts := binAreas(areas, holeAreaBinCount)
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		data[i] = opts.BarData{Value: c}
	}

	bar.SetXAxis(labels).AddSeries("holes", data)
	return bar
}

// layerRodChart renders rod counts per infill layer.
func layerRodChart(infill model.Infill) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Rods per Layer"}))

	layers := infillLayerNumbers(infill)
	labels := make([]string, len(layers))
	data := make([]opts.BarData, len(layers))
	for i, layer := range layers {
		labels[i] = fmt.Sprintf("layer %d", layer)
		data[i] = opts.BarData{Value: len(infill.LayerRods(layer))}
	}

	bar.SetXAxis(labels).AddSeries("rods", data)
	return bar
}

// layerWeightChart renders the weight share of each infill layer.
func layerWeightChart(infill model.Infill) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Weight by Layer",
		Subtitle: fmt.Sprintf("total %.2f kg", infill.TotalWeightKg()),
	}))

	var data []opts.PieData
	for _, layer := range infillLayerNumbers(infill) {
		_, weight := bomTotals(infill.LayerRods(layer))
		data = append(data, opts.PieData{
			Name:  fmt.Sprintf("layer %d", layer),
			Value: weight,
		})
	}

	pie.AddSeries("weight", data)
	return pie
}

// binAreas buckets areas into count equal-width bins between the observed
// minimum and maximum. Degenerate spans collapse to a single bin.
func binAreas(areas []float64, count int) (labels []string, counts []int) {
	if len(areas) == 0 {
		return []string{"none"}, []int{0}
	}

	sorted := append([]float64(nil), areas...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	if hi-lo < 1e-9 {
		return []string{fmt.Sprintf("%.0f cm2", lo)}, []int{len(areas)}
	}

	width := (hi - lo) / float64(count)
	labels = make([]string, count)
	counts = make([]int, count)
	for i := 0; i < count; i++ {
		labels[i] = fmt.Sprintf("%.0f-%.0f", lo+float64(i)*width, lo+float64(i+1)*width)
	}
	for _, a := range areas {
		idx := int((a - lo) / width)
		if idx >= count {
			idx = count - 1
		}
		counts[idx]++
	}
	return labels, counts
}
