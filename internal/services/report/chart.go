package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/vantage/internal/models"
)

// RenderDCFChart renders a PNG line chart of a DCF projection.
// Two series: Projected FCF (blue solid) and Present Value (gray dashed).
// Year 0 is the base free cash flow, so every projection has at least two points.
func RenderDCFChart(r *models.DCFResult) ([]byte, error) {
	if r == nil || len(r.Projections) == 0 {
		return nil, fmt.Errorf("no projections to chart")
	}

	n := len(r.Projections) + 1
	xValues := make([]float64, n)
	fcfY := make([]float64, n)
	pvY := make([]float64, n)

	xValues[0] = 0
	fcfY[0] = r.Breakdown.BaseFreeCashFlow
	pvY[0] = r.Breakdown.BaseFreeCashFlow
	for i, p := range r.Projections {
		xValues[i+1] = float64(p.Year)
		fcfY[i+1] = p.FreeCashFlow
		pvY[i+1] = p.PresentValue
	}

	fcfSeries := chart.ContinuousSeries{
		Name: "Projected FCF",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: fcfY,
	}

	pvSeries := chart.ContinuousSeries{
		Name: "Present Value",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: pvY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s DCF Projection", r.Symbol),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("Y%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return money(f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			fcfSeries,
			pvSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
