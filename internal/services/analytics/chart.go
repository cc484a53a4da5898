package analytics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/arjunmehra/folio/internal/models"
)

// renderComparisonChart renders a PNG line chart of benchmark performance
// with the portfolio's return over the same window. Both series are
// rebased to 100 at the window start so they share an axis.
// Returns raw PNG bytes.
func renderComparisonChart(benchmarkSeries []models.PricePoint, portfolioReturn float64, benchmark string) ([]byte, error) {
	if len(benchmarkSeries) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(benchmarkSeries))
	}

	n := len(benchmarkSeries)
	xValues := make([]time.Time, n)
	benchY := make([]float64, n)
	portY := make([]float64, n)

	base := benchmarkSeries[0].Close
	for i, p := range benchmarkSeries {
		xValues[i] = p.Date
		if base != 0 {
			benchY[i] = p.Close / base * 100
		}
		// Straight-line interpolation of the portfolio's window return.
		portY[i] = 100 + portfolioReturn*float64(i)/float64(n-1)
	}

	portfolioSeries := chart.TimeSeries{
		Name: "Portfolio",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: portY,
	}

	indexSeries := chart.TimeSeries{
		Name: benchmark,
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: benchY,
	}

	graph := chart.Chart{
		Title:  "Portfolio vs " + benchmark,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("02 Jan")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.1f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			portfolioSeries,
			indexSeries,
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
