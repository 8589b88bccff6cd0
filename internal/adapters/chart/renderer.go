// Package chart renders the mood timeline as a PNG.
package chart

import (
	"bytes"
	"fmt"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
)

// Renderer implements domain.ChartRenderer with go-chart.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderTimeline draws mood values over time as a line chart. Points must
// already be sorted ascending by time.
func (r *Renderer) RenderTimeline(points []domain.MoodPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points to render")
	}

	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		xs = append(xs, p.At)
		ys = append(ys, float64(p.Mood))
	}
	// go-chart needs a non-degenerate x-range; pad a lone sample into a
	// short flat segment.
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(time.Minute))
		ys = append(ys, ys[0])
	}

	line := drawing.ColorFromHex("4caf50")
	graph := gochart.Chart{
		Width:      1200,
		Height:     600,
		Background: gochart.Style{FillColor: drawing.ColorWhite},
		Canvas:     gochart.Style{FillColor: drawing.ColorWhite},
		XAxis: gochart.XAxis{
			Name:           "Time",
			ValueFormatter: gochart.TimeValueFormatterWithFormat("2006-01-02 15:04"),
		},
		YAxis: gochart.YAxis{
			Name:  "Mood Level",
			Range: &gochart.ContinuousRange{Min: 0.5, Max: 5.5},
			Ticks: []gochart.Tick{
				{Value: 1, Label: "1"},
				{Value: 2, Label: "2"},
				{Value: 3, Label: "3"},
				{Value: 4, Label: "4"},
				{Value: 5, Label: "5"},
			},
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    "Mood",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: line,
					StrokeWidth: 2,
					DotColor:    line,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering mood chart: %w", err)
	}
	return buf.Bytes(), nil
}
