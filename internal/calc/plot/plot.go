package plot

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"scartix/internal/calc/scaffold"
)

const (
	width  = 640
	height = 400
)

var lineColor = drawing.Color{R: 46, G: 108, B: 128, A: 255}

// StressStrainPNG renders the sampled stress-strain curve at porosity.
func StressStrainPNG(w io.Writer, t *scaffold.Table, porosity int, src rand.Source) error {
	if t == nil {
		t = scaffold.DefaultTable
	}
	c, err := t.StressStrainCurve(porosity, src)
	if err != nil {
		return err
	}
	return render(w, c, fmt.Sprintf("Stress-Strain Curve (%d%% porosity)", porosity), "Strain (µε)", "Stress (MPa)", nil)
}

// FlowRatePNG renders the constant flow-rate series at porosity.
func FlowRatePNG(w io.Writer, t *scaffold.Table, porosity int) error {
	if t == nil {
		t = scaffold.DefaultTable
	}
	c, err := t.FlowRateCurve(porosity)
	if err != nil {
		return err
	}
	// a flat series has no y extent of its own
	flow := c.Y[0]
	yRange := &chart.ContinuousRange{Min: 0, Max: math.Max(1, flow*1.5)}
	return render(w, c, fmt.Sprintf("Flow Rate (%d%% porosity)", porosity), "Sample", "Flow rate (mL/min)", yRange)
}

func render(w io.Writer, c scaffold.Curve, title, xName, yName string, yRange *chart.ContinuousRange) error {
	graph := chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name: xName,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: yName,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: c.X,
				YValues: c.Y,
				Style:   chart.Style{StrokeColor: lineColor, StrokeWidth: 2.0},
			},
		},
	}
	if yRange != nil {
		graph.YAxis.Range = yRange
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %q: %w", title, err)
	}
	return nil
}
