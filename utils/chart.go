package utils

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ClimateSeries 月度降雨与气温
type ClimateSeries struct {
	Months   []string  `json:"months"`
	Rainfall []float64 `json:"rainfall"`
	Temp     []float64 `json:"temp"`
}

// RenderClimateChart 绘制降雨与气温折线图，返回 PNG
func RenderClimateChart(title string, s ClimateSeries) ([]byte, error) {
	if len(s.Months) == 0 || len(s.Rainfall) != len(s.Months) || len(s.Temp) != len(s.Months) {
		return nil, fmt.Errorf("chart: series length mismatch")
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Rainfall (mm) / Temp (°C)"

	rain := make(plotter.XYs, len(s.Months))
	temp := make(plotter.XYs, len(s.Months))
	for i := range s.Months {
		rain[i].X, rain[i].Y = float64(i), s.Rainfall[i]
		temp[i].X, temp[i].Y = float64(i), s.Temp[i]
	}

	rainLine, err := plotter.NewLine(rain)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	rainLine.Color = color.RGBA{R: 30, G: 100, B: 200, A: 255}
	rainLine.Width = vg.Points(2)

	tempLine, err := plotter.NewLine(temp)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	tempLine.Color = color.RGBA{R: 200, G: 60, B: 30, A: 255}
	tempLine.Width = vg.Points(2)

	p.Add(rainLine, tempLine, plotter.NewGrid())
	p.Legend.Add("Rainfall", rainLine)
	p.Legend.Add("Temp", tempLine)
	p.Legend.Top = true
	p.NominalX(s.Months...)

	w, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	return buf.Bytes(), nil
}
