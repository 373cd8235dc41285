package peptide_report

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var errNoData = errors.New("no data to plot")

type IntegerTicks struct{}

func (IntegerTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	step := int(math.Max(1, math.Ceil((max-min)/10)))
	for i := int(math.Ceil(min)); i <= int(math.Floor(max)); i += step {
		ticks = append(ticks, plot.Tick{
			Value: float64(i),
			Label: fmt.Sprintf("%d", i),
		})
	}
	return ticks
}

func renderSVG(p *plot.Plot) (string, error) {
	var buf bytes.Buffer
	writer, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "svg")
	if err != nil {
		return "", err
	}
	_, err = writer.WriteTo(&buf)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GenerateProteinLengthPlotSVG draws the protein length distribution together
// with a normal curve fitted to the same lengths.
func GenerateProteinLengthPlotSVG(lengths []float64) (string, error) {
	if len(lengths) == 0 {
		return "", errNoData
	}
	p := plot.New()
	p.Title.Text = "Protein Length Distribution"
	p.X.Label.Text = "Protein Length (aa)"
	p.Y.Label.Text = "Protein Count"
	p.X.Tick.Marker = IntegerTicks{}

	// A. Bin lengths
	minLen, maxLen := lengths[0], lengths[0]
	for _, l := range lengths {
		minLen = math.Min(minLen, l)
		maxLen = math.Max(maxLen, l)
	}
	binCount := int(math.Min(50, maxLen-minLen+1))
	binWidth := (maxLen - minLen + 1) / float64(binCount)
	observed := make([]float64, binCount)
	for _, l := range lengths {
		bin := int((l - minLen) / binWidth)
		if bin >= binCount {
			bin = binCount - 1
		}
		observed[bin]++
	}

	observedXY := make(plotter.XYs, binCount)
	for i := 0; i < binCount; i++ {
		observedXY[i].X = minLen + binWidth*float64(i) + binWidth/2
		observedXY[i].Y = observed[i]
	}
	obsLine, err := plotter.NewLine(observedXY)
	if err != nil {
		return "", err
	}
	obsLine.Color = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	obsLine.Width = vg.Points(2)
	p.Add(obsLine)
	p.Legend.Add("Observed", obsLine)

	// B. Modelled normal, scaled to the observed total
	mean, stddev := stat.MeanStdDev(lengths, nil)
	if stddev > 0 {
		normDist := distuv.Normal{Mu: mean, Sigma: stddev}
		scaleFactor := float64(len(lengths)) * binWidth
		expectedXY := make(plotter.XYs, binCount)
		for i := 0; i < binCount; i++ {
			x := observedXY[i].X
			expectedXY[i].X = x
			expectedXY[i].Y = normDist.Prob(x) * scaleFactor
		}
		expLine, err := plotter.NewLine(expectedXY)
		if err != nil {
			return "", err
		}
		expLine.Color = color.RGBA{R: 255, G: 100, B: 100, A: 255}
		expLine.Width = vg.Points(2)
		expLine.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(expLine)
		p.Legend.Add("Modelled Normal", expLine)
	}
	p.Legend.Top = true

	return renderSVG(p)
}

// GeneratePeptidesPerLengthPlotSVG draws one bar per peptide length with the
// number of distinct peptides of that length.
func GeneratePeptidesPerLengthPlotSVG(stats PeptideStats) (string, error) {
	ks := stats.SortedLengths()
	if len(ks) == 0 {
		return "", errNoData
	}
	p := plot.New()
	p.Title.Text = "Unique Peptides per Length"
	p.X.Label.Text = "Peptide Length (aa)"
	p.Y.Label.Text = "Unique Peptides"

	values := make(plotter.Values, len(ks))
	labels := make([]string, len(ks))
	for i, k := range ks {
		values[i] = float64(stats.PeptidesPerLength[k])
		labels[i] = strconv.Itoa(k)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return "", err
	}
	bars.Color = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	return renderSVG(p)
}
