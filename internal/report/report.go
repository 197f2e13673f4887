// Package report formats one simulation's aggregated output to stdout,
// grounded on original_source/src/gaussian_mean_hypotheses/main.cpp's
// free functions separator() and cat().
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"gohyposeq/internal/aggregator"
)

const separatorWidth = 70

// Separator writes a rule of '=' characters between blocks.
func Separator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", separatorWidth))
}

// Header writes the per-simulation banner: replication count and the
// two signal strengths driving this run.
func Header(w io.Writer, simulations int, simulatedSignalStrength, changeOfMeasureSignalStrength float64) {
	fmt.Fprintf(w, "Simulations: %d\n", simulations)
	fmt.Fprintf(w, "Simulated signal strength: %v\n", simulatedSignalStrength)
	fmt.Fprintf(w, "Change of measure signal strength: %v\n", changeOfMeasureSignalStrength)
}

func identity(x float64) float64 { return x }

func negLog10(x float64) float64 { return -math.Log10(x) }

// Cat prints the four corner values of a Moment's mean matrix, an
// ellipsis row, and a standard-error bound derived from the largest
// per-cell variance divided by the replication count, matching
// main.cpp's cat(stat, transform) template.
func Cat(w io.Writer, m aggregator.Moment, transform func(float64) float64) error {
	if transform == nil {
		transform = identity
	}

	mean := m.Mean()
	h, width := mean.Height(), mean.Width()
	if h == 0 || width == 0 {
		return nil
	}

	fmt.Fprintf(w, "%-10v%-10s%-10v\n", transform(mean.At(0, 0)), "---", transform(mean.At(0, width-1)))
	fmt.Fprintf(w, "%-10s%-10s\n", "", "...")
	fmt.Fprintf(w, "%-10v%-10s%-10v\n", transform(mean.At(h-1, 0)), "---", transform(mean.At(h-1, width-1)))

	meanCells := make([]float64, 0, h*width)
	mean.Each(func(i, j int, v float64) { meanCells = append(meanCells, transform(v)) })
	q1, err := stats.Percentile(meanCells, 25)
	if err != nil {
		return fmt.Errorf("computing Q1 of mean values: %w", err)
	}
	median, err := stats.Percentile(meanCells, 50)
	if err != nil {
		return fmt.Errorf("computing median of mean values: %w", err)
	}
	q3, err := stats.Percentile(meanCells, 75)
	if err != nil {
		return fmt.Errorf("computing Q3 of mean values: %w", err)
	}
	fmt.Fprintf(w, "Quartiles across the grid: Q1=%v median=%v Q3=%v\n", q1, median, q3)

	variance := m.Variance()
	cells := make([]float64, 0, h*width)
	variance.Each(func(i, j int, v float64) { cells = append(cells, v) })

	maxVariance, err := stats.Max(cells)
	if err != nil {
		return fmt.Errorf("computing max cell variance: %w", err)
	}

	n := float64(m.Count())
	standardError := math.Sqrt(maxVariance / n)
	fmt.Fprintf(w, "SE = %v\n", standardError)
	return nil
}

// Summary writes the full per-simulation report block: header, the six
// summary blocks main.cpp prints (sample size, direct error, importance
// error, each for both rules), and the elapsed wall time.
func Summary(w io.Writer, simulations int, simulatedSignalStrength, changeOfMeasureSignalStrength float64, out *aggregator.Aggregator, elapsed time.Duration) error {
	Separator(w)
	Header(w, simulations, simulatedSignalStrength, changeOfMeasureSignalStrength)
	Separator(w)

	blocks := []struct {
		label     string
		stat      aggregator.Moment
		transform func(float64) float64
	}{
		{"ASPRT sample size:", out.SampleSize().ASPRT, identity},
		{"GSPRT sample size:", out.SampleSize().GSPRT, identity},
		{"ASPRT direct error (log base 10):", out.DirectError().ASPRT, negLog10},
		{"GSPRT direct error (log base 10):", out.DirectError().GSPRT, negLog10},
		{"ASPRT importance error (log base 10):", out.ImportanceError().ASPRT, negLog10},
		{"GSPRT importance error (log base 10):", out.ImportanceError().GSPRT, negLog10},
	}

	for _, b := range blocks {
		fmt.Fprintln(w, b.label)
		if err := Cat(w, b.stat, b.transform); err != nil {
			return err
		}
		Separator(w)
	}

	fmt.Fprintf(w, "Total elapsed time: %v seconds.\n", elapsed.Seconds())
	Separator(w)
	return nil
}
