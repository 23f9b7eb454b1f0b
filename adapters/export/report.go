// Package export writes simulation run reports to xlsx workbooks.
package export

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"

	"todsim/internal/errors"
)

// DetectorSummary holds per-detector statistics of one synthesized
// timestream.
type DetectorSummary struct {
	Realization int
	Observation uint64
	Detector    string
	Samples     int
	Mean        float64
	StdDev      float64
	Min         float64
	Max         float64
}

// RunReport collects detector summaries for one simulation run.
type RunReport struct {
	RunID string
	Rows  []DetectorSummary
}

// Summarize computes the summary statistics of one detector timestream.
func Summarize(realization int, observation uint64, det string, data []float64) (DetectorSummary, error) {
	mean, err := stats.Mean(data)
	if err != nil {
		return DetectorSummary{}, errors.Wrap(err, "failed to compute timestream mean")
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return DetectorSummary{}, errors.Wrap(err, "failed to compute timestream deviation")
	}
	min, err := stats.Min(data)
	if err != nil {
		return DetectorSummary{}, errors.Wrap(err, "failed to compute timestream minimum")
	}
	max, err := stats.Max(data)
	if err != nil {
		return DetectorSummary{}, errors.Wrap(err, "failed to compute timestream maximum")
	}
	return DetectorSummary{
		Realization: realization,
		Observation: observation,
		Detector:    det,
		Samples:     len(data),
		Mean:        mean,
		StdDev:      stdDev,
		Min:         min,
		Max:         max,
	}, nil
}

// Writer writes run reports to a fixed xlsx path.
type Writer struct {
	path string
}

// NewWriter creates a report writer targeting the given path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

var reportHeader = []string{
	"Realization", "Observation", "Detector", "Samples", "Mean", "StdDev", "Min", "Max",
}

// Write saves the report as a single-sheet workbook, one row per detector
// timestream, with the run ID on a properties row.
func (w *Writer) Write(report RunReport) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("run %s", report.RunID)); err != nil {
		return errors.Wrap(err, "failed to write report run ID")
	}
	for col, name := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return errors.Wrap(err, "failed to address report header cell")
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return errors.Wrap(err, "failed to write report header")
		}
	}

	for i, row := range report.Rows {
		values := []interface{}{
			row.Realization, row.Observation, row.Detector, row.Samples,
			row.Mean, row.StdDev, row.Min, row.Max,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+3)
			if err != nil {
				return errors.Wrap(err, "failed to address report cell")
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return errors.Wrapf(err, "failed to write report row %d", i)
			}
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return errors.Wrapf(err, "failed to save report to %s", w.path)
	}
	return nil
}
