// Package excel exports walkthrough results to XLSX workbooks and
// generated datasets to CSV files.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ecostat/app"
	"ecostat/domain/dataset"
	"ecostat/internal/errors"

	"github.com/xuri/excelize/v2"
)

// ReportWriter writes analysis workbooks into a target directory
type ReportWriter struct {
	dir string
}

// NewReportWriter creates a writer rooted at dir, creating it if needed
func NewReportWriter(dir string) (*ReportWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.ExportError("xlsx", err)
	}
	return &ReportWriter{dir: dir}, nil
}

// WriteFishSurvey writes walkthrough one to an XLSX workbook and returns
// the file path
func (w *ReportWriter) WriteFishSurvey(report *app.FishSurveyReport) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Summaries"
	f.SetSheetName("Sheet1", sheet)
	writeRow(f, sheet, 1, "habitat", "n", "mean", "sd", "median", "q25", "q75", "skewness")
	for i, h := range report.Habitats {
		writeRow(f, sheet, i+2, h.Name, h.Summary.N, h.Summary.Mean, h.Summary.StdDev,
			h.Summary.Median, h.Summary.Q25, h.Summary.Q75, h.Distribution.Skewness)
	}

	ciSheet := "Intervals"
	f.NewSheet(ciSheet)
	writeRow(f, ciSheet, 1, "habitat", "method", "lower", "upper", "level")
	row := 2
	for _, h := range report.Habitats {
		writeRow(f, ciSheet, row, h.Name, h.ParametricCI.Method, h.ParametricCI.Lower, h.ParametricCI.Upper, h.ParametricCI.Level)
		row++
		writeRow(f, ciSheet, row, h.Name, h.BootstrapCI.Method, h.BootstrapCI.Lower, h.BootstrapCI.Upper, h.BootstrapCI.Level)
		row++
	}

	testSheet := "Tests"
	f.NewSheet(testSheet)
	writeRow(f, testSheet, 1, "test", "statistic", "df", "p_value", "effect_size")
	writeRow(f, testSheet, 2, "welch_t", report.WelchTest.TStatistic, report.WelchTest.DF, report.WelchTest.PValue, report.WelchTest.EffectSize)
	writeRow(f, testSheet, 3, "pooled_t", report.PooledTest.TStatistic, report.PooledTest.DF, report.PooledTest.PValue, report.PooledTest.EffectSize)
	writeRow(f, testSheet, 4, "anova_f", report.Anova.FStatistic,
		fmt.Sprintf("(%d, %d)", report.Anova.DFBetween, report.Anova.DFWithin), report.Anova.PValue, report.Anova.EtaSquared)

	path := filepath.Join(w.dir, fmt.Sprintf("fish_survey_%s.xlsx", report.AnalysisID))
	if err := f.SaveAs(path); err != nil {
		return "", errors.ExportError("xlsx", err)
	}
	return path, nil
}

// WriteWaterQuality writes walkthrough two to an XLSX workbook and
// returns the file path
func (w *ReportWriter) WriteWaterQuality(report *app.WaterQualityReport) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Summaries"
	f.SetSheetName("Sheet1", sheet)
	writeRow(f, sheet, 1, "site", "variable", "n", "mean", "sd", "median", "skewness", "normality_p")
	for i, a := range report.Analyses {
		writeRow(f, sheet, i+2, a.Site, a.Variable.String(), a.Summary.N, a.Summary.Mean,
			a.Summary.StdDev, a.Summary.Median, a.Skewness, a.Normality.PValue)
	}

	leveneSheet := "Levene"
	f.NewSheet(leveneSheet)
	writeRow(f, leveneSheet, 1, "variable", "f_statistic", "df1", "df2", "p_value")
	row := 2
	for variable, l := range report.Levene {
		writeRow(f, leveneSheet, row, variable.String(), l.FStatistic, l.DF1, l.DF2, l.PValue)
		row++
	}

	corrSheet := "Correlations"
	f.NewSheet(corrSheet)
	writeRow(f, corrSheet, 1, "variable_x", "variable_y", "r", "p_value", "n")
	for i, p := range report.Correlations.Pairs {
		writeRow(f, corrSheet, i+2, p.VariableX.String(), p.VariableY.String(), p.Coefficient, p.PValue, p.N)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("water_quality_%s.xlsx", report.AnalysisID))
	if err := f.SaveAs(path); err != nil {
		return "", errors.ExportError("xlsx", err)
	}
	return path, nil
}

// WriteTableCSV exports a grouped or columnar dataset as CSV and returns
// the file path
func (w *ReportWriter) WriteTableCSV(table *dataset.Table) (string, error) {
	path := filepath.Join(w.dir, table.Name+".csv")
	file, err := os.Create(path)
	if err != nil {
		return "", errors.ExportError("csv", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(table.Groups) > 0 {
		if err := writer.Write([]string{"group", "value"}); err != nil {
			return "", errors.ExportError("csv", err)
		}
		for _, g := range table.Groups {
			for _, v := range g.Values {
				if err := writer.Write([]string{g.Name, formatFloat(v)}); err != nil {
					return "", errors.ExportError("csv", err)
				}
			}
		}
		return path, nil
	}

	header := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c.Key.String()
	}
	if err := writer.Write(header); err != nil {
		return "", errors.ExportError("csv", err)
	}

	rows := table.RowCount()
	record := make([]string, len(table.Columns))
	for r := 0; r < rows; r++ {
		for c, col := range table.Columns {
			record[c] = formatFloat(col.Values[r])
		}
		if err := writer.Write(record); err != nil {
			return "", errors.ExportError("csv", err)
		}
	}

	return path, nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			continue
		}
		f.SetCellValue(sheet, cell, v)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
