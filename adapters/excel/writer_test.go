package excel

import (
	"context"
	"encoding/csv"
	"os"
	"testing"

	"ecostat/app"
	"ecostat/domain/core"
	"ecostat/domain/dataset"
	"ecostat/internal"
	"ecostat/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		BootstrapTrials: 100,
		Confidence:      0.95,
		Seed:            42,
		Workers:         1,
	}
}

func TestWriteFishSurvey(t *testing.T) {
	service := app.NewFishSurveyService(testConfig(), internal.NewDefaultLogger())
	report, err := service.Run(context.Background(), 42)
	require.NoError(t, err)

	writer, err := NewReportWriter(t.TempDir())
	require.NoError(t, err)

	path, err := writer.WriteFishSurvey(report)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summaries", "Intervals", "Tests"}, f.GetSheetList())

	rows, err := f.GetRows("Summaries")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus three habitats")
	assert.Equal(t, "habitat", rows[0][0])
	assert.Equal(t, "river", rows[1][0])
}

func TestWriteWaterQuality(t *testing.T) {
	service := app.NewWaterQualityService(testConfig(), internal.NewDefaultLogger())
	report, err := service.Run(context.Background(), 42)
	require.NoError(t, err)

	writer, err := NewReportWriter(t.TempDir())
	require.NoError(t, err)

	path, err := writer.WriteWaterQuality(report)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summaries")
	require.NoError(t, err)
	assert.Len(t, rows, 13, "header plus 3 sites x 4 variables")

	leveneRows, err := f.GetRows("Levene")
	require.NoError(t, err)
	assert.Len(t, leveneRows, 5, "header plus one row per variable")
}

func TestWriteTableCSV_Grouped(t *testing.T) {
	table := &dataset.Table{
		Name: "lengths",
		Groups: []dataset.Group{
			{Name: "river", Values: []float64{40.5, 41.5}},
			{Name: "lake", Values: []float64{38.0}},
		},
	}

	writer, err := NewReportWriter(t.TempDir())
	require.NoError(t, err)

	path, err := writer.WriteTableCSV(table)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"group", "value"}, records[0])
	assert.Equal(t, "river", records[1][0])
	assert.Equal(t, "lake", records[3][0])
}

func TestWriteTableCSV_Columnar(t *testing.T) {
	table := &dataset.Table{
		Name: "readings",
		Columns: []dataset.Column{
			{Key: core.VariableKey("ph"), Values: []float64{7.1, 7.2}},
			{Key: core.VariableKey("temperature"), Values: []float64{14.5, 15.0}},
		},
	}

	writer, err := NewReportWriter(t.TempDir())
	require.NoError(t, err)

	path, err := writer.WriteTableCSV(table)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"ph", "temperature"}, records[0])
	assert.Equal(t, "7.100000", records[1][0])
}
