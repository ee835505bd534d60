package report

import (
	"context"
	"strings"
	"testing"

	"ecostat/app"
	"ecostat/internal"
	"ecostat/internal/config"
)

func testConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		BootstrapTrials: 100,
		Confidence:      0.95,
		Seed:            42,
		Workers:         1,
	}
}

func TestFishSurveyMarkdown(t *testing.T) {
	service := app.NewFishSurveyService(testConfig(), internal.NewDefaultLogger())
	result, err := service.Run(context.Background(), 42)
	if err != nil {
		t.Fatalf("walkthrough failed: %v", err)
	}

	md := FishSurveyMarkdown(result)

	for _, want := range []string{
		"# Fish Length Survey",
		"## Habitat summaries",
		"## Confidence intervals for the mean length",
		"## Two-sample comparison",
		"## One-way ANOVA across habitats",
		"| river |",
		"| lake |",
		"| pond |",
		"Welch (unequal variances)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestWaterQualityMarkdown(t *testing.T) {
	service := app.NewWaterQualityService(testConfig(), internal.NewDefaultLogger())
	result, err := service.Run(context.Background(), 42)
	if err != nil {
		t.Fatalf("walkthrough failed: %v", err)
	}

	md := WaterQualityMarkdown(result)

	for _, want := range []string{
		"# Water Quality Exploration",
		"## Per-site variable summaries",
		"Brown-Forsythe",
		"## Pooled correlations",
		"## Pooled turbidity median",
		"| upstream |",
		"| turbidity |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderHTML_Tables(t *testing.T) {
	md := "# Title\n\n| A | B |\n|---|---|\n| 1 | 2 |\n"
	out := string(RenderHTML(md))

	if !strings.Contains(out, "<h1") {
		t.Errorf("HTML missing heading: %s", out)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("HTML missing table: %s", out)
	}
}
