// Package report renders walkthrough results as markdown for the CLI
// and converts them to HTML for the web UI.
package report

import (
	"fmt"
	"strings"

	"ecostat/app"
	domainstats "ecostat/domain/stats"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// FishSurveyMarkdown renders walkthrough one as a markdown document
func FishSurveyMarkdown(r *app.FishSurveyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fish Length Survey\n\n")
	fmt.Fprintf(&b, "Seed %d, %d bootstrap trials, %.0f%% confidence.\n\n", r.Seed, r.Trials, r.Confidence*100)

	b.WriteString("## Habitat summaries\n\n")
	b.WriteString("| Habitat | n | Mean | SD | Median | Q1 | Q3 | Skew |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, h := range r.Habitats {
		fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f | %.2f | %.2f | %.2f | %+.2f |\n",
			h.Name, h.Summary.N, h.Summary.Mean, h.Summary.StdDev,
			h.Summary.Median, h.Summary.Q25, h.Summary.Q75, h.Distribution.Skewness)
	}

	b.WriteString("\n## Confidence intervals for the mean length\n\n")
	b.WriteString("| Habitat | Student-t | Percentile bootstrap | Bootstrap SE |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, h := range r.Habitats {
		fmt.Fprintf(&b, "| %s | %s | %s | %.3f |\n",
			h.Name, formatCI(h.ParametricCI), formatCI(h.BootstrapCI), h.BootstrapSE)
	}

	b.WriteString("\n## Two-sample comparison\n\n")
	writeTTest(&b, "Welch (unequal variances)", r.WelchTest)
	writeTTest(&b, "Pooled (equal variances)", r.PooledTest)

	b.WriteString("\n## One-way ANOVA across habitats\n\n")
	a := r.Anova
	fmt.Fprintf(&b, "F(%d, %d) = %.3f, p = %.4g, eta-squared = %.3f\n\n",
		a.DFBetween, a.DFWithin, a.FStatistic, a.PValue, a.EtaSquared)
	b.WriteString("| Source | SS | df | MS |\n|---|---|---|---|\n")
	fmt.Fprintf(&b, "| Between groups | %.2f | %d | %.2f |\n", a.SSBetween, a.DFBetween, a.MSBetween)
	fmt.Fprintf(&b, "| Within groups | %.2f | %d | %.2f |\n", a.SSWithin, a.DFWithin, a.MSWithin)
	fmt.Fprintf(&b, "| Total | %.2f | %d | |\n", a.SSTotal, a.DFBetween+a.DFWithin)

	return b.String()
}

// WaterQualityMarkdown renders walkthrough two as a markdown document
func WaterQualityMarkdown(r *app.WaterQualityReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Water Quality Exploration\n\n")
	fmt.Fprintf(&b, "Seed %d, %.0f%% confidence, %d sites.\n\n", r.Seed, r.Confidence*100, len(r.Sites))

	b.WriteString("## Per-site variable summaries\n\n")
	b.WriteString("| Site | Variable | n | Mean | SD | Median | Skew | Normal? (p) |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, a := range r.Analyses {
		fmt.Fprintf(&b, "| %s | %s | %d | %.2f | %.2f | %.2f | %+.2f | %s (%.3f) |\n",
			a.Site, a.Variable, a.Summary.N, a.Summary.Mean, a.Summary.StdDev,
			a.Summary.Median, a.Skewness, yesNo(a.Normality.IsNormal), a.Normality.PValue)
	}

	b.WriteString("\n## Variance equality across sites (Brown-Forsythe)\n\n")
	b.WriteString("| Variable | F | df | p |\n|---|---|---|---|\n")
	for _, key := range []string{"ph", "dissolved_oxygen", "turbidity", "temperature"} {
		for variable, l := range r.Levene {
			if variable.String() == key {
				fmt.Fprintf(&b, "| %s | %.3f | (%d, %d) | %.4g |\n", key, l.FStatistic, l.DF1, l.DF2, l.PValue)
			}
		}
	}

	b.WriteString("\n## Pooled correlations\n\n")
	b.WriteString("| Pair | r | p | n |\n|---|---|---|---|\n")
	for _, p := range r.Correlations.Pairs {
		fmt.Fprintf(&b, "| %s ~ %s | %+.3f | %.4g | %d |\n", p.VariableX, p.VariableY, p.Coefficient, p.PValue, p.N)
	}

	fmt.Fprintf(&b, "\n## Pooled turbidity median\n\nPercentile bootstrap interval: %s\n", formatCI(r.TurbidityCI))

	return b.String()
}

// RenderHTML converts a markdown report to an HTML fragment
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func writeTTest(b *strings.Builder, label string, t *domainstats.TTestResult) {
	fmt.Fprintf(b, "**%s** %s vs %s: t = %.3f, df = %.1f, p = %.4g, d = %.2f, diff CI %s\n\n",
		label, t.Groups[0].Name, t.Groups[1].Name,
		t.TStatistic, t.DF, t.PValue, t.EffectSize, formatCI(t.CI))
}

func formatCI(ci domainstats.ConfidenceInterval) string {
	return fmt.Sprintf("[%.3f, %.3f]", ci.Lower, ci.Upper)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
