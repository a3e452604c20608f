package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/pqradar/pqradar/internal/risk"
	"github.com/pqradar/pqradar/internal/session"
	"github.com/pqradar/pqradar/internal/types"
)

var dashboardPlots = []string{
	"pqc_dashboard.png",
	"pqc_risk_analysis_dashboard.png",
}

var shapPlots = []string{
	"shap_feature_importance.png",
	"shap_summary_detailed.png",
	"shap_waterfall_explanation.png",
}

// complianceRows maps risk labels to migration guidance. The label order is
// the render order.
var complianceRows = []struct {
	label    types.RiskLabel
	guidance string
	window   string
}{
	{types.LabelCritical, "Immediate migration per CNSA 2.0; harvest-now-decrypt-later exposure", "0-3 months"},
	{types.LabelHigh, "Schedule migration; NIST SP 800-208 / FIPS 203-205 targets", "3-12 months"},
	{types.LabelMedium, "Plan migration in the next budget cycle", "12-24 months"},
	{types.LabelLow, "Track; replace during routine maintenance", "24+ months"},
	{types.LabelInfo, "No action required; informational only", "-"},
}

// WriteNarrative renders the markdown report. Section order is fixed:
// executive summary, top priorities, per-finding detail, risk distribution,
// PQC recommendations, compliance mapping, then the optional dashboard, AI
// analysis, and SHAP sections. Findings are written one at a time.
func WriteNarrative(w io.Writer, snap session.Snapshot, table *risk.Table, opts Options) error {
	agg := snap.Aggregate

	fmt.Fprintf(w, "# Quantum-Resistant Transition Analysis\n\n")
	fmt.Fprintf(w, "Scan ID: %s  \n", snap.ScanID)
	fmt.Fprintf(w, "Generated: %s  \n", snap.CompletedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Files scanned: %d  \n\n", snap.FilesScanned)

	fmt.Fprintf(w, "## Executive Summary\n\n")
	fmt.Fprintf(w, "The scan surfaced %d cryptographic usages", agg.TotalFindings)
	if agg.TotalFindings > 0 {
		matched := agg.TotalFindings - agg.RiskDistribution[types.BucketUnmatched]
		fmt.Fprintf(w, ", %d of which matched the risk model table", matched)
		fmt.Fprintf(w, ". %d are Critical and %d High; the average risk score over matched findings is %.1f/10",
			agg.RiskDistribution[string(types.LabelCritical)],
			agg.RiskDistribution[string(types.LabelHigh)],
			agg.AverageRiskScore)
	}
	fmt.Fprintf(w, ".\n\n")

	fmt.Fprintf(w, "## Top Priorities\n\n")
	if len(agg.TopPriorities) == 0 {
		fmt.Fprintf(w, "No matched findings.\n\n")
	} else {
		tw := tablewriter.NewWriter(w)
		tw.Header([]string{"Rank", "Location", "Algorithm", "Score", "Label", "Recommended PQC", "Timeline"})
		for i, f := range agg.TopPriorities {
			tw.Append([]string{
				fmt.Sprintf("%d", i+1),
				fmt.Sprintf("%s:%d", f.Path, f.Line),
				describeAlgorithm(f.Finding),
				fmt.Sprintf("%.1f", f.Record.Assessment.RiskScore),
				string(f.Record.Assessment.MLRiskLabel),
				f.Record.Recommendation.RecommendedPQC,
				f.Record.Migration.Timeline,
			})
		}
		tw.Render()
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "## Findings\n\n")
	if len(snap.Findings) == 0 {
		fmt.Fprintf(w, "None.\n\n")
	}
	for i := range snap.Findings {
		writeFindingDetail(w, i+1, snap.Findings[i], opts)
	}

	fmt.Fprintf(w, "## Risk Distribution\n\n")
	writeCountTable(w, agg.RiskDistribution, "Label")

	fmt.Fprintf(w, "## PQC Recommendations\n\n")
	writeCountTable(w, agg.PQCRecommendations, "Recommended PQC")

	fmt.Fprintf(w, "## Compliance Mapping\n\n")
	tw := tablewriter.NewWriter(w)
	tw.Header([]string{"Label", "Findings", "Guidance", "Window"})
	for _, row := range complianceRows {
		tw.Append([]string{
			string(row.label),
			fmt.Sprintf("%d", agg.RiskDistribution[string(row.label)]),
			row.guidance,
			row.window,
		})
	}
	tw.Render()
	fmt.Fprintln(w)

	if opts.IncludeDashboard {
		writeAssetSection(w, "Dashboards", dashboardPlots, table)
	}
	if opts.IncludeAIAnalysis {
		writeModelSection(w, table)
	}
	if opts.IncludeSHAPPlots {
		writeAssetSection(w, "Model Explainability (SHAP)", shapPlots, table)
	}
	return nil
}

func describeAlgorithm(f types.Finding) string {
	if f.KeySize > 0 {
		return fmt.Sprintf("%s-%d", f.Algorithm, f.KeySize)
	}
	return string(f.Algorithm)
}

func writeFindingDetail(w io.Writer, n int, f types.EnrichedFinding, opts Options) {
	fmt.Fprintf(w, "### Finding %d: %s\n\n", n, describeAlgorithm(f.Finding))
	fmt.Fprintf(w, "- File: `%s:%d`\n", f.Path, f.Line)
	if f.Module != "" {
		fmt.Fprintf(w, "- Module: %s\n", f.Module)
	}
	if f.Mode != "" {
		fmt.Fprintf(w, "- Mode: %s\n", f.Mode)
	}
	if f.Record == nil {
		fmt.Fprintf(w, "- Risk: unmatched (no table entry for this configuration)\n")
	} else {
		fmt.Fprintf(w, "- Risk: %.1f/10 (%s, %s)\n",
			f.Record.Assessment.RiskScore, f.Record.Assessment.MLRiskLabel, confidenceName(f.Confidence))
		fmt.Fprintf(w, "- Recommended PQC: %s (%s)\n",
			f.Record.Recommendation.RecommendedPQC, f.Record.Migration.Timeline)
		if opts.IncludeAIAnalysis && len(f.Record.Explainability) > 0 {
			fmt.Fprintf(w, "- Feature weights: %s\n", formatWeights(f.Record.Explainability))
		}
	}
	if f.Snippet != "" {
		fmt.Fprintf(w, "\n    %s\n", f.Snippet)
	}
	fmt.Fprintln(w)
}

func confidenceName(c types.MatchConfidence) string {
	switch c {
	case types.MatchExact:
		return "exact match"
	case types.MatchKeySizeRelaxed:
		return "nearest key size"
	case types.MatchAlgorithmOnly:
		return "algorithm-level match"
	default:
		return "unmatched"
	}
}

func formatWeights(weights map[string]float64) string {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%.2f", k, weights[k])
	}
	return out
}

func writeCountTable(w io.Writer, counts map[string]int, keyHeader string) {
	if len(counts) == 0 {
		fmt.Fprintf(w, "None.\n\n")
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tw := tablewriter.NewWriter(w)
	tw.Header([]string{keyHeader, "Count"})
	for _, k := range keys {
		tw.Append([]string{k, fmt.Sprintf("%d", counts[k])})
	}
	tw.Render()
	fmt.Fprintln(w)
}

// writeAssetSection references pre-rendered plot files. A missing asset is a
// soft failure: the reference is replaced with a note.
func writeAssetSection(w io.Writer, title string, names []string, table *risk.Table) {
	fmt.Fprintf(w, "## %s\n\n", title)
	for _, name := range names {
		if table != nil && table.HasPlot(name) {
			fmt.Fprintf(w, "![%s](%s)\n", name, name)
		} else {
			fmt.Fprintf(w, "_%s omitted: asset not available._\n", name)
		}
	}
	fmt.Fprintln(w)
}

func writeModelSection(w io.Writer, table *risk.Table) {
	fmt.Fprintf(w, "## Model Analysis\n\n")
	if table == nil {
		fmt.Fprintf(w, "_Risk model metadata not available._\n\n")
		return
	}
	meta := table.Metadata()
	if meta.ModelAccuracy > 0 {
		fmt.Fprintf(w, "Model accuracy: %.1f%%  \n", meta.ModelAccuracy*100)
	}
	if meta.ModelVersion != "" {
		fmt.Fprintf(w, "Model version: %s  \n", meta.ModelVersion)
	}
	feats := table.Features()
	if len(feats) > 0 {
		fmt.Fprintln(w)
		tw := tablewriter.NewWriter(w)
		tw.Header([]string{"Feature", "Mean |SHAP|"})
		for _, f := range feats {
			tw.Append([]string{f.Feature, fmt.Sprintf("%.4f", f.MeanAbsSHAP)})
		}
		tw.Render()
	}
	fmt.Fprintln(w)
}
