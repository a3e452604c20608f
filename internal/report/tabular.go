package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pqradar/pqradar/internal/session"
)

// TabularSchemaVersion tags the CSV column contract. Column order is a
// compatibility promise: append, never reorder.
const TabularSchemaVersion = "1"

var tabularColumns = []string{
	"file_path",
	"line_number",
	"algorithm",
	"key_size",
	"mode",
	"module",
	"match_confidence",
	"risk_score",
	"ml_risk_label",
	"recommended_pqc",
	"migration_timeline",
	"code_snippet",
}

const tabularSnippetLimit = 100

// WriteTabular streams the session's findings as CSV, one row per enriched
// finding under the fixed schema.
func WriteTabular(w io.Writer, snap session.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tabularColumns); err != nil {
		return err
	}
	for _, f := range snap.Findings {
		row := []string{
			f.Path,
			strconv.Itoa(f.Line),
			string(f.Algorithm),
			naIfZero(f.KeySize),
			f.Mode,
			f.Module,
			strconv.Itoa(int(f.Confidence)),
			"N/A", "N/A", "N/A", "N/A",
			truncate(f.Snippet, tabularSnippetLimit),
		}
		if f.Record != nil {
			row[7] = fmt.Sprintf("%.2f", f.Record.Assessment.RiskScore)
			row[8] = string(f.Record.Assessment.MLRiskLabel)
			row[9] = f.Record.Recommendation.RecommendedPQC
			row[10] = f.Record.Migration.Timeline
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func naIfZero(n int) string {
	if n == 0 {
		return "N/A"
	}
	return strconv.Itoa(n)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
