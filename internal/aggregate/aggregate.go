// Package aggregate reduces enriched findings into per-scan summary
// statistics. Compute is pure: recomputation is idempotent and independent of
// finding order.
package aggregate

import (
	"sort"

	"github.com/pqradar/pqradar/internal/types"
)

// DefaultTopLimit bounds top_priorities when the caller does not say.
const DefaultTopLimit = 10

// Compute reduces findings into an Aggregate. Unmatched findings count toward
// total_findings and the Unmatched bucket but are excluded from the average
// risk score and the frequency tables.
func Compute(findings []types.EnrichedFinding, topLimit int) types.Aggregate {
	if topLimit <= 0 {
		topLimit = DefaultTopLimit
	}
	agg := types.Aggregate{
		TotalFindings:         len(findings),
		RiskDistribution:      map[string]int{},
		AlgorithmDistribution: map[string]int{},
		PQCRecommendations:    map[string]int{},
		MigrationTimelines:    map[string]int{},
	}

	var matched []types.EnrichedFinding
	var scoreSum float64
	for _, f := range findings {
		agg.AlgorithmDistribution[string(f.Algorithm)]++
		if f.Record == nil {
			agg.RiskDistribution[types.BucketUnmatched]++
			continue
		}
		agg.RiskDistribution[string(f.Record.Assessment.MLRiskLabel)]++
		agg.PQCRecommendations[f.Record.Recommendation.RecommendedPQC]++
		agg.MigrationTimelines[f.Record.Migration.Timeline]++
		scoreSum += f.Record.Assessment.RiskScore
		matched = append(matched, f)
	}
	if len(matched) > 0 {
		agg.AverageRiskScore = scoreSum / float64(len(matched))
	}

	// Total order so that input order never shows through.
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Record.Assessment.RiskScore != b.Record.Assessment.RiskScore {
			return a.Record.Assessment.RiskScore > b.Record.Assessment.RiskScore
		}
		if a.Algorithm != b.Algorithm {
			return a.Algorithm < b.Algorithm
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Line < b.Line
	})
	if len(matched) > topLimit {
		matched = matched[:topLimit]
	}
	agg.TopPriorities = matched
	return agg
}
