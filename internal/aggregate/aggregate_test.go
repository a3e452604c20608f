package aggregate

import (
	"encoding/json"
	"testing"

	"github.com/pqradar/pqradar/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enriched(algo types.Algorithm, path string, line int, score float64, label types.RiskLabel, pqc, timeline string) types.EnrichedFinding {
	return types.EnrichedFinding{
		Finding: types.Finding{Path: path, Line: line, Algorithm: algo},
		Record: &types.RiskRecord{
			Config:         types.CryptoConfig{Algorithm: algo},
			Assessment:     types.RiskAssessment{RiskScore: score, MLRiskLabel: label},
			Recommendation: types.Recommendation{RecommendedPQC: pqc},
			Migration:      types.Migration{Timeline: timeline},
		},
		Confidence: types.MatchExact,
	}
}

func unmatched(algo types.Algorithm, path string, line int) types.EnrichedFinding {
	return types.EnrichedFinding{
		Finding:    types.Finding{Path: path, Line: line, Algorithm: algo},
		Confidence: types.MatchNone,
	}
}

func TestComputeDistributionSumsToTotal(t *testing.T) {
	findings := []types.EnrichedFinding{
		enriched(types.AlgoRSA, "a.py", 1, 8.5, types.LabelCritical, "CRYSTALS-Kyber", "0-3 months"),
		enriched(types.AlgoECC, "b.py", 2, 7.0, types.LabelHigh, "CRYSTALS-Dilithium", "3-6 months"),
		unmatched(types.AlgoMD5, "c.py", 3),
	}
	agg := Compute(findings, 0)

	assert.Equal(t, 3, agg.TotalFindings)
	sum := 0
	for _, n := range agg.RiskDistribution {
		sum += n
	}
	assert.Equal(t, agg.TotalFindings, sum)
	assert.Equal(t, 1, agg.RiskDistribution[types.BucketUnmatched])
	assert.Equal(t, 1, agg.RiskDistribution["Critical"])
}

func TestComputeAverageExcludesUnmatched(t *testing.T) {
	findings := []types.EnrichedFinding{
		enriched(types.AlgoRSA, "a.py", 1, 8.0, types.LabelCritical, "k", "t"),
		enriched(types.AlgoRSA, "a.py", 2, 6.0, types.LabelHigh, "k", "t"),
		unmatched(types.AlgoMD5, "c.py", 3),
	}
	agg := Compute(findings, 0)
	assert.InDelta(t, 7.0, agg.AverageRiskScore, 1e-9)
}

func TestComputeEmpty(t *testing.T) {
	agg := Compute(nil, 0)
	assert.Zero(t, agg.TotalFindings)
	assert.Empty(t, agg.RiskDistribution)
	assert.Empty(t, agg.TopPriorities)
	assert.Zero(t, agg.AverageRiskScore)
}

func TestComputeTopPrioritiesOrderAndLimit(t *testing.T) {
	findings := []types.EnrichedFinding{
		enriched(types.AlgoRSA, "z.py", 9, 7.0, types.LabelHigh, "k", "t"),
		enriched(types.AlgoRSA, "a.py", 1, 9.0, types.LabelCritical, "k", "t"),
		enriched(types.AlgoDH, "m.py", 5, 9.0, types.LabelCritical, "k", "t"),
		enriched(types.AlgoRSA, "a.py", 3, 9.0, types.LabelCritical, "k", "t"),
	}
	agg := Compute(findings, 3)
	require.Len(t, agg.TopPriorities, 3)
	// score desc, then algorithm, then path, then line
	assert.Equal(t, types.AlgoDH, agg.TopPriorities[0].Algorithm)
	assert.Equal(t, 1, agg.TopPriorities[1].Line)
	assert.Equal(t, 3, agg.TopPriorities[2].Line)
}

func TestComputeOrderIndependentAndIdempotent(t *testing.T) {
	a := []types.EnrichedFinding{
		enriched(types.AlgoRSA, "a.py", 1, 8.0, types.LabelCritical, "k", "t1"),
		enriched(types.AlgoECC, "b.py", 2, 6.0, types.LabelHigh, "d", "t2"),
		unmatched(types.AlgoMD5, "c.py", 3),
	}
	b := []types.EnrichedFinding{a[2], a[0], a[1]}

	aggA := Compute(a, 5)
	aggB := Compute(b, 5)
	jsonA, err := json.Marshal(aggA)
	require.NoError(t, err)
	jsonB, err := json.Marshal(aggB)
	require.NoError(t, err)
	assert.Equal(t, jsonA, jsonB)

	again, err := json.Marshal(Compute(a, 5))
	require.NoError(t, err)
	assert.Equal(t, jsonA, again)
}
