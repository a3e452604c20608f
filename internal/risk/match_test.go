package risk

import (
	"testing"

	"github.com/pqradar/pqradar/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(algo types.Algorithm, bits int, system types.SystemType, score float64, label types.RiskLabel) types.RiskRecord {
	return types.RiskRecord{
		ID:             string(algo) + "-test",
		PriorityRank:   1,
		Config:         types.CryptoConfig{Algorithm: algo, KeySize: bits, SystemType: system},
		Assessment:     types.RiskAssessment{RiskScore: score, MLRiskLabel: label, QuantumVulnerable: true},
		Recommendation: types.Recommendation{RecommendedPQC: "CRYSTALS-Kyber"},
		Migration:      types.Migration{Timeline: "0-3 months"},
	}
}

func tableOf(t *testing.T, records ...types.RiskRecord) *Table {
	t.Helper()
	tbl, err := buildTable(records)
	require.NoError(t, err)
	return tbl
}

func TestMatchExactPair(t *testing.T) {
	tbl := tableOf(t, record(types.AlgoRSA, 2048, "", 8.5, types.LabelCritical))
	r, conf := tbl.Match(types.Finding{Algorithm: types.AlgoRSA, KeySize: 2048})
	require.NotNil(t, r)
	assert.Equal(t, types.MatchExact, conf)
	assert.Equal(t, 2048, r.Config.KeySize)
}

func TestMatchSystemTypeTier(t *testing.T) {
	web := record(types.AlgoRSA, 2048, types.SystemWeb, 9.0, types.LabelCritical)
	db := record(types.AlgoRSA, 2048, types.SystemDatabase, 7.0, types.LabelHigh)
	tbl := tableOf(t, web, db)

	r, conf := tbl.Match(types.Finding{
		Algorithm: types.AlgoRSA,
		KeySize:   2048,
		Path:      "internal/web/server.go",
	})
	require.NotNil(t, r)
	assert.Equal(t, types.MatchExact, conf)
	assert.Equal(t, types.SystemWeb, r.Config.SystemType)
}

func TestMatchNearestFavorsLargerKeySize(t *testing.T) {
	tbl := tableOf(t,
		record(types.AlgoRSA, 1024, "", 9.5, types.LabelCritical),
		record(types.AlgoRSA, 2048, "", 8.5, types.LabelCritical),
		record(types.AlgoRSA, 4096, "", 6.0, types.LabelHigh),
	)
	r, conf := tbl.Match(types.Finding{Algorithm: types.AlgoRSA, KeySize: 3072})
	require.NotNil(t, r)
	assert.Equal(t, types.MatchKeySizeRelaxed, conf)
	assert.Equal(t, 4096, r.Config.KeySize)
}

func TestMatchNearestOutOfRange(t *testing.T) {
	tbl := tableOf(t,
		record(types.AlgoRSA, 1024, "", 9.5, types.LabelCritical),
		record(types.AlgoRSA, 2048, "", 8.5, types.LabelCritical),
	)
	r, conf := tbl.Match(types.Finding{Algorithm: types.AlgoRSA, KeySize: 512})
	require.NotNil(t, r)
	assert.Equal(t, types.MatchKeySizeRelaxed, conf)
	assert.Equal(t, 1024, r.Config.KeySize)

	r, conf = tbl.Match(types.Finding{Algorithm: types.AlgoRSA, KeySize: 8192})
	require.NotNil(t, r)
	assert.Equal(t, types.MatchKeySizeRelaxed, conf)
	assert.Equal(t, 2048, r.Config.KeySize)
}

func TestMatchAlgorithmOnly(t *testing.T) {
	tbl := tableOf(t,
		record(types.AlgoSHA1, 160, "", 7.5, types.LabelHigh),
		record(types.AlgoSHA1, 160, types.SystemWeb, 8.0, types.LabelHigh),
	)
	r, conf := tbl.Match(types.Finding{Algorithm: types.AlgoSHA1})
	require.NotNil(t, r)
	assert.Equal(t, types.MatchAlgorithmOnly, conf)
	assert.InDelta(t, 8.0, r.Assessment.RiskScore, 1e-9)
}

func TestMatchUnmatched(t *testing.T) {
	tbl := tableOf(t, record(types.AlgoRSA, 2048, "", 8.5, types.LabelCritical))
	r, conf := tbl.Match(types.Finding{Algorithm: types.AlgoMD5})
	assert.Nil(t, r)
	assert.Equal(t, types.MatchNone, conf)
}

func TestEnrichPreservesOrderAndInvariant(t *testing.T) {
	tbl := tableOf(t, record(types.AlgoRSA, 2048, "", 8.5, types.LabelCritical))
	findings := []types.Finding{
		{Algorithm: types.AlgoMD5, Path: "a.py", Line: 1},
		{Algorithm: types.AlgoRSA, KeySize: 2048, Path: "b.py", Line: 2},
	}
	enriched := tbl.Enrich(findings)
	require.Len(t, enriched, 2)
	for _, e := range enriched {
		// confidence 3 iff no record
		assert.Equal(t, e.Record == nil, e.Confidence == types.MatchNone)
	}
	assert.Equal(t, "a.py", enriched[0].Path)
	assert.Equal(t, "b.py", enriched[1].Path)
}

func TestInferSystemType(t *testing.T) {
	assert.Equal(t, types.SystemWeb, InferSystemType("internal/web/server.go", ""))
	assert.Equal(t, types.SystemDatabase, InferSystemType("app/repository/users.py", ""))
	assert.Equal(t, types.SystemEmbedded, InferSystemType("firmware/boot.c", ""))
	assert.Equal(t, types.SystemUnspecified, InferSystemType("misc/notes.txt", "x = 1"))
}
