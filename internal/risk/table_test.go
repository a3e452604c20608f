package risk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pqradar/pqradar/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecords = `{
  "metadata": {"model_accuracy": 0.94, "model_version": "v3"},
  "vulnerabilities": [
    {
      "id": "VULN-001",
      "priority_rank": 1,
      "priority_score": 97.2,
      "current_config": {"algorithm": "RSA", "key_size": 1024, "system_type": "web_service"},
      "risk_assessment": {"risk_score": 9.6, "ml_risk_label": "Critical", "ml_confidence": 0.98, "quantum_vulnerable": true},
      "recommendation": {"recommended_pqc": "CRYSTALS-Kyber"},
      "migration": {"timeline": "0-3 months", "complexity": "high", "estimated_effort_days": 45},
      "explainability": {"key_size": 0.41, "algorithm": 0.33}
    },
    {
      "id": "VULN-002",
      "priority_rank": 2,
      "current_config": {"algorithm": "RSA", "key_size": 2048},
      "risk_assessment": {"risk_score": 8.5, "ml_risk_label": "Critical", "quantum_vulnerable": true},
      "recommendation": {"recommended_pqc": "CRYSTALS-Kyber"},
      "migration": {"timeline": "3-6 months"}
    },
    {
      "id": "VULN-003",
      "priority_rank": 3,
      "current_config": {"algorithm": "ECC", "key_size": 256},
      "risk_assessment": {"risk_score": 7.9, "ml_risk_label": "High", "quantum_vulnerable": true},
      "recommendation": {"recommended_pqc": "CRYSTALS-Dilithium"},
      "migration": {"timeline": "6-12 months"}
    }
  ]
}`

func TestLoadBuildsIndexes(t *testing.T) {
	tbl, err := Load([]byte(sampleRecords))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.NotEmpty(t, tbl.Fingerprint())
	assert.InDelta(t, 0.94, tbl.Metadata().ModelAccuracy, 1e-9)

	r, conf := tbl.Match(types.Finding{Algorithm: types.AlgoRSA, KeySize: 2048})
	require.NotNil(t, r)
	assert.Equal(t, "VULN-002", r.ID)
	assert.Equal(t, types.MatchExact, conf)
}

func TestLoadFingerprintIsStable(t *testing.T) {
	a, err := Load([]byte(sampleRecords))
	require.NoError(t, err)
	b, err := Load([]byte(sampleRecords))
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestLoadRejectsEmptyAndMalformed(t *testing.T) {
	_, err := Load([]byte(`{"vulnerabilities": []}`))
	assert.Error(t, err)
	_, err = Load([]byte(`{not json`))
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RecordsFile), []byte(sampleRecords), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FeaturesFile),
		[]byte("feature,mean_abs_shap\nkey_size,0.41\nalgorithm,0.33\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pqc_dashboard.png"), []byte{0x89, 'P', 'N', 'G'}, 0o644))

	tbl, err := LoadDir(dir)
	require.NoError(t, err)

	feats := tbl.Features()
	require.Len(t, feats, 2)
	assert.Equal(t, "key_size", feats[0].Feature)

	assert.True(t, tbl.HasPlot("pqc_dashboard.png"))
	assert.False(t, tbl.HasPlot("missing.png"))
}

func TestLoadDirMissingRecordsIsFatal(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	assert.Error(t, err)
}

func TestTopPrioritiesAndStats(t *testing.T) {
	tbl, err := Load([]byte(sampleRecords))
	require.NoError(t, err)

	top := tbl.TopPriorities(2)
	require.Len(t, top, 2)
	assert.Equal(t, "VULN-001", top[0].ID)
	assert.Equal(t, "VULN-002", top[1].ID)

	stats := tbl.Stats()
	assert.Equal(t, 3, stats.TotalRecords)
	assert.Equal(t, 2, stats.RiskDistribution["Critical"])
	assert.Equal(t, 2, stats.AlgorithmDistribution["RSA"])
	assert.Equal(t, 2, stats.PQCRecommendations["CRYSTALS-Kyber"])

	crit := tbl.ByLabel(types.LabelCritical)
	assert.Len(t, crit, 2)

	critTop := tbl.TopByLabel(types.LabelCritical, 1)
	require.Len(t, critTop, 1)
	assert.Equal(t, "VULN-001", critTop[0].ID)
	assert.Empty(t, tbl.TopByLabel(types.LabelLow, 5))
}
