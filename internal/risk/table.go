package risk

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/pqradar/pqradar/internal/types"
)

// File names of the static ML output datasets, as produced by the offline
// training pipeline.
const (
	RecordsFile  = "risk_output.json"
	FeaturesFile = "shap_feature_importance.csv"
)

// Table is the immutable, indexed risk-scoring dataset. It is built once at
// startup and safe for unbounded concurrent readers afterward.
type Table struct {
	records  []types.RiskRecord
	metadata Metadata
	features []FeatureImportance
	plots    []string

	byExact     map[exactKey]*types.RiskRecord
	byPair      map[pairKey]*types.RiskRecord
	byAlgo      map[types.Algorithm][]*types.RiskRecord
	sizes       map[types.Algorithm][]int
	fingerprint string
}

type exactKey struct {
	algo   types.Algorithm
	bits   int
	system types.SystemType
}

type pairKey struct {
	algo types.Algorithm
	bits int
}

// Metadata describes the model run that produced the table.
type Metadata struct {
	ModelAccuracy float64 `json:"model_accuracy,omitempty"`
	GeneratedAt   string  `json:"generated_at,omitempty"`
	ModelVersion  string  `json:"model_version,omitempty"`
}

// FeatureImportance is one row of the SHAP feature-importance dataset.
type FeatureImportance struct {
	Feature     string  `json:"feature"`
	MeanAbsSHAP float64 `json:"mean_abs_shap"`
}

type recordsDoc struct {
	Metadata        Metadata           `json:"metadata"`
	Vulnerabilities []types.RiskRecord `json:"vulnerabilities"`
}

// LoadDir loads the risk table from a directory holding risk_output.json
// plus, optionally, shap_feature_importance.csv and pre-rendered plot images.
// A missing or malformed records file is fatal; a missing features file is
// not.
func LoadDir(dir string) (*Table, error) {
	recPath := filepath.Join(dir, RecordsFile)
	b, err := os.ReadFile(recPath)
	if err != nil {
		return nil, fmt.Errorf("risk table unavailable at %s: %w", recPath, err)
	}
	t, err := Load(b)
	if err != nil {
		return nil, fmt.Errorf("risk table %s: %w", recPath, err)
	}
	if fb, err := os.ReadFile(filepath.Join(dir, FeaturesFile)); err == nil {
		feats, err := parseFeatures(fb)
		if err != nil {
			return nil, fmt.Errorf("feature importance %s: %w", FeaturesFile, err)
		}
		t.features = feats
	}
	t.plots = discoverPlots(dir)
	return t, nil
}

// Load builds a table from raw risk_output.json bytes.
func Load(b []byte) (*Table, error) {
	var doc recordsDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	t, err := buildTable(doc.Vulnerabilities)
	if err != nil {
		return nil, err
	}
	t.metadata = doc.Metadata
	t.fingerprint = fingerprint(b)
	return t, nil
}

// buildTable indexes a record set: an exact hash index per (algorithm, key
// size, system type) and (algorithm, key size), plus per-algorithm sorted key
// sizes for the nearest-size fallback.
func buildTable(records []types.RiskRecord) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no risk records in dataset")
	}
	t := &Table{
		records: records,
		byExact: map[exactKey]*types.RiskRecord{},
		byPair:  map[pairKey]*types.RiskRecord{},
		byAlgo:  map[types.Algorithm][]*types.RiskRecord{},
		sizes:   map[types.Algorithm][]int{},
	}
	for i := range t.records {
		r := &t.records[i]
		cfg := r.Config
		if cfg.SystemType != "" && cfg.SystemType != types.SystemUnspecified {
			k := exactKey{cfg.Algorithm, cfg.KeySize, cfg.SystemType}
			if _, dup := t.byExact[k]; !dup {
				t.byExact[k] = r
			}
		}
		pk := pairKey{cfg.Algorithm, cfg.KeySize}
		if prev, dup := t.byPair[pk]; !dup || r.Assessment.RiskScore > prev.Assessment.RiskScore {
			t.byPair[pk] = r
		}
		t.byAlgo[cfg.Algorithm] = append(t.byAlgo[cfg.Algorithm], r)
	}
	for algo := range t.byAlgo {
		seen := map[int]bool{}
		for _, r := range t.byAlgo[algo] {
			if !seen[r.Config.KeySize] {
				seen[r.Config.KeySize] = true
				t.sizes[algo] = append(t.sizes[algo], r.Config.KeySize)
			}
		}
		sort.Ints(t.sizes[algo])
	}
	return t, nil
}

func parseFeatures(b []byte) ([]FeatureImportance, error) {
	rd := csv.NewReader(strings.NewReader(string(b)))
	header, err := rd.Read()
	if err != nil {
		return nil, err
	}
	featIdx, shapIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "feature":
			featIdx = i
		case "mean_abs_shap":
			shapIdx = i
		}
	}
	if featIdx < 0 || shapIdx < 0 {
		return nil, fmt.Errorf("missing feature/mean_abs_shap columns")
	}
	var out []FeatureImportance
	for {
		row, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(row[shapIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", row[featIdx], err)
		}
		out = append(out, FeatureImportance{Feature: row[featIdx], MeanAbsSHAP: w})
	}
	return out, nil
}

func discoverPlots(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

func fingerprint(b []byte) string {
	sum := xxhash.Sum64(b)
	return fmt.Sprintf("%016x", sum)
}

// Fingerprint identifies the loaded table snapshot. Two processes loading the
// same dataset bytes report the same fingerprint.
func (t *Table) Fingerprint() string { return t.fingerprint }

// Metadata returns the model-run metadata embedded in the dataset.
func (t *Table) Metadata() Metadata { return t.metadata }

// Features returns the SHAP feature-importance rows, highest weight first.
func (t *Table) Features() []FeatureImportance {
	out := make([]FeatureImportance, len(t.features))
	copy(out, t.features)
	sort.SliceStable(out, func(i, j int) bool { return out[i].MeanAbsSHAP > out[j].MeanAbsSHAP })
	return out
}

// Plots lists the pre-rendered visualization assets found next to the table.
func (t *Table) Plots() []string {
	out := make([]string, len(t.plots))
	copy(out, t.plots)
	return out
}

// HasPlot reports whether the named visualization asset exists.
func (t *Table) HasPlot(name string) bool {
	for _, p := range t.plots {
		if p == name {
			return true
		}
	}
	return false
}

// Len returns the number of records in the table.
func (t *Table) Len() int { return len(t.records) }

// TopPriorities returns up to limit records ordered by priority rank.
func (t *Table) TopPriorities(limit int) []types.RiskRecord {
	out := make([]types.RiskRecord, len(t.records))
	copy(out, t.records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PriorityRank < out[j].PriorityRank })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ByLabel returns all records carrying the given risk label.
func (t *Table) ByLabel(label types.RiskLabel) []types.RiskRecord {
	var out []types.RiskRecord
	for _, r := range t.records {
		if r.Assessment.MLRiskLabel == label {
			out = append(out, r)
		}
	}
	return out
}

// TopByLabel returns up to limit records with the given label, ordered by
// priority rank.
func (t *Table) TopByLabel(label types.RiskLabel, limit int) []types.RiskRecord {
	out := t.ByLabel(label)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PriorityRank < out[j].PriorityRank })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Statistics summarizes the table itself (not a scan): counts per label,
// algorithm, PQC recommendation, and migration timeline.
type Statistics struct {
	TotalRecords          int            `json:"total_records"`
	RiskDistribution      map[string]int `json:"risk_distribution"`
	AlgorithmDistribution map[string]int `json:"algorithm_distribution"`
	PQCRecommendations    map[string]int `json:"pqc_recommendations"`
	MigrationTimelines    map[string]int `json:"migration_timelines"`
	ModelAccuracy         float64        `json:"model_accuracy"`
}

// Stats computes summary statistics over the full record set.
func (t *Table) Stats() Statistics {
	s := Statistics{
		TotalRecords:          len(t.records),
		RiskDistribution:      map[string]int{},
		AlgorithmDistribution: map[string]int{},
		PQCRecommendations:    map[string]int{},
		MigrationTimelines:    map[string]int{},
		ModelAccuracy:         t.metadata.ModelAccuracy,
	}
	for _, r := range t.records {
		s.RiskDistribution[string(r.Assessment.MLRiskLabel)]++
		s.AlgorithmDistribution[string(r.Config.Algorithm)]++
		s.PQCRecommendations[r.Recommendation.RecommendedPQC]++
		s.MigrationTimelines[r.Migration.Timeline]++
	}
	return s
}
