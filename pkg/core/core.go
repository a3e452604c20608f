package core

import (
	"context"

	"github.com/pqradar/pqradar/internal/aggregate"
	"github.com/pqradar/pqradar/internal/detectors"
	"github.com/pqradar/pqradar/internal/engine"
	"github.com/pqradar/pqradar/internal/risk"
	"github.com/pqradar/pqradar/internal/session"
	"github.com/pqradar/pqradar/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Finding = types.Finding
type EnrichedFinding = types.EnrichedFinding
type Aggregate = types.Aggregate
type RiskRecord = types.RiskRecord
type Snapshot = session.Snapshot
type Table = risk.Table

// LoadRiskTable loads the risk-scoring dataset from a directory containing
// risk_output.json and its optional companion files.
func LoadRiskTable(dir string) (*Table, error) {
	return risk.LoadDir(dir)
}

// Scan is the stable entrypoint for other programs: it runs the full
// scan, correlate, and aggregate pipeline against an already loaded table and
// returns the finished session snapshot.
func Scan(ctx context.Context, table *Table, cfg Config) (Snapshot, error) {
	store := session.NewStore(table)
	snap := store.Create()
	return store.Run(ctx, snap.ScanID, cfg, aggregate.DefaultTopLimit)
}

// Algorithms returns the list of quantum-vulnerable algorithms the scanner
// recognizes. This is exposed for convenience to avoid importing internals
// directly.
func Algorithms() []types.Algorithm { return detectors.Algorithms() }
