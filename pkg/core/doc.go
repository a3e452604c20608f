// Package core provides a small, stable facade over pqradar's internal
// pipeline for external integrations. It deliberately re-exports a narrow API
// surface so other tools can depend on a stable import path without reaching
// into internal implementation packages.
//
// Example:
//
//	table, err := core.LoadRiskTable("./model")
//	if err != nil { /* handle */ }
//	snap, err := core.Scan(context.Background(), table, core.Config{Root: "."})
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, snap.Findings)
package core
