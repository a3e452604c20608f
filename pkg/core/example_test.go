package core_test

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pqradar/pqradar/pkg/core"
)

// ExampleScan demonstrates how to scan a directory against a risk table.
func ExampleScan() {
	// 1. Load the risk-scoring dataset produced by the offline model run
	table, err := core.LoadRiskTable("./model")
	if err != nil {
		fmt.Fprintf(os.Stderr, "risk table: %v\n", err)
		return
	}

	// 2. Configure and run the scan: the current directory, four workers,
	// Python files only, skipping files over 1MB, with a 30s budget.
	cfg := core.Config{
		Root:         ".",
		Threads:      4,
		IncludeGlobs: "**/*.py",
		MaxBytes:     1024 * 1024,
		Timeout:      30 * time.Second,
	}
	snap, err := core.Scan(context.Background(), table, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		return
	}

	// 3. Process findings
	if len(snap.Findings) == 0 {
		fmt.Println("No quantum-vulnerable cryptography found.")
	} else {
		fmt.Printf("Found %d vulnerable usages.\n", len(snap.Findings))
		_ = core.MarshalFindings(os.Stdout, snap.Findings)
	}
}
