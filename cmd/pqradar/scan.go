package pqradar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pqradar/pqradar/internal/aggregate"
	"github.com/pqradar/pqradar/internal/engine"
	"github.com/pqradar/pqradar/internal/session"
	"github.com/pqradar/pqradar/internal/types"
)

var (
	flagPath     string
	flagInclude  string
	flagExclude  string
	flagMaxBytes int64
	flagMaxFiles int
	flagTimeout  time.Duration
	flagTop      int
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a source tree for quantum-vulnerable cryptography",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().IntVar(&flagMaxFiles, "max-files", 0, "abort past this many candidate files (0=unlimited)")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "fail the scan past this budget (e.g. 30s)")
	cmd.Flags().IntVar(&flagTop, "top", aggregate.DefaultTopLimit, "number of top priorities in the summary")
}

func runScan(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	// Load configs: CLI > local > global
	lcfg, gcfg := loadConfigs(abs)

	table, err := loadTable(lcfg, gcfg)
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Root:            abs,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		MaxFiles:        pickInt(flagMaxFiles, lcfg.MaxFiles, gcfg.MaxFiles),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		Timeout:         parseTimeout(flagTimeout, lcfg.Timeout, gcfg.Timeout),
		DefaultExcludes: flagDefaultExcludes,
	}
	top := pickInt(flagTop, lcfg.Top, gcfg.Top)
	if top <= 0 {
		top = aggregate.DefaultTopLimit
	}

	if !flagJSON {
		fmt.Fprintf(os.Stderr, "Scanning %s against %d risk records...\n", abs, table.Len())
	}

	store := session.NewStore(table)
	snap, err := store.Run(context.Background(), store.Create().ScanID, cfg, top)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	if snap.Status == session.StatusFailed {
		printFailure(snap)
		os.Exit(1)
	}
	printSummary(snap)
	if snap.Aggregate != nil && snap.Aggregate.RiskDistribution[string(types.LabelCritical)] > 0 {
		os.Exit(1)
	}
	return nil
}

func printFailure(snap session.Snapshot) {
	fmt.Fprintf(os.Stderr, "scan %s failed (%s): %s\n", snap.ScanID, snap.ErrorKind, snap.ErrorMessage)
	if len(snap.Findings) > 0 {
		fmt.Fprintf(os.Stderr, "partial results: %d findings before failure\n", len(snap.Findings))
	}
}

func printSummary(snap session.Snapshot) {
	fmt.Printf("Scan %s: %d files, %d findings\n", snap.ScanID, snap.FilesScanned, len(snap.Findings))
	if len(snap.SkippedFiles) > 0 {
		fmt.Printf("Skipped %d files\n", len(snap.SkippedFiles))
	}
	if len(snap.Findings) == 0 {
		fmt.Println("No quantum-vulnerable cryptography found.")
		return
	}

	tw := tablewriter.NewWriter(os.Stdout)
	tw.Header([]string{"Location", "Algorithm", "Key", "Score", "Label", "Recommended PQC", "Timeline"})
	for _, f := range snap.Findings {
		loc := fmt.Sprintf("%s:%d", f.Path, f.Line)
		score, label, pqc, timeline := "N/A", types.BucketUnmatched, "N/A", "N/A"
		if f.Record != nil {
			score = fmt.Sprintf("%.1f", f.Record.Assessment.RiskScore)
			label = string(f.Record.Assessment.MLRiskLabel)
			pqc = f.Record.Recommendation.RecommendedPQC
			timeline = f.Record.Migration.Timeline
		}
		key := "N/A"
		if f.KeySize > 0 {
			key = fmt.Sprintf("%d", f.KeySize)
		}
		tw.Append([]string{loc, string(f.Algorithm), key, score, label, pqc, timeline})
	}
	tw.Render()

	if agg := snap.Aggregate; agg != nil {
		fmt.Printf("\nRisk distribution: %v\n", agg.RiskDistribution)
		if agg.AverageRiskScore > 0 {
			fmt.Printf("Average risk score: %.2f\n", agg.AverageRiskScore)
		}
	}
}
