package pqradar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pqradar/pqradar/internal/aggregate"
	"github.com/pqradar/pqradar/internal/engine"
	"github.com/pqradar/pqradar/internal/report"
	"github.com/pqradar/pqradar/internal/session"
)

var (
	flagReportPath    string
	flagReportFormat  string
	flagReportOut     string
	flagReportPlots   bool
	flagReportTimeout time.Duration
)

func init() {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Scan a source tree and write a migration report",
		RunE:  runReport,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagReportPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVarP(&flagReportFormat, "format", "f", "narrative", "report format: narrative|tabular|structured (aliases: md, csv, json)")
	cmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "output file (default: report filename in the working directory)")
	cmd.Flags().BoolVar(&flagReportPlots, "plots", false, "reference dashboard and SHAP plot assets in the narrative report")
	cmd.Flags().DurationVar(&flagReportTimeout, "timeout", 0, "fail the scan past this budget (e.g. 30s)")
}

func runReport(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagReportPath)
	lcfg, gcfg := loadConfigs(abs)

	format, err := report.ParseFormat(resolveFormatName(
		cmd.Flags().Changed("format"), flagReportFormat, lcfg, gcfg))
	if err != nil {
		return err
	}
	table, err := loadTable(lcfg, gcfg)
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Root:            abs,
		IncludeGlobs:    pickString("", lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString("", lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(0, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		Timeout:         parseTimeout(flagReportTimeout, lcfg.Timeout, gcfg.Timeout),
		DefaultExcludes: flagDefaultExcludes,
	}

	store := session.NewStore(table)
	snap, err := store.Run(context.Background(), store.Create().ScanID, cfg, aggregate.DefaultTopLimit)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	art, err := report.Generate(snap, table, format, report.Options{
		IncludeAIAnalysis: flagReportPlots,
		IncludeSHAPPlots:  flagReportPlots,
		IncludeDashboard:  flagReportPlots,
	})
	if err != nil {
		return err
	}

	out := flagReportOut
	if out == "" {
		out = art.Filename
	}
	if out == "-" {
		_, err = os.Stdout.Write(art.Content)
		return err
	}
	if err := os.WriteFile(out, art.Content, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s report to %s (%d findings)\n", art.Format, out, len(snap.Findings))
	return nil
}
