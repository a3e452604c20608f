package pqradar

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pqradar/pqradar/internal/types"
)

var (
	flagRiskLimit int
	flagRiskLabel string
)

func init() {
	riskCmd := &cobra.Command{
		Use:   "risk",
		Short: "Inspect the loaded ML risk table",
	}
	rootCmd.AddCommand(riskCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the risk table",
		RunE:  runRiskStats,
	}
	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Show the highest-priority table records",
		RunE:  runRiskTop,
	}
	topCmd.Flags().IntVar(&flagRiskLimit, "limit", 10, "number of records to show")
	topCmd.Flags().StringVar(&flagRiskLabel, "label", "", "only records with this risk label (Critical|High|Medium|Low|Info)")
	featuresCmd := &cobra.Command{
		Use:   "features",
		Short: "Show model feature importance",
		RunE:  runRiskFeatures,
	}
	riskCmd.AddCommand(statsCmd, topCmd, featuresCmd)
}

func runRiskStats(_ *cobra.Command, _ []string) error {
	lcfg, gcfg := loadConfigs(".")
	table, err := loadTable(lcfg, gcfg)
	if err != nil {
		return err
	}
	stats := table.Stats()
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"fingerprint": table.Fingerprint(),
			"metadata":    table.Metadata(),
			"statistics":  stats,
		})
	}
	fmt.Printf("Risk table %s: %d records\n", table.Fingerprint(), stats.TotalRecords)
	if stats.ModelAccuracy > 0 {
		fmt.Printf("Model accuracy: %.4f\n", stats.ModelAccuracy)
	}
	fmt.Printf("Risk distribution: %v\n", stats.RiskDistribution)
	fmt.Printf("Algorithms: %v\n", stats.AlgorithmDistribution)
	fmt.Printf("PQC recommendations: %v\n", stats.PQCRecommendations)
	fmt.Printf("Migration timelines: %v\n", stats.MigrationTimelines)
	return nil
}

func runRiskTop(_ *cobra.Command, _ []string) error {
	lcfg, gcfg := loadConfigs(".")
	table, err := loadTable(lcfg, gcfg)
	if err != nil {
		return err
	}
	var records []types.RiskRecord
	if flagRiskLabel != "" {
		records = table.TopByLabel(types.RiskLabel(flagRiskLabel), flagRiskLimit)
	} else {
		records = table.TopPriorities(flagRiskLimit)
	}
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	tw := tablewriter.NewWriter(os.Stdout)
	tw.Header([]string{"Rank", "ID", "Algorithm", "Key", "Score", "Label", "Recommended PQC", "Timeline"})
	for _, r := range records {
		tw.Append([]string{
			fmt.Sprintf("%d", r.PriorityRank),
			r.ID,
			string(r.Config.Algorithm),
			fmt.Sprintf("%d", r.Config.KeySize),
			fmt.Sprintf("%.1f", r.Assessment.RiskScore),
			string(r.Assessment.MLRiskLabel),
			r.Recommendation.RecommendedPQC,
			r.Migration.Timeline,
		})
	}
	tw.Render()
	return nil
}

func runRiskFeatures(_ *cobra.Command, _ []string) error {
	lcfg, gcfg := loadConfigs(".")
	table, err := loadTable(lcfg, gcfg)
	if err != nil {
		return err
	}
	features := table.Features()
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(features)
	}
	if len(features) == 0 {
		fmt.Println("No feature-importance data loaded.")
		return nil
	}
	tw := tablewriter.NewWriter(os.Stdout)
	tw.Header([]string{"Feature", "Mean |SHAP|"})
	for _, f := range features {
		tw.Append([]string{f.Feature, fmt.Sprintf("%.4f", f.MeanAbsSHAP)})
	}
	tw.Render()
	return nil
}
