package pqradar

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON            bool
	flagThreads         int
	flagTableDir        string
	flagDefaultExcludes bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the pqradar CLI.
var rootCmd = &cobra.Command{
	Use:           "pqradar",
	Short:         "Find quantum-vulnerable cryptography in your code",
	Long:          "pqradar scans source trees for RSA, ECC, DH and other quantum-vulnerable cryptography, correlates each usage against an ML risk table, and reports post-quantum migration priorities.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the pqradar CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().StringVar(&flagTableDir, "table-dir", "", "directory holding risk_output.json and companion model files (default \"model\")")
	rootCmd.PersistentFlags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, vendor, .git, etc.)")
}
