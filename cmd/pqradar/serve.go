package pqradar

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pqradar/pqradar/internal/server"
	"github.com/pqradar/pqradar/internal/session"
)

var flagAddr string

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scan pipeline over HTTP",
		Long:  "serve loads the risk table once, then exposes scans, findings, reports and risk-table queries under /api/v1. PQRADAR_ADDR and PQRADAR_TABLE_DIR from the environment or a .env file override defaults.",
		RunE:  runServe,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default :8080)")
}

func runServe(_ *cobra.Command, _ []string) error {
	// Optional .env next to the working directory; absence is not an error.
	_ = godotenv.Load()

	if flagTableDir == "" {
		flagTableDir = os.Getenv("PQRADAR_TABLE_DIR")
	}
	lcfg, gcfg := loadConfigs(".")
	table, err := loadTable(lcfg, gcfg)
	if err != nil {
		return err
	}

	addr := flagAddr
	if addr == "" {
		addr = os.Getenv("PQRADAR_ADDR")
	}
	if addr == "" {
		addr = ":8080"
	}

	srv := server.New(session.NewStore(table))
	fmt.Fprintf(os.Stderr, "pqradar serving on %s (table %s, %d records)\n", addr, table.Fingerprint(), table.Len())
	return srv.Run(addr)
}
