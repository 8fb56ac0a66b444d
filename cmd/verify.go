package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rana718/uatgen/internal/database"
	"github.com/Rana718/uatgen/internal/verify"
)

var verifyYAML bool

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Audit a generated dataset",
	Long: `Count the rows in each generated table and the defects they carry:
NULL names, @invalid e-mails, future dates, negative prices and stock,
orphaned SupplierIDs and out-of-range CategoryIDs.

The database is only read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			color.Red("❌ Configuration error: %v", err)
			return err
		}
		defer logger.Sync()

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		adapter := database.NewAdapter(cfg.NormalizedProvider())
		if err := database.Connect(ctx, adapter, dbURL); err != nil {
			reportRunError(cmd.OutOrStdout(), cfg, err)
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer adapter.Close()

		report, err := verify.New(adapter, logger).Run(ctx, time.Now())
		if err != nil {
			reportRunError(cmd.OutOrStdout(), cfg, err)
			return err
		}
		logger.Debug("verification finished", zap.String("run_id", report.RunID))

		out := cmd.OutOrStdout()
		if verifyYAML {
			data, err := report.YAML()
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			_, err = out.Write(data)
			return err
		}

		report.Print(out)
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyYAML, "yaml", false, "Print the report as YAML")
}
