package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Rana718/uatgen/internal/config"
	"github.com/Rana718/uatgen/internal/database"
	"github.com/Rana718/uatgen/internal/seeder"
)

const rule = "============================================================"

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Recreate the UAT tables and fill them with defective data",
	Long: `Drop and recreate Categories, Suppliers, Customers and Products, then
insert seeded fake rows in batches.

Every run is destructive: existing tables of the same name are dropped.
Customers and products are inserted in full batches only; rows that do not
fill a final batch are not generated.`,
	Example: `  uatgen generate
  uatgen generate --customers 100000 --products 20000 --batch-size 5000
  DB_PROVIDER=sqlite SQL_SERVER_HOST=./uat.db uatgen generate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

// generateFlags maps command-line flags onto their config keys.
var generateFlags = map[string]string{
	"customers":  "generate.customers_total",
	"products":   "generate.products_total",
	"batch-size": "generate.batch_size",
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().Int("customers", config.DefaultCustomersTotal, "Number of customers to generate")
	cmd.Flags().Int("products", config.DefaultProductsTotal, "Number of products to generate")
	cmd.Flags().Int("batch-size", config.DefaultBatchSize, "Rows per bulk insert")
}

func init() {
	addGenerateFlags(generateCmd)
}

func applyGenerateFlags(cmd *cobra.Command) {
	for flag, key := range generateFlags {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetInt(flag)
			viper.Set(key, v)
		}
	}
}

func runGenerate(cmd *cobra.Command) error {
	applyGenerateFlags(cmd)
	out := cmd.OutOrStdout()

	cfg, logger, err := loadConfig()
	if err != nil {
		color.Red("❌ Configuration error: %v", err)
		return err
	}
	defer logger.Sync()

	printHeader(out, cfg)

	start := time.Now()
	summary, err := generate(cmd.Context(), cfg, out, logger)
	if err != nil {
		reportRunError(out, cfg, err)
		return err
	}

	printSummary(out, summary, time.Since(start))
	return nil
}

// generate owns the connection for the whole run. Close runs before the
// error is returned, so uncommitted rows are rolled back first.
func generate(ctx context.Context, cfg *config.Config, out io.Writer, logger *zap.Logger) (summary *seeder.Summary, err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := seeder.NewSeeder(ctx, cfg, seeder.SeedConfigFrom(cfg), out, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			logger.Warn("cleanup failed", zap.String("run_id", s.RunID()), zap.Error(closeErr))
		}
	}()

	return s.Run(ctx)
}

func providerLabel(cfg *config.Config) string {
	switch cfg.NormalizedProvider() {
	case "postgresql":
		return "PostgreSQL"
	case "mysql":
		return "MySQL"
	case "sqlite":
		return "SQLite"
	default:
		return "SQL Server"
	}
}

// reportRunError labels err as a database or general failure.
func reportRunError(w io.Writer, cfg *config.Config, err error) {
	red := color.New(color.FgRed)
	fmt.Fprintln(w)
	if database.IsDatabaseError(err) {
		red.Fprintf(w, "❌ %s error occurred.\n", providerLabel(cfg))
	} else {
		red.Fprintln(w, "❌ General error occurred.")
	}
	red.Fprintf(w, "   %v\n", err)
}

func printHeader(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, rule)
	color.New(color.FgCyan, color.Bold).Fprintf(out, "%s DATA GENERATOR\n", strings.ToUpper(providerLabel(cfg)))
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Connecting to: %s\n", cfg.Database.Host)
	fmt.Fprintf(out, "Database: %s\n", cfg.Database.Name)
	fmt.Fprintf(out, "Customers: %s  Products: %s  Batch size: %s\n\n",
		humanize.Comma(int64(cfg.Generate.CustomersTotal)),
		humanize.Comma(int64(cfg.Generate.ProductsTotal)),
		humanize.Comma(int64(cfg.Generate.BatchSize)))
}

func printSummary(out io.Writer, summary *seeder.Summary, elapsed time.Duration) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, rule)
	color.New(color.FgGreen, color.Bold).Fprintln(out, "✓ DATA GENERATION COMPLETE!")
	fmt.Fprintln(out, rule)

	for _, t := range summary.Tables {
		fmt.Fprintf(out, "%-12s %12s\n", t.Table+":", humanize.Comma(int64(t.Rows)))
	}
	fmt.Fprintf(out, "%-12s %12s\n", "TOTAL:", humanize.Comma(int64(summary.Total)))

	fmt.Fprintln(out)
	color.New(color.FgYellow).Fprintln(out, "Data quality issues included:")
	for _, d := range summary.Defects {
		fmt.Fprintf(out, "  - %s: ~%s%% (observed %s = %s%%)\n",
			d.Description,
			humanize.FtoaWithDigits(d.Expected*100, 1),
			humanize.Comma(int64(d.Observed)),
			humanize.FtoaWithDigits(d.ObservedRate()*100, 2))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Run %s finished in %s\n", summary.RunID, elapsed.Round(time.Millisecond))
}
