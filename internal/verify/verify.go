// Package verify audits a generated dataset and reports how many rows carry
// each injected defect.
package verify

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Rana718/uatgen/internal/database"
	"github.com/Rana718/uatgen/internal/seeder"
)

type TableReport struct {
	Table string `yaml:"table"`
	Rows  int    `yaml:"rows"`
}

type Check struct {
	Name         string  `yaml:"name"`
	Table        string  `yaml:"table"`
	Count        int     `yaml:"count"`
	Of           int     `yaml:"of"`
	ExpectedRate float64 `yaml:"expected_rate"`
	ObservedRate float64 `yaml:"observed_rate"`
}

type Report struct {
	RunID     string        `yaml:"run_id"`
	Provider  string        `yaml:"provider"`
	CheckedAt time.Time     `yaml:"checked_at"`
	Tables    []TableReport `yaml:"tables"`
	Checks    []Check       `yaml:"checks"`
}

type Verifier struct {
	session *database.Session
	qb      squirrel.StatementBuilderType
	logger  *zap.Logger
}

func New(adapter database.DatabaseAdapter, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		session: database.NewSession(adapter, logger),
		qb:      adapter.StatementBuilder(),
		logger:  logger.Named("verify"),
	}
}

func (v *Verifier) q(name string) string {
	return v.session.Adapter().QuoteIdentifier(name)
}

func (v *Verifier) table(name string) string {
	return v.session.Adapter().QualifiedTableName(name)
}

func (v *Verifier) count(ctx context.Context, b squirrel.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	var n int
	if err := v.session.Get(ctx, &n, query, args...); err != nil {
		return 0, err
	}
	v.logger.Debug("count", zap.String("query", query), zap.Int("result", n))
	return n, nil
}

func (v *Verifier) countWhere(ctx context.Context, table string, pred squirrel.Sqlizer) (int, error) {
	b := v.qb.Select("COUNT(*)").From(v.table(table))
	if pred != nil {
		b = b.Where(pred)
	}
	return v.count(ctx, b)
}

// Run counts rows and defects in every generated table. Dates after now
// count as future-dated.
func (v *Verifier) Run(ctx context.Context, now time.Time) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		Provider:  v.session.Adapter().Provider(),
		CheckedAt: now.UTC().Truncate(time.Second),
	}

	rows := make(map[string]int)
	for _, t := range seeder.Tables() {
		n, err := v.countWhere(ctx, t.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", t.Name, err)
		}
		rows[t.Name] = n
		report.Tables = append(report.Tables, TableReport{Table: t.Name, Rows: n})
	}

	customers, products := seeder.TableCustomers, seeder.TableProducts
	checks := []struct {
		name     string
		table    string
		expected float64
		pred     squirrel.Sqlizer
	}{
		{"NULL CustomerName", customers, seeder.CustomerNullNameRate, squirrel.Eq{v.q("CustomerName"): nil}},
		{"Invalid email format", customers, seeder.CustomerInvalidEmailRate,
			squirrel.Like{v.q("Email"): "%@" + seeder.InvalidEmailDomain}},
		{"Future CreatedDate", customers, seeder.CustomerFutureDateRate,
			squirrel.Gt{v.q("CreatedDate"): report.CheckedAt}},
		{"NULL ProductName", products, seeder.ProductNullNameRate, squirrel.Eq{v.q("ProductName"): nil}},
		{"Negative UnitPrice", products, seeder.ProductNegativePriceRate, squirrel.Lt{v.q("UnitPrice"): 0}},
		{"Negative StockQuantity", products, seeder.ProductNegativeStockRate, squirrel.Lt{v.q("StockQuantity"): 0}},
		{"CategoryID out of range", products, 0,
			squirrel.Or{squirrel.Lt{v.q("CategoryID"): 1}, squirrel.Gt{v.q("CategoryID"): seeder.CategoryCount}}},
	}

	for _, c := range checks {
		n, err := v.countWhere(ctx, c.table, c.pred)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", c.name, err)
		}
		report.Checks = append(report.Checks, newCheck(c.name, c.table, n, rows[c.table], c.expected))
	}

	orphans, err := v.orphanedSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check orphaned suppliers: %w", err)
	}
	expected := float64(seeder.MaxSupplierID-seeder.SupplierCount) / seeder.MaxSupplierID
	report.Checks = append(report.Checks, newCheck("Orphaned SupplierID", products, orphans, rows[products], expected))

	return report, nil
}

func (v *Verifier) orphanedSuppliers(ctx context.Context) (int, error) {
	join := fmt.Sprintf("%s s ON p.%s = s.%s", v.table(seeder.TableSuppliers), v.q("SupplierID"), v.q("SupplierID"))
	b := v.qb.Select("COUNT(*)").
		From(v.table(seeder.TableProducts) + " p").
		LeftJoin(join).
		Where("s." + v.q("SupplierID") + " IS NULL")
	return v.count(ctx, b)
}

func newCheck(name, table string, count, of int, expected float64) Check {
	c := Check{Name: name, Table: table, Count: count, Of: of, ExpectedRate: expected}
	if of > 0 {
		c.ObservedRate = float64(count) / float64(of)
	}
	return c
}

func (r *Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// Print writes the report as an aligned table.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "🔍 Dataset Verification (%s)\n", r.Provider)
	fmt.Fprintf(w, "===========================\n\n")

	for _, t := range r.Tables {
		fmt.Fprintf(w, "%-12s %12s rows\n", t.Table, humanize.Comma(int64(t.Rows)))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-26s %-10s %10s %9s %9s\n", "Check", "Table", "Count", "Observed", "Expected")
	fmt.Fprintf(w, "%-26s %-10s %10s %9s %9s\n", "-----", "-----", "-----", "--------", "--------")
	for _, c := range r.Checks {
		line := fmt.Sprintf("%-26s %-10s %10s %8.2f%% %8.2f%%\n",
			c.Name, c.Table, humanize.Comma(int64(c.Count)), c.ObservedRate*100, c.ExpectedRate*100)
		if c.ExpectedRate == 0 && c.Count > 0 {
			color.New(color.FgRed).Fprint(w, line)
			continue
		}
		fmt.Fprint(w, line)
	}
}
