package seeder

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rana718/uatgen/internal/config"
	"github.com/Rana718/uatgen/internal/database"
)

const (
	CustomerProgressEvery = 10
	ProductProgressEvery  = 5
)

type Seeder struct {
	adapter    database.DatabaseAdapter
	session    *database.Session
	generator  *DataGenerator
	graph      *DependencyGraph
	seedConfig SeedConfig
	stats      DefectStats
	out        io.Writer
	logger     *zap.Logger
	runID      string
}

type TableCount struct {
	Table string
	Rows  int
}

type Summary struct {
	RunID   string
	Tables  []TableCount
	Total   int
	Defects []Defect
}

// SeedConfigFrom takes the generation knobs from cfg; everything else is fixed.
func SeedConfigFrom(cfg *config.Config) SeedConfig {
	return SeedConfig{
		CustomersTotal: cfg.Generate.CustomersTotal,
		ProductsTotal:  cfg.Generate.ProductsTotal,
		BatchSize:      cfg.Generate.BatchSize,
		CommitEvery:    DefaultCommitEvery,
		Seed:           DefaultSeed,
	}
}

// NewSeeder connects to the configured database. The caller must Close it.
func NewSeeder(ctx context.Context, cfg *config.Config, seedConfig SeedConfig, out io.Writer, logger *zap.Logger) (*Seeder, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, fmt.Errorf("failed to get database URL: %w", err)
	}

	adapter := database.NewAdapter(cfg.NormalizedProvider())
	if err := database.Connect(ctx, adapter, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewSeederWithAdapter(adapter, seedConfig, time.Now(), out, logger), nil
}

// NewSeederWithAdapter uses an already connected adapter; Close closes it.
func NewSeederWithAdapter(adapter database.DatabaseAdapter, seedConfig SeedConfig, now time.Time, out io.Writer, logger *zap.Logger) *Seeder {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	graph := NewDependencyGraph()
	for _, table := range Tables() {
		graph.AddTable(table)
	}

	return &Seeder{
		adapter:    adapter,
		session:    database.NewSession(adapter, logger),
		generator:  NewDataGenerator(seedConfig.Seed, now),
		graph:      graph,
		seedConfig: seedConfig,
		out:        out,
		logger:     logger.Named("seeder"),
		runID:      runID,
	}
}

func (s *Seeder) RunID() string { return s.runID }

// Close rolls back anything uncommitted and releases the connection.
func (s *Seeder) Close() error {
	rbErr := s.session.Close()
	closeErr := s.adapter.Close()
	if rbErr != nil {
		return rbErr
	}
	return closeErr
}

// Run recreates and fills every table in dependency order. Any error aborts
// the run; rows since the last commit are rolled back by Close.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	order, err := s.graph.BuildInsertionOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}
	s.logger.Info("run started",
		zap.Strings("order", order),
		zap.Int("customers", s.seedConfig.CustomersTotal),
		zap.Int("products", s.seedConfig.ProductsTotal),
		zap.Int("batch_size", s.seedConfig.BatchSize))

	boot := NewBootstrapper(s.session, s.logger)
	summary := &Summary{RunID: s.runID}

	for _, name := range order {
		table := s.graph.Table(name)
		color.New(color.FgCyan).Fprintln(s.out, s.creatingLine(name))
		if err := boot.Recreate(ctx, table); err != nil {
			return nil, err
		}

		rows, err := s.populate(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("failed to populate %s: %w", name, err)
		}
		color.New(color.FgGreen).Fprintf(s.out, "✓ %s inserted: %s rows\n", name, humanize.Comma(int64(rows)))

		summary.Tables = append(summary.Tables, TableCount{Table: name, Rows: rows})
		summary.Total += rows
	}

	summary.Defects = s.stats.Defects()
	s.logger.Info("run finished", zap.Int("rows", summary.Total))
	return summary, nil
}

func (s *Seeder) populate(ctx context.Context, table *TableInfo) (int, error) {
	columns := table.Schema().ColumnNames()

	switch table.Name {
	case TableCategories:
		rows := make([][]interface{}, 0, len(Categories))
		for _, c := range Categories {
			rows = append(rows, c.Values())
		}
		return s.insertAll(ctx, table.Name, columns, rows)

	case TableSuppliers:
		suppliers := GenerateSuppliers(s.generator, SupplierCount)
		rows := make([][]interface{}, 0, len(suppliers))
		for _, sup := range suppliers {
			rows = append(rows, sup.Values())
		}
		return s.insertAll(ctx, table.Name, columns, rows)

	case TableCustomers:
		now := s.generator.Now()
		return s.load(ctx, BatchSpec{
			Table:         table.Name,
			Columns:       columns,
			Total:         s.seedConfig.CustomersTotal,
			ProgressEvery: CustomerProgressEvery,
			Label:         "customers",
			Row: func(int) []interface{} {
				c := GenerateCustomer(s.generator)
				s.stats.ObserveCustomer(c, now)
				return c.Values()
			},
		})

	case TableProducts:
		return s.load(ctx, BatchSpec{
			Table:         table.Name,
			Columns:       columns,
			Total:         s.seedConfig.ProductsTotal,
			ProgressEvery: ProductProgressEvery,
			Label:         "products",
			Row: func(i int) []interface{} {
				p := GenerateProduct(s.generator, i)
				s.stats.ObserveProduct(p)
				return p.Values()
			},
		})
	}

	return 0, fmt.Errorf("no generator for table %s", table.Name)
}

// creatingLine announces a table before it is recreated, e.g.
// "Creating dbo.Customers (900,000 rows - batching) ...".
func (s *Seeder) creatingLine(name string) string {
	display := name
	if s.adapter.Provider() == "sqlserver" {
		display = "dbo." + name
	}

	switch name {
	case TableSuppliers:
		return fmt.Sprintf("Creating %s (%s rows) ...", display, humanize.Comma(SupplierCount))
	case TableCustomers:
		return fmt.Sprintf("Creating %s (%s rows - batching) ...", display, humanize.Comma(int64(s.seedConfig.CustomersTotal)))
	case TableProducts:
		return fmt.Sprintf("Creating %s (%s rows - batching) ...", display, humanize.Comma(int64(s.seedConfig.ProductsTotal)))
	default:
		return fmt.Sprintf("Creating %s ...", display)
	}
}

// insertAll writes a fixed table as a single batch and commits it.
func (s *Seeder) insertAll(ctx context.Context, table string, columns []string, rows [][]interface{}) (int, error) {
	if err := s.session.InsertBatch(ctx, table, columns, rows); err != nil {
		return 0, err
	}
	if err := s.session.Commit(ctx); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *Seeder) load(ctx context.Context, spec BatchSpec) (int, error) {
	spec.BatchSize = s.seedConfig.BatchSize
	spec.CommitEvery = s.seedConfig.CommitEvery
	res, err := NewLoader(s.session, s.out, s.logger).Load(ctx, spec)
	return res.Inserted, err
}
