package seeder

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Rana718/uatgen/internal/config"
	"github.com/Rana718/uatgen/internal/database"
	"github.com/Rana718/uatgen/internal/database/mssql"
)

func smallSeedConfig() SeedConfig {
	return SeedConfig{
		CustomersTotal: 2_500,
		ProductsTotal:  1_200,
		BatchSize:      500,
		CommitEvery:    DefaultCommitEvery,
		Seed:           DefaultSeed,
	}
}

func runOnce(t *testing.T, path string, out *bytes.Buffer) *Summary {
	t.Helper()
	ctx := context.Background()

	adapter := database.NewAdapter("sqlite")
	require.NoError(t, adapter.Connect(ctx, path))

	s := NewSeederWithAdapter(adapter, smallSeedConfig(), fixedNow, out, zaptest.NewLogger(t))
	defer s.Close()

	summary, err := s.Run(ctx)
	require.NoError(t, err)
	return summary
}

func tableCounts(t *testing.T, path string) map[string]int {
	t.Helper()
	adapter := database.NewAdapter("sqlite")
	require.NoError(t, adapter.Connect(context.Background(), path))
	defer adapter.Close()

	counts := make(map[string]int)
	for _, name := range []string{TableCategories, TableSuppliers, TableCustomers, TableProducts} {
		var n int
		require.NoError(t, adapter.DB().Get(&n, "SELECT COUNT(*) FROM "+adapter.QuoteIdentifier(name)))
		counts[name] = n
	}
	return counts
}

func TestRunIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uat.db")
	want := map[string]int{
		TableCategories: 8,
		TableSuppliers:  5_000,
		TableCustomers:  2_500,
		TableProducts:   1_000,
	}

	var out bytes.Buffer
	first := runOnce(t, path, &out)
	assert.Equal(t, want, tableCounts(t, path))

	second := runOnce(t, path, &out)
	assert.Equal(t, want, tableCounts(t, path))

	assert.Equal(t, 8+5_000+2_500+1_000, first.Total)
	assert.Equal(t, first.Total, second.Total)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Defects, second.Defects, "same seed, same defects")

	assert.Contains(t, out.String(), "Creating Categories ...")
	assert.Contains(t, out.String(), "Creating Suppliers (5,000 rows) ...")
	assert.Contains(t, out.String(), "Creating Customers (2,500 rows - batching) ...")
	assert.Contains(t, out.String(), "Creating Products (1,200 rows - batching) ...")
	assert.Less(t,
		strings.Index(out.String(), "Creating Customers"),
		strings.Index(out.String(), "Customers inserted"))
	assert.Contains(t, out.String(), "Categories inserted: 8 rows")
	assert.Contains(t, out.String(), "Customers inserted: 2,500 rows")
	assert.Contains(t, out.String(), "Products inserted: 1,000 rows")
}

func TestRunWritesExpectedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uat.db")
	summary := runOnce(t, path, &bytes.Buffer{})

	adapter := database.NewAdapter("sqlite")
	require.NoError(t, adapter.Connect(context.Background(), path))
	defer adapter.Close()
	db := adapter.DB()

	var names []string
	require.NoError(t, db.Select(&names, `SELECT "CategoryName" FROM "Categories" ORDER BY "CategoryID"`))
	assert.Equal(t, []string{"Electronics", "Clothing", "Food", "Books", "Toys", "Sports", "Home", "Beauty"}, names)

	var outOfRange int
	require.NoError(t, db.Get(&outOfRange, `SELECT COUNT(*) FROM "Products" WHERE "CategoryID" < 1 OR "CategoryID" > 8`))
	assert.Zero(t, outOfRange)

	var orphans int
	require.NoError(t, db.Get(&orphans,
		`SELECT COUNT(*) FROM "Products" p LEFT JOIN "Suppliers" s ON p."SupplierID" = s."SupplierID" WHERE s."SupplierID" IS NULL`))
	assert.Greater(t, orphans, 0)

	var firstProduct string
	require.NoError(t, db.Get(&firstProduct,
		`SELECT COALESCE("ProductName", '') FROM "Products" WHERE "ProductID" = 1`))
	assert.Contains(t, []string{ProductNames[0], ""}, firstProduct)

	var observedOrphans int
	for _, d := range summary.Defects {
		if d.Description == "Orphaned SupplierID" {
			observedOrphans = d.Observed
			assert.Equal(t, 1_000, d.Of)
		}
	}
	assert.Equal(t, orphans, observedOrphans)
}

func TestRunStopsOnDatabaseError(t *testing.T) {
	ctx := context.Background()
	adapter := database.NewAdapter("sqlite")
	require.NoError(t, adapter.Connect(ctx, filepath.Join(t.TempDir(), "uat.db")))

	s := NewSeederWithAdapter(adapter, smallSeedConfig(), fixedNow, &bytes.Buffer{}, nil)
	require.NoError(t, adapter.Close())

	_, err := s.Run(ctx)
	require.Error(t, err)
	assert.True(t, database.IsDatabaseError(err))
}

func TestSeedConfigFrom(t *testing.T) {
	cfg := &config.Config{Generate: config.Generate{CustomersTotal: 10, ProductsTotal: 20, BatchSize: 5}}

	sc := SeedConfigFrom(cfg)
	assert.Equal(t, SeedConfig{
		CustomersTotal: 10,
		ProductsTotal:  20,
		BatchSize:      5,
		CommitEvery:    DefaultCommitEvery,
		Seed:           DefaultSeed,
	}, sc)
}

func TestCreatingLineNamesSQLServerSchema(t *testing.T) {
	s := NewSeederWithAdapter(mssql.New(), SeedConfig{CustomersTotal: 900_000, ProductsTotal: 150_000}, fixedNow, &bytes.Buffer{}, nil)

	assert.Equal(t, "Creating dbo.Categories ...", s.creatingLine(TableCategories))
	assert.Equal(t, "Creating dbo.Suppliers (5,000 rows) ...", s.creatingLine(TableSuppliers))
	assert.Equal(t, "Creating dbo.Customers (900,000 rows - batching) ...", s.creatingLine(TableCustomers))
	assert.Equal(t, "Creating dbo.Products (150,000 rows - batching) ...", s.creatingLine(TableProducts))
}
