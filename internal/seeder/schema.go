package seeder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Rana718/uatgen/internal/database"
	"github.com/Rana718/uatgen/internal/database/common"
	"github.com/Rana718/uatgen/internal/types"
)

const (
	TableCategories = "Categories"
	TableSuppliers  = "Suppliers"
	TableCustomers  = "Customers"
	TableProducts   = "Products"
)

func identity(name string) types.SchemaColumn {
	return types.SchemaColumn{Name: name, Type: "int", IsPrimary: true, IsAutoIncrement: true}
}

func column(name, typ string) types.SchemaColumn {
	return types.SchemaColumn{Name: name, Type: typ, Nullable: true}
}

// Tables lists the generated tables in registration order. Products depends
// on Categories and Suppliers by id, though no constraint enforces it.
func Tables() []*TableInfo {
	return []*TableInfo{
		{
			Name: TableCategories,
			Columns: []types.SchemaColumn{
				identity("CategoryID"),
				column("CategoryName", "varchar(50)"),
				column("Description", "text"),
			},
		},
		{
			Name: TableSuppliers,
			Columns: []types.SchemaColumn{
				identity("SupplierID"),
				column("SupplierName", "varchar(150)"),
				column("ContactName", "varchar(100)"),
				column("Country", "varchar(100)"),
				column("Phone", "varchar(20)"),
			},
		},
		{
			Name: TableCustomers,
			Columns: []types.SchemaColumn{
				identity("CustomerID"),
				column("CustomerName", "varchar(100)"),
				column("Email", "varchar(100)"),
				column("Phone", "varchar(20)"),
				column("Country", "varchar(100)"),
				column("CreatedDate", "datetime"),
				column("IsActive", "bool"),
			},
		},
		{
			Name:         TableProducts,
			Dependencies: []string{TableCategories, TableSuppliers},
			Columns: []types.SchemaColumn{
				identity("ProductID"),
				column("ProductName", "varchar(200)"),
				column("CategoryID", "int"),
				column("SupplierID", "int"),
				column("UnitPrice", "money"),
				column("StockQuantity", "int"),
				column("CreatedDate", "datetime"),
			},
		},
	}
}

// Bootstrapper drops and recreates a table, discarding whatever a previous
// run left behind.
type Bootstrapper struct {
	session *database.Session
	logger  *zap.Logger
}

func NewBootstrapper(session *database.Session, logger *zap.Logger) *Bootstrapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bootstrapper{session: session, logger: logger.Named("schema")}
}

func (b *Bootstrapper) Recreate(ctx context.Context, table *TableInfo) error {
	if !common.IsValidIdentifier(table.Name) {
		return fmt.Errorf("invalid table name: %s", table.Name)
	}
	for _, col := range table.Columns {
		if !common.IsValidIdentifier(col.Name) {
			return fmt.Errorf("invalid column name in table %s: %s", table.Name, col.Name)
		}
	}

	adapter := b.session.Adapter()
	drop := adapter.GenerateDropTableSQL(table.Name)
	create := adapter.GenerateCreateTableSQL(table.Schema())

	if err := b.session.Exec(ctx, drop); err != nil {
		return fmt.Errorf("failed to drop %s: %w", table.Name, err)
	}
	if err := b.session.Exec(ctx, create); err != nil {
		return fmt.Errorf("failed to create %s: %w", table.Name, err)
	}
	if err := b.session.Commit(ctx); err != nil {
		return err
	}

	b.logger.Debug("table recreated", zap.String("table", table.Name), zap.String("ddl", create))
	return nil
}
