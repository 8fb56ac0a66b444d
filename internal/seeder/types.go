package seeder

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rana718/uatgen/internal/types"
)

type SeedConfig struct {
	CustomersTotal int
	ProductsTotal  int
	BatchSize      int
	CommitEvery    int   // batches per commit period
	Seed           int64 // shared by the uniform and fake-value sources
}

// TableInfo is one generated table and the tables it must follow.
type TableInfo struct {
	Name         string
	Columns      []types.SchemaColumn
	Dependencies []string
}

func (t *TableInfo) Schema() types.SchemaTable {
	return types.SchemaTable{Name: t.Name, Columns: t.Columns}
}

type Category struct {
	Name        string
	Description string
}

func (c Category) Values() []interface{} {
	return []interface{}{c.Name, c.Description}
}

type Supplier struct {
	Name        string
	ContactName string
	Country     string
	Phone       string
}

func (s Supplier) Values() []interface{} {
	return []interface{}{s.Name, s.ContactName, s.Country, s.Phone}
}

type Customer struct {
	Name        sql.NullString
	Email       string
	Phone       string
	Country     string
	CreatedDate time.Time
	IsActive    bool
}

func (c Customer) Values() []interface{} {
	return []interface{}{c.Name, c.Email, c.Phone, c.Country, c.CreatedDate, c.IsActive}
}

type Product struct {
	Name          sql.NullString
	CategoryID    int
	SupplierID    int
	UnitPrice     decimal.Decimal
	StockQuantity int
	CreatedDate   time.Time
}

func (p Product) Values() []interface{} {
	return []interface{}{p.Name, p.CategoryID, p.SupplierID, p.UnitPrice, p.StockQuantity, p.CreatedDate}
}
