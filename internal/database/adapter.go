package database

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/Rana718/uatgen/internal/types"
)

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error
	DB() *sqlx.DB
	Provider() string

	// Statement building
	StatementBuilder() squirrel.StatementBuilderType
	RowsPerStatement(columns int) int
	QuoteIdentifier(name string) string
	QualifiedTableName(name string) string

	// SQL generation
	GenerateDropTableSQL(tableName string) string
	GenerateCreateTableSQL(table types.SchemaTable) string

	// Data type mapping
	MapColumnType(logical string) string
	FormatColumnType(column types.SchemaColumn) string
}
