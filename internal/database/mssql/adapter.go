package mssql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/microsoft/go-mssqldb" // SQL Server driver

	"github.com/Rana718/uatgen/internal/database/common"
	"github.com/Rana718/uatgen/internal/types"
)

const (
	// SQL Server rejects requests carrying 2,100 or more parameters.
	maxParams = 2099
	// A table value constructor holds at most 1,000 rows.
	maxRowsPerStatement = 1000
	defaultSchema       = "dbo"
)

type Adapter struct {
	db *sqlx.DB
	qb squirrel.StatementBuilderType
}

var typeMap = map[string]string{
	"int": "INT", "varchar": "NVARCHAR", "text": "NVARCHAR(MAX)",
	"money": "MONEY", "datetime": "DATETIME", "bool": "BIT",
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.AtP),
	}
}

func (a *Adapter) Connect(ctx context.Context, url string) error {
	db, err := common.Open(ctx, "sqlserver", url)
	if err != nil {
		return err
	}
	a.db = db
	return nil
}

func (a *Adapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *Adapter) DB() *sqlx.DB { return a.db }

func (a *Adapter) Provider() string { return "sqlserver" }

func (a *Adapter) StatementBuilder() squirrel.StatementBuilderType { return a.qb }

func (a *Adapter) RowsPerStatement(columns int) int {
	return common.RowsPerStatement(maxParams, maxRowsPerStatement, columns)
}

func (a *Adapter) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (a *Adapter) QualifiedTableName(name string) string {
	return a.QuoteIdentifier(defaultSchema) + "." + a.QuoteIdentifier(name)
}

func (a *Adapter) GenerateDropTableSQL(tableName string) string {
	return fmt.Sprintf("IF OBJECT_ID('%s.%s', 'U') IS NOT NULL DROP TABLE %s;",
		defaultSchema, tableName, a.QualifiedTableName(tableName))
}

func (a *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	defs := make([]string, 0, len(table.Columns))
	for _, column := range table.Columns {
		defs = append(defs, a.QuoteIdentifier(column.Name)+" "+a.FormatColumnType(column))
	}
	return common.BuildCreateTable(a.QualifiedTableName(table.Name), defs, "")
}

func (a *Adapter) FormatColumnType(column types.SchemaColumn) string {
	parts := []string{a.MapColumnType(column.Type)}

	if column.IsPrimary {
		if column.IsAutoIncrement {
			parts = append(parts, "IDENTITY(1,1)")
		}
		parts = append(parts, "PRIMARY KEY")
	} else if !column.Nullable {
		parts = append(parts, "NOT NULL")
	}

	return strings.Join(parts, " ")
}

func (a *Adapter) MapColumnType(logical string) string {
	base, arg := common.SplitType(logical)
	mapped, ok := typeMap[base]
	if !ok {
		return strings.ToUpper(logical)
	}
	if arg != "" && base == "varchar" {
		return fmt.Sprintf("%s(%s)", mapped, arg)
	}
	return mapped
}
