package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"

	"github.com/Rana718/uatgen/internal/database/common"
	"github.com/Rana718/uatgen/internal/types"
)

const maxParams = 65535

type Adapter struct {
	db *sqlx.DB
	qb squirrel.StatementBuilderType
}

var typeMap = map[string]string{
	"int": "INTEGER", "varchar": "VARCHAR", "text": "TEXT",
	"money": "NUMERIC(19,4)", "datetime": "TIMESTAMP", "bool": "BOOLEAN",
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	db, err := common.Open(ctx, "pgx", url)
	if err != nil {
		return err
	}
	p.db = db
	return nil
}

func (p *Adapter) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Adapter) DB() *sqlx.DB { return p.db }

func (p *Adapter) Provider() string { return "postgresql" }

func (p *Adapter) StatementBuilder() squirrel.StatementBuilderType { return p.qb }

func (p *Adapter) RowsPerStatement(columns int) int {
	return common.RowsPerStatement(maxParams, 0, columns)
}

func (p *Adapter) QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (p *Adapter) QualifiedTableName(name string) string {
	return p.QuoteIdentifier(name)
}

func (p *Adapter) GenerateDropTableSQL(tableName string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", p.QualifiedTableName(tableName))
}

func (p *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	defs := make([]string, 0, len(table.Columns))
	for _, column := range table.Columns {
		defs = append(defs, p.QuoteIdentifier(column.Name)+" "+p.FormatColumnType(column))
	}
	return common.BuildCreateTable(p.QualifiedTableName(table.Name), defs, "")
}

func (p *Adapter) FormatColumnType(column types.SchemaColumn) string {
	if column.IsPrimary && column.IsAutoIncrement {
		return "SERIAL PRIMARY KEY"
	}

	parts := []string{p.MapColumnType(column.Type)}
	if column.IsPrimary {
		parts = append(parts, "PRIMARY KEY")
	} else if !column.Nullable {
		parts = append(parts, "NOT NULL")
	}
	return strings.Join(parts, " ")
}

func (p *Adapter) MapColumnType(logical string) string {
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
