package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
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
	"int": "INT", "varchar": "VARCHAR", "text": "LONGTEXT",
	"money": "DECIMAL(19,4)", "datetime": "DATETIME", "bool": "BOOLEAN",
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	db, err := common.Open(ctx, "mysql", url)
	if err != nil {
		return err
	}
	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *Adapter) DB() *sqlx.DB { return m.db }

func (m *Adapter) Provider() string { return "mysql" }

func (m *Adapter) StatementBuilder() squirrel.StatementBuilderType { return m.qb }

func (m *Adapter) RowsPerStatement(columns int) int {
	return common.RowsPerStatement(maxParams, 0, columns)
}

func (m *Adapter) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (m *Adapter) QualifiedTableName(name string) string {
	return m.QuoteIdentifier(name)
}

func (m *Adapter) GenerateDropTableSQL(tableName string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", m.QualifiedTableName(tableName))
}

func (m *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	defs := make([]string, 0, len(table.Columns))
	for _, column := range table.Columns {
		defs = append(defs, m.QuoteIdentifier(column.Name)+" "+m.FormatColumnType(column))
	}
	return common.BuildCreateTable(m.QualifiedTableName(table.Name), defs, " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4")
}

func (m *Adapter) FormatColumnType(column types.SchemaColumn) string {
	parts := []string{m.MapColumnType(column.Type)}

	if column.IsPrimary {
		if column.IsAutoIncrement {
			parts = append(parts, "AUTO_INCREMENT")
		}
		parts = append(parts, "PRIMARY KEY")
	} else if !column.Nullable {
		parts = append(parts, "NOT NULL")
	}

	return strings.Join(parts, " ")
}

func (m *Adapter) MapColumnType(logical string) string {
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
