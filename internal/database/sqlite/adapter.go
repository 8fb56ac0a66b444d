package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Rana718/uatgen/internal/database/common"
	"github.com/Rana718/uatgen/internal/types"
)

// SQLITE_MAX_VARIABLE_NUMBER for the bundled SQLite (>= 3.32).
const maxParams = 32766

type Adapter struct {
	db *sqlx.DB
	qb squirrel.StatementBuilderType
}

var typeMap = map[string]string{
	"int": "INTEGER", "varchar": "TEXT", "text": "TEXT",
	"money": "NUMERIC", "datetime": "DATETIME", "bool": "BOOLEAN",
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_journal_mode=WAL"
	}

	db, err := common.Open(ctx, "sqlite3", dbPath)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) DB() *sqlx.DB { return s.db }

func (s *Adapter) Provider() string { return "sqlite" }

func (s *Adapter) StatementBuilder() squirrel.StatementBuilderType { return s.qb }

func (s *Adapter) RowsPerStatement(columns int) int {
	return common.RowsPerStatement(maxParams, 0, columns)
}

func (s *Adapter) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (s *Adapter) QualifiedTableName(name string) string {
	return s.QuoteIdentifier(name)
}

func (s *Adapter) GenerateDropTableSQL(tableName string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", s.QualifiedTableName(tableName))
}

func (s *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	defs := make([]string, 0, len(table.Columns))
	for _, column := range table.Columns {
		defs = append(defs, s.QuoteIdentifier(column.Name)+" "+s.FormatColumnType(column))
	}
	return common.BuildCreateTable(s.QualifiedTableName(table.Name), defs, "")
}

func (s *Adapter) FormatColumnType(column types.SchemaColumn) string {
	parts := []string{s.MapColumnType(column.Type)}

	if column.IsPrimary {
		if column.IsAutoIncrement {
			parts = append(parts, "PRIMARY KEY AUTOINCREMENT")
		} else {
			parts = append(parts, "PRIMARY KEY")
		}
	} else if !column.Nullable {
		parts = append(parts, "NOT NULL")
	}

	return strings.Join(parts, " ")
}

func (s *Adapter) MapColumnType(logical string) string {
	base, _ := common.SplitType(logical)
	if mapped, ok := typeMap[base]; ok {
		return mapped
	}
	return strings.ToUpper(logical)
}
