package common

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsValidIdentifier reports whether name is safe to splice into SQL text.
func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// SplitType separates a logical column type such as "varchar(50)" into
// its lower-cased base name and argument.
func SplitType(logical string) (base, arg string) {
	logical = strings.ToLower(strings.TrimSpace(logical))
	if idx := strings.Index(logical, "("); idx > 0 && strings.HasSuffix(logical, ")") {
		return logical[:idx], logical[idx+1 : len(logical)-1]
	}
	return logical, ""
}

// RowsPerStatement is how many rows of the given width fit in one INSERT
// under the dialect's parameter and row limits. maxRows <= 0 means unlimited.
func RowsPerStatement(maxParams, maxRows, columns int) int {
	if columns <= 0 {
		return 0
	}
	n := maxParams / columns
	if maxRows > 0 && n > maxRows {
		n = maxRows
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Open opens a single-connection pool and verifies it with a ping.
func Open(ctx context.Context, driverName, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}

	// one connection, one cursor: every statement runs on the same session
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// BuildCreateTable renders a CREATE TABLE statement from already quoted pieces.
func BuildCreateTable(qualifiedName string, columnDefs []string, trailer string) string {
	lines := make([]string, 0, len(columnDefs)+2)
	lines = append(lines, fmt.Sprintf("CREATE TABLE %s (", qualifiedName))
	for i, def := range columnDefs {
		comma := ","
		if i == len(columnDefs)-1 {
			comma = ""
		}
		lines = append(lines, "  "+def+comma)
	}
	lines = append(lines, ")"+trailer+";")
	return strings.Join(lines, "\n")
}
