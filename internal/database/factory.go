package database

import (
	"context"

	"github.com/Rana718/uatgen/internal/database/mssql"
	"github.com/Rana718/uatgen/internal/database/mysql"
	"github.com/Rana718/uatgen/internal/database/postgres"
	"github.com/Rana718/uatgen/internal/database/sqlite"
)

func NewAdapter(provider string) DatabaseAdapter {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New()
	case "mysql":
		return mysql.New()
	case "sqlite", "sqlite3":
		return sqlite.New()
	default:
		return mssql.New()
	}
}

// Connect opens adapter on url. Any failure, including an unreachable
// server, is reported as a database error.
func Connect(ctx context.Context, adapter DatabaseAdapter, url string) error {
	return wrap("connect", adapter.Connect(ctx, url))
}
