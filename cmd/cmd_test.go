package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Rana718/uatgen/internal/config"
	"github.com/Rana718/uatgen/internal/database"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		verifyYAML = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateAndVerifyOnSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uat.db")
	t.Setenv("DB_PROVIDER", "sqlite")
	t.Setenv("SQL_SERVER_HOST", path)
	t.Setenv("SQL_SERVER_DB", "")

	out, err := execute(t, "generate", "--customers", "2500", "--products", "1000", "--batch-size", "1000")
	require.NoError(t, err)

	assert.Contains(t, out, "SQLITE DATA GENERATOR")
	assert.Contains(t, out, "Connecting to: "+path)
	assert.Contains(t, out, "Customers inserted: 2,000 rows")
	assert.Contains(t, out, "DATA GENERATION COMPLETE!")
	assert.Contains(t, out, "Orphaned SupplierID: ~16.7%")
	assert.Contains(t, out, "NULL CustomerName: ~0.5%")

	out, err = execute(t, "verify", "--yaml")
	require.NoError(t, err)

	var report struct {
		Provider string `yaml:"provider"`
		Tables   []struct {
			Table string `yaml:"table"`
			Rows  int    `yaml:"rows"`
		} `yaml:"tables"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, "sqlite", report.Provider)
	require.Len(t, report.Tables, 4)
	assert.Equal(t, 2_000, report.Tables[2].Rows)
	assert.Equal(t, 1_000, report.Tables[3].Rows)
}

func TestGenerateFailsFastWithoutHost(t *testing.T) {
	t.Setenv("DB_PROVIDER", "sqlserver")
	t.Setenv("SQL_SERVER_HOST", "")

	_, err := execute(t, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SQL_SERVER_HOST is missing")
}

func TestProviderLabel(t *testing.T) {
	t.Setenv("SQL_SERVER_HOST", "x")
	for provider, want := range map[string]string{
		"sqlserver": "SQL Server",
		"postgres":  "PostgreSQL",
		"mysql":     "MySQL",
		"sqlite3":   "SQLite",
	} {
		t.Setenv("DB_PROVIDER", provider)
		cfg, _, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, want, providerLabel(cfg), provider)
	}
}

func TestReportRunErrorLabels(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		err      error
		want     string
	}{
		{"sql server", "sqlserver", &database.Error{Op: "connect", Err: errors.New("login failed")}, "❌ SQL Server error occurred."},
		{"driver error", "postgres", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), "❌ PostgreSQL error occurred."},
		{"general", "sqlserver", errors.New("no generator for table X"), "❌ General error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Database: config.Database{Provider: tt.provider}}
			var buf bytes.Buffer

			reportRunError(&buf, cfg, tt.err)

			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), tt.err.Error())
		})
	}
}

func TestGenerateReportsDatabaseErrorLabel(t *testing.T) {
	t.Setenv("DB_PROVIDER", "sqlite")
	t.Setenv("SQL_SERVER_HOST", filepath.Join(t.TempDir(), "missing", "uat.db"))

	out, err := execute(t, "generate", "--customers", "10", "--products", "10", "--batch-size", "10")
	require.Error(t, err)
	assert.Contains(t, out, "❌ SQLite error occurred.")
	assert.NotContains(t, out, "General error occurred.")
}
