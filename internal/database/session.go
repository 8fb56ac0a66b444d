package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Session is the single connection a run writes through. Inserts open a
// transaction lazily; it stays open until Commit, so rows written since the
// last commit are rolled back if the run dies.
type Session struct {
	adapter DatabaseAdapter
	tx      *sqlx.Tx
	logger  *zap.Logger
}

func NewSession(adapter DatabaseAdapter, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		adapter: adapter,
		logger:  logger.Named("session"),
	}
}

func (s *Session) Adapter() DatabaseAdapter { return s.adapter }

// Exec runs a statement inside the open transaction, or directly when none is open.
func (s *Session) Exec(ctx context.Context, query string, args ...interface{}) error {
	var err error
	if s.tx != nil {
		_, err = s.tx.ExecContext(ctx, query, args...)
	} else {
		_, err = s.adapter.DB().ExecContext(ctx, query, args...)
	}
	if err != nil {
		return wrap("exec", err)
	}
	return nil
}

// Get scans a single-row result into dest.
func (s *Session) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	var err error
	if s.tx != nil {
		err = s.tx.GetContext(ctx, dest, query, args...)
	} else {
		err = s.adapter.DB().GetContext(ctx, dest, query, args...)
	}
	if err != nil {
		return wrap("query", err)
	}
	return nil
}

// InsertBatch writes rows in their given order as one logical bulk insert.
// The batch is split into as many statements as the dialect's parameter
// limits require; all of them share the current transaction.
func (s *Session) InsertBatch(ctx context.Context, table string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	if len(columns) == 0 {
		return fmt.Errorf("insert into %s names no columns", table)
	}
	if err := s.begin(ctx); err != nil {
		return err
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = s.adapter.QuoteIdentifier(col)
	}

	chunk := s.adapter.RowsPerStatement(len(columns))
	for start := 0; start < len(rows); start += chunk {
		end := start + chunk
		if end > len(rows) {
			end = len(rows)
		}

		builder := s.adapter.StatementBuilder().
			Insert(s.adapter.QualifiedTableName(table)).
			Columns(quoted...)
		for _, row := range rows[start:end] {
			if len(row) != len(columns) {
				return fmt.Errorf("row has %d values, expected %d for %s", len(row), len(columns), table)
			}
			builder = builder.Values(row...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		if _, err := s.tx.ExecContext(ctx, query, args...); err != nil {
			return wrap(fmt.Sprintf("insert into %s", table), err)
		}
	}

	s.logger.Debug("batch inserted",
		zap.String("table", table),
		zap.Int("rows", len(rows)),
		zap.Int("rows_per_statement", chunk))
	return nil
}

// Commit makes everything written since the previous commit durable.
// Committing with nothing pending is a no-op.
func (s *Session) Commit(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return wrap("commit", err)
	}
	s.logger.Debug("transaction committed")
	return nil
}

func (s *Session) Rollback() error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Rollback(); err != nil {
		return wrap("rollback", err)
	}
	s.logger.Debug("transaction rolled back")
	return nil
}

// Close rolls back anything uncommitted. The adapter stays open; its owner closes it.
func (s *Session) Close() error {
	return s.Rollback()
}

func (s *Session) begin(ctx context.Context) error {
	if s.tx != nil {
		return nil
	}
	tx, err := s.adapter.DB().BeginTxx(ctx, nil)
	if err != nil {
		return wrap("begin transaction", err)
	}
	s.tx = tx
	return nil
}
