package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Rana718/uatgen/internal/types"
)

func openSQLite(t *testing.T) DatabaseAdapter {
	t.Helper()
	adapter := NewAdapter("sqlite")
	require.NoError(t, adapter.Connect(context.Background(), filepath.Join(t.TempDir(), "session.db")))
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

var widgets = types.SchemaTable{
	Name: "Widgets",
	Columns: []types.SchemaColumn{
		{Name: "WidgetID", Type: "int", IsPrimary: true, IsAutoIncrement: true},
		{Name: "Label", Type: "varchar(20)", Nullable: true},
		{Name: "Qty", Type: "int", Nullable: true},
	},
}

func createWidgets(t *testing.T, s *Session) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Exec(ctx, s.Adapter().GenerateDropTableSQL(widgets.Name)))
	require.NoError(t, s.Exec(ctx, s.Adapter().GenerateCreateTableSQL(widgets)))
}

func countWidgets(t *testing.T, adapter DatabaseAdapter) int {
	t.Helper()
	var n int
	require.NoError(t, adapter.DB().Get(&n, `SELECT COUNT(*) FROM "Widgets"`))
	return n
}

func TestSessionInsertBatchCommits(t *testing.T) {
	adapter := openSQLite(t)
	s := NewSession(adapter, zaptest.NewLogger(t))
	ctx := context.Background()
	createWidgets(t, s)

	rows := [][]interface{}{{"a", 1}, {nil, 2}, {"c", -3}}
	require.NoError(t, s.InsertBatch(ctx, "Widgets", widgets.ColumnNames(), rows))
	require.NoError(t, s.Commit(ctx))

	assert.Equal(t, 3, countWidgets(t, adapter))

	var ids []int
	require.NoError(t, adapter.DB().Select(&ids, `SELECT "WidgetID" FROM "Widgets" ORDER BY "WidgetID"`))
	assert.Equal(t, []int{1, 2, 3}, ids, "identity starts at 1 and follows insertion order")
}

func TestSessionCloseRollsBackUncommittedRows(t *testing.T) {
	adapter := openSQLite(t)
	s := NewSession(adapter, nil)
	ctx := context.Background()
	createWidgets(t, s)

	require.NoError(t, s.InsertBatch(ctx, "Widgets", widgets.ColumnNames(), [][]interface{}{{"a", 1}}))
	require.NoError(t, s.Commit(ctx))
	require.NoError(t, s.InsertBatch(ctx, "Widgets", widgets.ColumnNames(), [][]interface{}{{"b", 2}}))
	require.NoError(t, s.Close())

	assert.Equal(t, 1, countWidgets(t, adapter))
}

func TestSessionSplitsLargeBatches(t *testing.T) {
	adapter := openSQLite(t)
	s := NewSession(adapter, nil)
	ctx := context.Background()
	createWidgets(t, s)

	perStatement := adapter.RowsPerStatement(2)
	total := perStatement*2 + 7
	rows := make([][]interface{}, total)
	for i := range rows {
		rows[i] = []interface{}{"w", i}
	}

	require.NoError(t, s.InsertBatch(ctx, "Widgets", widgets.ColumnNames(), rows))
	require.NoError(t, s.Commit(ctx))
	assert.Equal(t, total, countWidgets(t, adapter))

	var last int
	require.NoError(t, adapter.DB().Get(&last, `SELECT "Qty" FROM "Widgets" WHERE "WidgetID" = ?`, total))
	assert.Equal(t, total-1, last, "row order survives statement splitting")
}

func TestSessionRejectsRaggedRows(t *testing.T) {
	adapter := openSQLite(t)
	s := NewSession(adapter, nil)
	ctx := context.Background()
	createWidgets(t, s)
	defer s.Close()

	err := s.InsertBatch(ctx, "Widgets", widgets.ColumnNames(), [][]interface{}{{"only-one"}})
	assert.Error(t, err)
}

func TestSessionWrapsDriverErrors(t *testing.T) {
	adapter := openSQLite(t)
	s := NewSession(adapter, nil)
	defer s.Close()

	err := s.InsertBatch(context.Background(), "Missing", []string{"A"}, [][]interface{}{{1}})
	assert.True(t, IsDatabaseError(err))
}

func TestCommitWithoutTransactionIsNoop(t *testing.T) {
	s := NewSession(openSQLite(t), nil)
	assert.NoError(t, s.Commit(context.Background()))
	assert.NoError(t, s.Rollback())
}

func TestSessionGetReadsInsideOpenTransaction(t *testing.T) {
	adapter := openSQLite(t)
	s := NewSession(adapter, nil)
	ctx := context.Background()
	createWidgets(t, s)
	defer s.Close()

	require.NoError(t, s.InsertBatch(ctx, "Widgets", widgets.ColumnNames(), [][]interface{}{{"a", 1}, {"b", 2}}))

	var n int
	require.NoError(t, s.Get(ctx, &n, `SELECT COUNT(*) FROM "Widgets"`))
	assert.Equal(t, 2, n)

	err := s.Get(ctx, &n, `SELECT COUNT(*) FROM "Nope"`)
	assert.True(t, IsDatabaseError(err))
}
