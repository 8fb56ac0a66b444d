package types

type SchemaTable struct {
	Name    string
	Columns []SchemaColumn
}

type SchemaColumn struct {
	Name            string
	Type            string // logical type: int, varchar(n), text, money, datetime, bool
	Nullable        bool
	IsPrimary       bool
	IsAutoIncrement bool
}

// ColumnNames returns the names of the columns the application writes,
// skipping identity columns the store assigns itself.
func (t SchemaTable) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		if col.IsPrimary && col.IsAutoIncrement {
			continue
		}
		names = append(names, col.Name)
	}
	return names
}
