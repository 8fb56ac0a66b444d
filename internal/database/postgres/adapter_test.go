package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rana718/uatgen/internal/types"
)

func TestGenerateCreateTableSQL(t *testing.T) {
	table := types.SchemaTable{
		Name: "Products",
		Columns: []types.SchemaColumn{
			{Name: "ProductID", Type: "int", IsPrimary: true, IsAutoIncrement: true},
			{Name: "UnitPrice", Type: "money", Nullable: true},
			{Name: "CreatedDate", Type: "datetime", Nullable: true},
		},
	}

	want := "CREATE TABLE \"Products\" (\n" +
		"  \"ProductID\" SERIAL PRIMARY KEY,\n" +
		"  \"UnitPrice\" NUMERIC(19,4),\n" +
		"  \"CreatedDate\" TIMESTAMP\n" +
		");"
	assert.Equal(t, want, New().GenerateCreateTableSQL(table))
}

func TestGenerateDropTableSQL(t *testing.T) {
	assert.Equal(t, `DROP TABLE IF EXISTS "Customers";`, New().GenerateDropTableSQL("Customers"))
}

func TestMapColumnType(t *testing.T) {
	a := New()
	assert.Equal(t, "VARCHAR(150)", a.MapColumnType("varchar(150)"))
	assert.Equal(t, "BOOLEAN", a.MapColumnType("bool"))
}
