package tabular_test

import (
	"testing"
	"time"

	"tablediff/core/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{"Unique", []string{"id", "name"}, []string{"id", "name"}},
		{"Blank", []string{"id", ""}, []string{"id", "Unnamed: 1"}},
		{"Repeated", []string{"a", "a", "a"}, []string{"a", "a.1", "a.2"}},
		{"SuffixCollision", []string{"a", "a.1", "a"}, []string{"a", "a.1", "a.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tabular.NormalizeHeader(tt.header))
		})
	}
}

func TestFromRecords(t *testing.T) {
	t.Run("PadsShortRows", func(t *testing.T) {
		tbl, err := tabular.FromRecords("a.csv", "delimited file", []string{"id", "val"}, [][]string{
			{"1", "x"},
			{"2"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, tbl.Len())
		assert.Equal(t, []string{"id", "val"}, tbl.ColumnNames())

		col, ok := tbl.Column("val")
		require.True(t, ok)
		assert.True(t, col.Cells[1].IsNull())
	})

	t.Run("RejectsLongRows", func(t *testing.T) {
		_, err := tabular.FromRecords("a.csv", "", []string{"id"}, [][]string{{"1", "extra"}})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		tbl, err := tabular.FromRecords("a.csv", "", []string{"id"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, 0, tbl.Index("id"))
		assert.Equal(t, -1, tbl.Index("missing"))
	})
}

func TestFromCells(t *testing.T) {
	tbl, err := tabular.FromCells("book.xlsx", "Jan", []string{"id", "", "id"}, [][]tabular.Cell{
		{tabular.Number(1), tabular.Text("x")},
		{tabular.Number(2), tabular.Null(), tabular.Date(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "Unnamed: 1", "id.1"}, tbl.ColumnNames())
	assert.Equal(t, "Jan", tbl.Partition)

	col, _ := tbl.Column("id.1")
	assert.True(t, col.Cells[0].IsNull())
	assert.Equal(t, tabular.KindDate, col.Cells[1].Kind())

	_, err = tabular.FromCells("book.xlsx", "Jan", []string{"id"}, [][]tabular.Cell{{tabular.Number(1), tabular.Number(2)}})
	assert.ErrorContains(t, err, "row 2")
}
