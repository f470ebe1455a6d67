package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawTable_Cell(t *testing.T) {
	table := &RawTable{
		Header:  []string{"product", "quantity"},
		Columns: map[Column]int{ColumnProduct: 0, ColumnQuantity: 1},
	}

	assert.Equal(t, "A", table.Cell([]string{" A ", "2"}, ColumnProduct))
	assert.Equal(t, "", table.Cell([]string{"A"}, ColumnQuantity))
	assert.Equal(t, "", table.Cell([]string{"A", "2"}, ColumnPrice))
}

func TestRawTable_MissingColumns(t *testing.T) {
	table := &RawTable{
		Columns: map[Column]int{ColumnProduct: 0, ColumnQuantity: 1},
	}

	assert.Equal(t, []Column{ColumnPrice, ColumnDate}, table.MissingColumns())

	table.Columns[ColumnPrice] = 2
	table.Columns[ColumnDate] = 3
	assert.Empty(t, table.MissingColumns())
}
