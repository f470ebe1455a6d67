package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadError(t *testing.T) {
	err := NewLoadError("data/sales.csv", ErrFileNotFound, "")

	assert.Equal(t, "load data/sales.csv: file not found", err.Error())
	assert.True(t, errors.Is(err, ErrFileNotFound))

	withDetails := NewLoadError("data/sales.ods", ErrUnsupportedFormat, "extension .ods")
	assert.Equal(t, "load data/sales.ods: unsupported file format: extension .ods", withDetails.Error())
}

func TestSchemaError(t *testing.T) {
	err := &SchemaError{Missing: []Column{ColumnPrice, ColumnDate}}

	assert.Equal(t, "required column is missing: price, date", err.Error())
	assert.True(t, errors.Is(err, ErrMissingColumn))

	var schemaErr *SchemaError
	wrapped := errors.Join(errors.New("clean"), err)
	assert.True(t, errors.As(wrapped, &schemaErr))
	assert.Equal(t, []Column{ColumnPrice, ColumnDate}, schemaErr.Missing)
}

func TestRenderError(t *testing.T) {
	err := NewRenderError("top_products", ErrNothingToPlot, "no products")

	assert.Equal(t, "render top_products: nothing to plot: no products", err.Error())
	assert.True(t, errors.Is(err, ErrNothingToPlot))
}

func TestSaleLineTotal(t *testing.T) {
	sale := Sale{Product: "A", Quantity: 3}
	sale.UnitPrice = mustDecimal(t, "10.25")

	assert.Equal(t, "30.75", sale.LineTotal().StringFixed(2))
}
