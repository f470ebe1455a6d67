package domain

import "strings"

// Column identifica uma coluna lógica da planilha de vendas
type Column string

const (
	ColumnProduct  Column = "product"
	ColumnQuantity Column = "quantity"
	ColumnPrice    Column = "price"
	ColumnDate     Column = "date"
)

// RequiredColumns lista as colunas obrigatórias na ordem em que são reportadas
var RequiredColumns = []Column{ColumnProduct, ColumnQuantity, ColumnPrice, ColumnDate}

// FileFormat indica de onde a tabela foi lida
type FileFormat string

const (
	FormatCSV  FileFormat = "csv"
	FormatXLSX FileFormat = "xlsx"
)

// RawTable representa o conteúdo bruto do arquivo, antes de qualquer conversão
type RawTable struct {
	Source  string
	Format  FileFormat
	Header  []string
	Rows    [][]string
	Columns map[Column]int // índice de cada coluna reconhecida no cabeçalho
}

// Cell retorna o valor da coluna na linha, ou "" se a coluna ou a célula não existirem
func (t *RawTable) Cell(row []string, column Column) string {
	idx, ok := t.Columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// MissingColumns retorna as colunas obrigatórias ausentes do cabeçalho
func (t *RawTable) MissingColumns() []Column {
	missing := make([]Column, 0)
	for _, column := range RequiredColumns {
		if _, ok := t.Columns[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing
}
