package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Erros base do pipeline
var (
	// Erros de carga
	ErrFileNotFound      = errors.New("file not found")
	ErrFileUnreadable    = errors.New("file is unreadable")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file has no rows")
	ErrHeaderNotFound    = errors.New("no recognizable header row")

	// Erros de esquema
	ErrMissingColumn = errors.New("required column is missing")

	// Erros de renderização
	ErrNothingToPlot = errors.New("nothing to plot")
	ErrChartWrite    = errors.New("error writing chart")
)

// LoadError indica que o arquivo de entrada não pôde ser carregado
type LoadError struct {
	Path    string // Arquivo envolvido
	Err     error  // Erro base
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load %s: %s", e.Path, e.Err.Error())
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

// Unwrap retorna o erro subjacente
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError cria um novo LoadError
func NewLoadError(path string, err error, details string) *LoadError {
	return &LoadError{
		Path:    path,
		Err:     err,
		Details: details,
	}
}

// SchemaError indica que colunas obrigatórias estão ausentes
type SchemaError struct {
	Missing []Column
}

// Error implementa a interface error
func (e *SchemaError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, column := range e.Missing {
		names = append(names, string(column))
	}
	return fmt.Sprintf("%s: %s", ErrMissingColumn.Error(), strings.Join(names, ", "))
}

// Unwrap retorna o erro base de esquema
func (e *SchemaError) Unwrap() error {
	return ErrMissingColumn
}

// RenderError indica que um gráfico não pôde ser gerado
type RenderError struct {
	Chart   string // Nome do gráfico
	Err     error  // Erro base
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *RenderError) Error() string {
	msg := fmt.Sprintf("render %s: %s", e.Chart, e.Err.Error())
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

// Unwrap retorna o erro subjacente
func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError cria um novo RenderError
func NewRenderError(chart string, err error, details string) *RenderError {
	return &RenderError{
		Chart:   chart,
		Err:     err,
		Details: details,
	}
}
