package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-insights/internal/domain"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "Sem erro", err: nil, expected: OK},
		{name: "Erro de carga", err: domain.NewLoadError("x.csv", domain.ErrFileNotFound, ""), expected: LoadFailed},
		{name: "Erro de esquema encapsulado", err: fmt.Errorf("clean: %w", &domain.SchemaError{Missing: []domain.Column{domain.ColumnPrice}}), expected: SchemaError},
		{name: "Erro de renderização", err: domain.NewRenderError("monthly_trend", domain.ErrNothingToPlot, ""), expected: RenderError},
		{name: "Erro genérico", err: errors.New("boom"), expected: Failure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromError(tt.err))
		})
	}
}
