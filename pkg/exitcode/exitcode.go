package exitcode

import (
	"errors"

	"github.com/vfg2006/sales-insights/internal/domain"
)

// Códigos de saída do processo
const (
	OK          = 0
	Failure     = 1 // Configuração ou erro inesperado
	LoadFailed  = 2 // Arquivo ausente, ilegível ou em formato errado
	SchemaError = 3 // Coluna obrigatória ausente
	RenderError = 4 // Nada para plotar ou falha ao gravar gráfico
)

// FromError converte um erro do pipeline no código de saída correspondente
func FromError(err error) int {
	if err == nil {
		return OK
	}

	var (
		loadErr   *domain.LoadError
		schemaErr *domain.SchemaError
		renderErr *domain.RenderError
	)

	switch {
	case errors.As(err, &loadErr):
		return LoadFailed
	case errors.As(err, &schemaErr):
		return SchemaError
	case errors.As(err, &renderErr):
		return RenderError
	default:
		return Failure
	}
}
