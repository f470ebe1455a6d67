package insighting

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"io"

	"github.com/vfg2006/sales-insights/internal/domain"
)

// Loader lê o arquivo de entrada para uma tabela bruta
type Loader interface {
	Load(path string) (*domain.RawTable, error)
}

// Cleaner descarta linhas malformadas e converte a tabela em vendas
type Cleaner interface {
	Clean(raw *domain.RawTable) (*domain.SalesTable, *domain.CleaningReport, error)
}

// Aggregator agrupa as vendas por produto e por mês
type Aggregator interface {
	Aggregate(table *domain.SalesTable) *domain.Aggregates
}

// Reporter formata o resumo em texto e exporta o relatório
type Reporter interface {
	Render(w io.Writer, report *domain.InsightReport) error
	WriteJSON(path string, report *domain.InsightReport) error
}

// Visualizer gera os gráficos e retorna o caminho de cada arquivo
type Visualizer interface {
	RenderTopProducts(products []domain.RankedProduct) (string, error)
	RenderMonthlyTrend(months []domain.MonthlyAggregate) (string, error)
}
