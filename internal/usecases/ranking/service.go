package ranking

import (
	"sort"

	"github.com/vfg2006/sales-insights/internal/domain"
)

type RankingService interface {
	TopProducts(products []domain.ProductAggregate, n int) []domain.RankedProduct
	BestMonth(months []domain.MonthlyAggregate) *domain.MonthlyAggregate
	WorstMonth(months []domain.MonthlyAggregate) *domain.MonthlyAggregate
}

type SalesRankingService struct{}

func NewSalesRankingService() *SalesRankingService {
	return &SalesRankingService{}
}

// TopProducts ordena por receita decrescente e mantém os n primeiros.
// Empates preservam a ordem de primeira aparição; n <= 0 retorna todos.
func (s *SalesRankingService) TopProducts(products []domain.ProductAggregate, n int) []domain.RankedProduct {
	sorted := make([]domain.ProductAggregate, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Revenue.GreaterThan(sorted[j].Revenue)
	})

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	ranked := make([]domain.RankedProduct, 0, len(sorted))
	for i, product := range sorted {
		ranked = append(ranked, domain.RankedProduct{
			Position:         i + 1,
			ProductAggregate: product,
		})
	}

	return ranked
}

// BestMonth retorna o mês de maior receita; o mais antigo vence empates
func (s *SalesRankingService) BestMonth(months []domain.MonthlyAggregate) *domain.MonthlyAggregate {
	if len(months) == 0 {
		return nil
	}

	best := months[0]
	for _, month := range months[1:] {
		if month.Revenue.GreaterThan(best.Revenue) {
			best = month
		}
	}

	return &best
}

// WorstMonth retorna o mês de menor receita; o mais antigo vence empates
func (s *SalesRankingService) WorstMonth(months []domain.MonthlyAggregate) *domain.MonthlyAggregate {
	if len(months) == 0 {
		return nil
	}

	worst := months[0]
	for _, month := range months[1:] {
		if month.Revenue.LessThan(worst.Revenue) {
			worst = month
		}
	}

	return &worst
}
