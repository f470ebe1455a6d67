// Package aggregating agrupa as vendas limpas por produto e por mês
package aggregating

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-insights/internal/domain"
	"github.com/vfg2006/sales-insights/pkg/utils"
)

// Estrutura para acumular os valores de uma chave durante o agrupamento
type accumulator struct {
	revenue    decimal.Decimal
	quantity   int64
	orderLines int
}

func (a *accumulator) add(sale domain.Sale) {
	a.revenue = a.revenue.Add(sale.LineTotal())
	a.quantity += sale.Quantity
	a.orderLines++
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Aggregate calcula os agregados por produto (ordem de primeira aparição),
// por mês (ordem cronológica) e as métricas gerais
func (s *Service) Aggregate(table *domain.SalesTable) *domain.Aggregates {
	productOrder := make([]string, 0)
	byProduct := make(map[string]*accumulator)
	byPeriod := make(map[string]*accumulator)
	periodDates := make(map[string]domain.Sale)
	total := &accumulator{revenue: decimal.Zero}

	if table != nil {
		for _, sale := range table.Sales {
			productAcc, exists := byProduct[sale.Product]
			if !exists {
				productAcc = &accumulator{revenue: decimal.Zero}
				byProduct[sale.Product] = productAcc
				productOrder = append(productOrder, sale.Product)
			}
			productAcc.add(sale)

			period := sale.Period()
			periodAcc, exists := byPeriod[period]
			if !exists {
				periodAcc = &accumulator{revenue: decimal.Zero}
				byPeriod[period] = periodAcc
				periodDates[period] = sale
			}
			periodAcc.add(sale)

			total.add(sale)
		}
	}

	products := make([]domain.ProductAggregate, 0, len(productOrder))
	for _, product := range productOrder {
		acc := byProduct[product]
		products = append(products, domain.ProductAggregate{
			Product:    product,
			Revenue:    acc.revenue,
			Quantity:   acc.quantity,
			OrderLines: acc.orderLines,
		})
	}

	periods := make([]string, 0, len(byPeriod))
	for period := range byPeriod {
		periods = append(periods, period)
	}
	sort.Strings(periods)

	months := make([]domain.MonthlyAggregate, 0, len(periods))
	for _, period := range periods {
		acc := byPeriod[period]
		date := periodDates[period].Date
		months = append(months, domain.MonthlyAggregate{
			Period:     period,
			Year:       date.Year(),
			Month:      int(date.Month()),
			Revenue:    acc.revenue,
			Quantity:   acc.quantity,
			OrderLines: acc.orderLines,
		})
	}

	averageOrderValue := decimal.Zero
	if total.orderLines > 0 {
		averageOrderValue = total.revenue.Div(decimal.NewFromInt(int64(total.orderLines)))
	}

	aggregates := &domain.Aggregates{
		Products: products,
		Months:   months,
		Stats: domain.SalesStats{
			TotalRows:         total.orderLines,
			TotalRevenue:      total.revenue,
			TotalQuantity:     total.quantity,
			AverageOrderValue: utils.RoundWithTwoDecimalPlace(averageOrderValue),
			UniqueProducts:    len(products),
		},
	}

	logrus.WithFields(logrus.Fields{
		"products": len(products),
		"months":   len(months),
		"revenue":  total.revenue.StringFixed(2),
	}).Debug("Agregação de vendas concluída")

	return aggregates
}
