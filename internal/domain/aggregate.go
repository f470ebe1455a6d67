package domain

import (
	"github.com/shopspring/decimal"
)

// PeriodLayout é o formato de mês usado nos agregados mensais (yyyy-mm)
const PeriodLayout = "2006-01"

// ProductAggregate representa o total de vendas de um produto
type ProductAggregate struct {
	Product    string          `json:"product"`
	Revenue    decimal.Decimal `json:"revenue"`
	Quantity   int64           `json:"quantity"`
	OrderLines int             `json:"order_lines"`
}

// MonthlyAggregate representa o total de vendas de um mês
type MonthlyAggregate struct {
	Period     string          `json:"period"` // Período no formato yyyy-mm
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Revenue    decimal.Decimal `json:"revenue"`
	Quantity   int64           `json:"quantity"`
	OrderLines int             `json:"order_lines"`
}

// SalesStats são as métricas gerais da tabela limpa
type SalesStats struct {
	TotalRows         int             `json:"total_rows"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalQuantity     int64           `json:"total_quantity"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	UniqueProducts    int             `json:"unique_products"`
}

// Aggregates reúne os agregados por produto e por mês
type Aggregates struct {
	Products []ProductAggregate `json:"products"`
	Months   []MonthlyAggregate `json:"months"`
	Stats    SalesStats         `json:"stats"`
}

// RankedProduct é um produto com sua posição no ranking de receita
type RankedProduct struct {
	Position int `json:"position"`
	ProductAggregate
}
