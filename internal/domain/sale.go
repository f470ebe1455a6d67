package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa uma linha de venda já limpa
type Sale struct {
	Product   string
	Quantity  int64
	UnitPrice decimal.Decimal
	Date      time.Time
}

// LineTotal retorna quantidade × preço unitário
func (s Sale) LineTotal() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(s.Quantity))
}

// Period retorna o mês da venda no formato yyyy-mm
func (s Sale) Period() string {
	return s.Date.Format(PeriodLayout)
}

// SalesTable é a sequência ordenada de vendas após a limpeza
type SalesTable struct {
	Source string
	Sales  []Sale
}

func (t *SalesTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Sales)
}
