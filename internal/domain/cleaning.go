package domain

// DiscardReason explica por que uma linha foi descartada na limpeza
type DiscardReason string

const (
	DiscardEmptyRow        DiscardReason = "empty_row"
	DiscardMissingProduct  DiscardReason = "missing_product"
	DiscardInvalidQuantity DiscardReason = "invalid_quantity"
	DiscardInvalidPrice    DiscardReason = "invalid_price"
	DiscardInvalidDate     DiscardReason = "invalid_date"
)

// DiscardReasons na ordem usada pelo relatório
var DiscardReasons = []DiscardReason{
	DiscardEmptyRow,
	DiscardMissingProduct,
	DiscardInvalidQuantity,
	DiscardInvalidPrice,
	DiscardInvalidDate,
}

// CleaningReport resume o resultado da limpeza
type CleaningReport struct {
	TotalRows int                   `json:"total_rows"`
	KeptRows  int                   `json:"kept_rows"`
	Discarded int                   `json:"discarded"`
	ByReason  map[DiscardReason]int `json:"by_reason"`
}

func NewCleaningReport() *CleaningReport {
	return &CleaningReport{
		ByReason: make(map[DiscardReason]int),
	}
}

// Discard contabiliza uma linha descartada
func (r *CleaningReport) Discard(reason DiscardReason) {
	r.Discarded++
	r.ByReason[reason]++
}
