package domain

import "time"

// InsightReport é o resultado completo de uma execução do pipeline
type InsightReport struct {
	RunID       string             `json:"run_id"`
	Source      string             `json:"source"`
	GeneratedAt time.Time          `json:"generated_at"`
	Cleaning    *CleaningReport    `json:"cleaning"`
	Stats       SalesStats         `json:"stats"`
	Products    []RankedProduct    `json:"products"` // Ranking completo por receita
	Months      []MonthlyAggregate `json:"months"`
	BestMonth   *MonthlyAggregate  `json:"best_month,omitempty"`
	WorstMonth  *MonthlyAggregate  `json:"worst_month,omitempty"`
	Charts      []string           `json:"charts,omitempty"`
}
