// Package cleaning converte a tabela bruta em vendas válidas, descartando linhas malformadas
package cleaning

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-insights/internal/config"
	"github.com/vfg2006/sales-insights/internal/domain"
	"github.com/vfg2006/sales-insights/pkg/utils"
	"github.com/xuri/excelize/v2"
)

type Service struct {
	dateLayouts []string
}

func NewService(cfg *config.Config) *Service {
	return NewServiceWithLayouts(cfg.Parsing.DateLayouts)
}

func NewServiceWithLayouts(layouts []string) *Service {
	return &Service{dateLayouts: layouts}
}

// Clean valida cada linha e retorna apenas as vendas válidas, na ordem original
func (s *Service) Clean(raw *domain.RawTable) (*domain.SalesTable, *domain.CleaningReport, error) {
	if missing := raw.MissingColumns(); len(missing) > 0 {
		return nil, nil, &domain.SchemaError{Missing: missing}
	}

	report := domain.NewCleaningReport()
	table := &domain.SalesTable{
		Source: raw.Source,
		Sales:  make([]domain.Sale, 0, len(raw.Rows)),
	}

	for _, row := range raw.Rows {
		report.TotalRows++

		sale, reason, ok := s.parseRow(raw, row)
		if !ok {
			report.Discard(reason)
			continue
		}

		table.Sales = append(table.Sales, sale)
	}

	report.KeptRows = len(table.Sales)

	fields := logrus.Fields{
		"file":           raw.Source,
		"rows_total":     report.TotalRows,
		"rows_kept":      report.KeptRows,
		"rows_discarded": report.Discarded,
	}
	for reason, count := range report.ByReason {
		fields["discarded_"+string(reason)] = count
	}
	logrus.WithFields(fields).Info("Limpeza de vendas concluída")

	return table, report, nil
}

func (s *Service) parseRow(raw *domain.RawTable, row []string) (domain.Sale, domain.DiscardReason, bool) {
	if isBlank(row) {
		return domain.Sale{}, domain.DiscardEmptyRow, false
	}

	product := raw.Cell(row, domain.ColumnProduct)
	if product == "" {
		return domain.Sale{}, domain.DiscardMissingProduct, false
	}

	quantity, ok := parseQuantity(raw.Cell(row, domain.ColumnQuantity))
	if !ok {
		return domain.Sale{}, domain.DiscardInvalidQuantity, false
	}

	price, ok := parsePrice(raw.Cell(row, domain.ColumnPrice))
	if !ok {
		return domain.Sale{}, domain.DiscardInvalidPrice, false
	}

	date, ok := s.parseDate(raw.Cell(row, domain.ColumnDate), raw.Format)
	if !ok {
		return domain.Sale{}, domain.DiscardInvalidDate, false
	}

	return domain.Sale{
		Product:   product,
		Quantity:  quantity,
		UnitPrice: price,
		Date:      date,
	}, "", true
}

// parseQuantity aceita inteiros não negativos, inclusive na forma "2.0"
func parseQuantity(value string) (int64, bool) {
	if value == "" {
		return 0, false
	}

	if quantity, err := strconv.ParseInt(value, 10, 64); err == nil {
		return quantity, quantity >= 0
	}

	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() || !d.Equal(d.Truncate(0)) {
		return 0, false
	}

	// Valores fora do intervalo de int64 seriam truncados por IntPart
	quantity := d.BigInt()
	if !quantity.IsInt64() {
		return 0, false
	}

	return quantity.Int64(), true
}

func parsePrice(value string) (decimal.Decimal, bool) {
	if value == "" {
		return decimal.Zero, false
	}

	price, err := decimal.NewFromString(value)
	if err != nil || price.IsNegative() {
		return decimal.Zero, false
	}

	return price, true
}

func (s *Service) parseDate(value string, format domain.FileFormat) (time.Time, bool) {
	date, err := utils.ParseDate(value, s.dateLayouts)
	if err == nil {
		return date, true
	}

	// Planilhas podem trazer a data como número serial
	if format == domain.FormatXLSX {
		serial, err := strconv.ParseFloat(value, 64)
		if err != nil || serial <= 0 {
			return time.Time{}, false
		}
		date, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return date, true
	}

	return time.Time{}, false
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
