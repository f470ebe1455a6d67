// Package reporting formata o resumo textual das vendas
package reporting

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-insights/internal/config"
	"github.com/vfg2006/sales-insights/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const ruleWidth = 60

type Service struct {
	topN    int
	printer *message.Printer
}

func NewService(cfg *config.Config) *Service {
	return NewServiceWithTopN(cfg.Report.TopN)
}

func NewServiceWithTopN(topN int) *Service {
	return &Service{
		topN:    topN,
		printer: message.NewPrinter(language.English),
	}
}

// Render escreve o relatório em texto; não falha com tabela vazia
func (s *Service) Render(w io.Writer, report *domain.InsightReport) error {
	b := &strings.Builder{}
	rule := strings.Repeat("=", ruleWidth)

	fmt.Fprintln(b, rule)
	fmt.Fprintln(b, "BASIC SALES ANALYSIS REPORT")
	fmt.Fprintln(b, rule)

	if report.Source != "" {
		fmt.Fprintf(b, "Source file             : %s\n", report.Source)
	}

	if report.Cleaning != nil {
		fmt.Fprintf(b, "Rows read               : %d\n", report.Cleaning.TotalRows)
		fmt.Fprintf(b, "Rows kept               : %d\n", report.Cleaning.KeptRows)
		fmt.Fprintf(b, "Rows discarded          : %d\n", report.Cleaning.Discarded)
		for _, reason := range domain.DiscardReasons {
			if count := report.Cleaning.ByReason[reason]; count > 0 {
				fmt.Fprintf(b, "  - %-20s: %d\n", reason, count)
			}
		}
	}
	fmt.Fprintln(b)

	stats := report.Stats
	fmt.Fprintf(b, "Total rows (order lines): %d\n", stats.TotalRows)
	fmt.Fprintf(b, "Total revenue           : %s\n", s.money(stats.TotalRevenue))
	fmt.Fprintf(b, "Total quantity          : %s\n", s.printer.Sprintf("%d", stats.TotalQuantity))
	fmt.Fprintf(b, "Average order value     : %s\n", s.money(stats.AverageOrderValue))
	fmt.Fprintf(b, "Unique products         : %d\n", stats.UniqueProducts)
	fmt.Fprintln(b)

	top := report.Products
	if s.topN > 0 && len(top) > s.topN {
		top = top[:s.topN]
	}

	if len(top) == 0 {
		fmt.Fprintln(b, "Top products by total sales: no data")
	} else {
		fmt.Fprintf(b, "Top %d products by total sales:\n", len(top))
		for _, product := range top {
			fmt.Fprintf(b, "%d. %s: %s (qty %d)\n", product.Position, product.Product, s.money(product.Revenue), product.Quantity)
		}
	}
	fmt.Fprintln(b)

	if report.BestMonth == nil || report.WorstMonth == nil {
		fmt.Fprintln(b, "Monthly sales summary: no data")
	} else {
		fmt.Fprintln(b, "Monthly sales summary:")
		fmt.Fprintf(b, "- Best month : %s  (Sales: %s)\n", report.BestMonth.Period, s.money(report.BestMonth.Revenue))
		fmt.Fprintf(b, "- Worst month: %s (Sales: %s)\n", report.WorstMonth.Period, s.money(report.WorstMonth.Revenue))
	}
	fmt.Fprintln(b)

	fmt.Fprintln(b, "End of report.")
	fmt.Fprintln(b, rule)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "erro ao escrever relatório")
	}

	return nil
}

// WriteJSON exporta o relatório completo para o caminho informado
func (s *Service) WriteJSON(path string, report *domain.InsightReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "erro ao serializar relatório")
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "erro ao criar diretório %s", dir)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "erro ao gravar relatório em %s", path)
	}

	return nil
}

// money formata o valor com duas casas a partir do decimal exato, sem passar por float64
func (s *Service) money(value decimal.Decimal) string {
	fixed := value.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}

	integer, fraction, _ := strings.Cut(fixed, ".")
	return sign + groupThousands(integer) + "." + fraction
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	b := &strings.Builder{}
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
