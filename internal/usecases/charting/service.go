// Package charting gera os gráficos de produtos e de tendência mensal
package charting

import (
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-insights/internal/config"
	"github.com/vfg2006/sales-insights/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	TopProductsChart   = "top_products"
	MonthlyTrendChart  = "monthly_trend"
	labelRotation      = math.Pi / 4
	barWidthPoints     = 20
	maxLabelCharacters = 24
)

type Options struct {
	OutputDir string
	Format    string
	TopN      int
	Width     vg.Length
	Height    vg.Length
}

type Service struct {
	opts Options
}

func NewService(cfg *config.Config) *Service {
	return NewServiceWithOptions(Options{
		OutputDir: cfg.Chart.OutputDir,
		Format:    cfg.Chart.Format,
		TopN:      cfg.Chart.TopN,
		Width:     vg.Length(cfg.Chart.WidthInches) * vg.Inch,
		Height:    vg.Length(cfg.Chart.HeightInches) * vg.Inch,
	})
}

func NewServiceWithOptions(opts Options) *Service {
	if opts.Format == "" {
		opts.Format = "png"
	}
	if opts.Width <= 0 {
		opts.Width = 10 * vg.Inch
	}
	if opts.Height <= 0 {
		opts.Height = 5 * vg.Inch
	}
	return &Service{opts: opts}
}

// RenderTopProducts gera o gráfico de barras dos produtos de maior receita
func (s *Service) RenderTopProducts(products []domain.RankedProduct) (string, error) {
	if len(products) == 0 {
		return "", domain.NewRenderError(TopProductsChart, domain.ErrNothingToPlot, "nenhum produto agregado")
	}

	if s.opts.TopN > 0 && len(products) > s.opts.TopN {
		products = products[:s.opts.TopN]
	}

	values := make(plotter.Values, len(products))
	names := make([]string, len(products))
	for i, product := range products {
		values[i] = product.Revenue.InexactFloat64()
		names[i] = shorten(product.Product)
	}

	p := plot.New()
	p.Title.Text = "Top Products by Total Sales"
	p.X.Label.Text = "Product"
	p.Y.Label.Text = "Total Sales"
	p.Y.Min = 0
	rotateLabels(p)

	bars, err := plotter.NewBarChart(values, vg.Points(barWidthPoints))
	if err != nil {
		return "", domain.NewRenderError(TopProductsChart, domain.ErrChartWrite, err.Error())
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(0)

	p.Add(plotter.NewGrid(), bars)
	p.NominalX(names...)

	return s.save(p, TopProductsChart)
}

// RenderMonthlyTrend gera o gráfico de linha da receita mensal
func (s *Service) RenderMonthlyTrend(months []domain.MonthlyAggregate) (string, error) {
	if len(months) == 0 {
		return "", domain.NewRenderError(MonthlyTrendChart, domain.ErrNothingToPlot, "nenhum mês agregado")
	}

	points := make(plotter.XYs, len(months))
	periods := make([]string, len(months))
	for i, month := range months {
		points[i].X = float64(i)
		points[i].Y = month.Revenue.InexactFloat64()
		periods[i] = month.Period
	}

	p := plot.New()
	p.Title.Text = "Monthly Sales Trend"
	p.X.Label.Text = "Year-Month"
	p.Y.Label.Text = "Total Sales"
	p.Y.Min = 0
	rotateLabels(p)

	line, markers, err := plotter.NewLinePoints(points)
	if err != nil {
		return "", domain.NewRenderError(MonthlyTrendChart, domain.ErrChartWrite, err.Error())
	}
	markers.Shape = draw.CircleGlyph{}
	line.Color = plotutil.Color(0)
	markers.Color = plotutil.Color(0)

	p.Add(plotter.NewGrid(), line, markers)
	p.NominalX(periods...)

	return s.save(p, MonthlyTrendChart)
}

func (s *Service) save(p *plot.Plot, chart string) (string, error) {
	if s.opts.OutputDir != "" {
		if err := os.MkdirAll(s.opts.OutputDir, 0o755); err != nil {
			return "", domain.NewRenderError(chart, domain.ErrChartWrite, errors.Wrap(err, "erro ao criar diretório de saída").Error())
		}
	}

	path := filepath.Join(s.opts.OutputDir, chart+"."+s.opts.Format)
	if err := p.Save(s.opts.Width, s.opts.Height, path); err != nil {
		return "", domain.NewRenderError(chart, domain.ErrChartWrite, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"chart": chart,
		"file":  path,
	}).Info("Gráfico gerado")

	return path, nil
}

func rotateLabels(p *plot.Plot) {
	p.X.Tick.Label.Rotation = labelRotation
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

func shorten(name string) string {
	runes := []rune(name)
	if len(runes) <= maxLabelCharacters {
		return name
	}
	return string(runes[:maxLabelCharacters-1]) + "…"
}
