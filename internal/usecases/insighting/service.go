// Package insighting executa o pipeline completo de análise de vendas
package insighting

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-insights/internal/config"
	"github.com/vfg2006/sales-insights/internal/domain"
	"github.com/vfg2006/sales-insights/internal/usecases/ranking"
	"github.com/vfg2006/sales-insights/pkg/log"
	"github.com/vfg2006/sales-insights/pkg/utils"
)

// Service encadeia Loader → Cleaner → Aggregator → Reporter → Visualizer
type Service struct {
	loader     Loader
	cleaner    Cleaner
	aggregator Aggregator
	ranker     ranking.RankingService
	reporter   Reporter
	visualizer Visualizer
	out        io.Writer
	jsonPath   string
	now        func() time.Time
}

// NewService cria uma nova instância do pipeline
func NewService(
	cfg *config.Config,
	loader Loader,
	cleaner Cleaner,
	aggregator Aggregator,
	ranker ranking.RankingService,
	reporter Reporter,
	visualizer Visualizer,
	out io.Writer,
) *Service {
	return &Service{
		loader:     loader,
		cleaner:    cleaner,
		aggregator: aggregator,
		ranker:     ranker,
		reporter:   reporter,
		visualizer: visualizer,
		out:        out,
		jsonPath:   cfg.Report.JSONPath,
		now:        time.Now,
	}
}

// Run executa uma análise completa do arquivo. O primeiro erro interrompe a
// execução e é retornado sem alteração, preservando LoadError, SchemaError e RenderError.
func (s *Service) Run(ctx context.Context, path string) (*domain.InsightReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar ID da execução")
	}

	ctx = log.WithRunID(ctx, runID)
	ctx, _ = log.WithCorrelationID(ctx)
	logger := log.ForContext(ctx).WithField("file", path)

	startTime := s.now()
	logger.Info("Iniciando análise de vendas")

	raw, err := s.loader.Load(path)
	if err != nil {
		logger.WithField("stage", "load").WithError(err).Error("Erro ao carregar arquivo de vendas")
		return nil, err
	}

	table, cleaning, err := s.cleaner.Clean(raw)
	if err != nil {
		logger.WithField("stage", "clean").WithError(err).Error("Erro na limpeza das vendas")
		return nil, err
	}

	if cleaning.Discarded > 0 {
		logger.WithFields(log.Fields{
			"rows_discarded": cleaning.Discarded,
			"rows_kept":      cleaning.KeptRows,
		}).Warnf("%d linhas descartadas na limpeza", cleaning.Discarded)
	}

	aggregates := s.aggregator.Aggregate(table)
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logger.Debugf("Métricas gerais: %s", utils.PrettyJson(aggregates.Stats))
	}

	report := &domain.InsightReport{
		RunID:       runID,
		Source:      path,
		GeneratedAt: startTime,
		Cleaning:    cleaning,
		Stats:       aggregates.Stats,
		Products:    s.ranker.TopProducts(aggregates.Products, 0),
		Months:      aggregates.Months,
		BestMonth:   s.ranker.BestMonth(aggregates.Months),
		WorstMonth:  s.ranker.WorstMonth(aggregates.Months),
	}

	if err := s.reporter.Render(s.out, report); err != nil {
		logger.WithField("stage", "report").WithError(err).Error("Erro ao escrever relatório")
		return nil, err
	}

	productsChart, err := s.visualizer.RenderTopProducts(report.Products)
	if err != nil {
		logger.WithField("stage", "chart").WithError(err).Error("Erro ao gerar gráfico de produtos")
		return nil, err
	}

	monthlyChart, err := s.visualizer.RenderMonthlyTrend(report.Months)
	if err != nil {
		logger.WithField("stage", "chart").WithError(err).Error("Erro ao gerar gráfico mensal")
		return nil, err
	}

	report.Charts = []string{productsChart, monthlyChart}

	if s.jsonPath != "" {
		if err := s.reporter.WriteJSON(s.jsonPath, report); err != nil {
			logger.WithField("stage", "export").WithError(err).Error("Erro ao exportar relatório em JSON")
			return nil, err
		}
	}

	logger.WithFields(log.Fields{
		"duration_ms": s.now().Sub(startTime).Milliseconds(),
		"rows_kept":   cleaning.KeptRows,
	}).Info("Análise de vendas concluída")

	return report, nil
}
