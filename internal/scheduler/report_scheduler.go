package scheduler

//go:generate mockgen -source=report_scheduler.go -destination=mocks/mock_report_scheduler.go -package=mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-insights/internal/config"
	"github.com/vfg2006/sales-insights/internal/domain"
)

// ErrRunInProgress é retornado quando já existe uma execução em andamento
var ErrRunInProgress = errors.New("execução do relatório já em andamento")

// ReportRunner executa o pipeline de análise para um arquivo
type ReportRunner interface {
	Run(ctx context.Context, path string) (*domain.InsightReport, error)
}

// ReportSchedulerConfig representa a configuração do agendador de relatórios
type ReportSchedulerConfig struct {
	CronSchedule string
	InputPath    string
	Enabled      bool
}

// ReportSchedulerService reexecuta o relatório de vendas periodicamente
type ReportSchedulerService struct {
	scheduler          *gocron.Scheduler
	config             ReportSchedulerConfig
	runner             ReportRunner
	runMutex           sync.Mutex
	runRunning         bool
	runCount           int
	lastRunID          string
	lastRunError       string
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
}

// NewReportSchedulerService cria uma nova instância do agendador de relatórios
func NewReportSchedulerService(runner ReportRunner, appConfig *config.Config) *ReportSchedulerService {
	schedulerConfig := ReportSchedulerConfig{
		CronSchedule: appConfig.Schedule.CronSchedule,
		InputPath:    appConfig.Input.Path,
		Enabled:      appConfig.Schedule.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":    schedulerConfig.CronSchedule,
		"input_path":       schedulerConfig.InputPath,
		"schedule_enabled": schedulerConfig.Enabled,
	}).Info("Configuração do agendador de relatórios carregada")

	return &ReportSchedulerService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    schedulerConfig,
		runner:    runner,
	}
}

// Start inicia o agendador
func (s *ReportSchedulerService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Agendamento do relatório desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runScheduled(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar relatório de vendas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow executa o relatório imediatamente e retorna o resultado.
// Retorna ErrRunInProgress se outra execução ainda não terminou.
func (s *ReportSchedulerService) RunNow(ctx context.Context) (*domain.InsightReport, error) {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		return nil, ErrRunInProgress
	}
	s.runRunning = true
	s.lastRunStartedAt = time.Now()
	s.runMutex.Unlock()

	report, err := s.runner.Run(ctx, s.config.InputPath)

	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	s.runRunning = false
	s.runCount++
	s.lastRunCompletedAt = time.Now()
	s.lastRunError = ""
	if err != nil {
		s.lastRunError = err.Error()
	}
	if report != nil {
		s.lastRunID = report.RunID
	}

	return report, err
}

func (s *ReportSchedulerService) runScheduled(ctx context.Context) {
	report, err := s.RunNow(ctx)
	if errors.Is(err, ErrRunInProgress) {
		logrus.Info("Relatório já em andamento, ignorando execução agendada")
		return
	}
	if err != nil {
		logrus.WithError(err).Error("Erro na execução agendada do relatório")
		return
	}

	logrus.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"file":   report.Source,
	}).Info("Execução agendada do relatório concluída")
}

// TriggerManualRun inicia manualmente uma execução em segundo plano
func (s *ReportSchedulerService) TriggerManualRun(ctx context.Context) {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		logrus.Info("Relatório já em andamento, ignorando solicitação manual")
		return
	}
	s.runMutex.Unlock()

	logrus.Info("Iniciando execução manual do relatório")
	go s.runScheduled(ctx)
}

// IsRunning indica se há uma execução em andamento
func (s *ReportSchedulerService) IsRunning() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	return s.runRunning
}

// GetStatus retorna o status atual do agendador
func (s *ReportSchedulerService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"schedule_enabled":      s.config.Enabled,
		"schedule_cron":         s.config.CronSchedule,
		"input_path":            s.config.InputPath,
		"run_running":           s.runRunning,
		"run_count":             s.runCount,
		"last_run_id":           s.lastRunID,
		"last_run_error":        s.lastRunError,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
	}
}
