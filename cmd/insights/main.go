package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/vfg2006/sales-insights/internal/config"
	"github.com/vfg2006/sales-insights/internal/scheduler"
	"github.com/vfg2006/sales-insights/internal/usecases/aggregating"
	"github.com/vfg2006/sales-insights/internal/usecases/charting"
	"github.com/vfg2006/sales-insights/internal/usecases/cleaning"
	"github.com/vfg2006/sales-insights/internal/usecases/insighting"
	"github.com/vfg2006/sales-insights/internal/usecases/loading"
	"github.com/vfg2006/sales-insights/internal/usecases/ranking"
	"github.com/vfg2006/sales-insights/internal/usecases/reporting"
	"github.com/vfg2006/sales-insights/pkg/exitcode"
	"github.com/vfg2006/sales-insights/pkg/log"
	"github.com/vfg2006/sales-insights/pkg/utils"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("insights", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "uso: insights [flags] [arquivo]")
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitcode.OK
		}
		return exitcode.Failure
	}

	cfg, err := config.NewConfig(fs)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar configuração")
		return exitcode.Failure
	}

	log.Configure(cfg.App.LogLevel)
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debugf("Configuração carregada: %s", utils.PrettyJson(cfg))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pipeline := insighting.NewService(
		cfg,
		loading.NewService(cfg),
		cleaning.NewService(cfg),
		aggregating.NewService(),
		ranking.NewSalesRankingService(),
		reporting.NewService(cfg),
		charting.NewService(cfg),
		os.Stdout,
	)

	if !cfg.Schedule.Enabled {
		if _, err := pipeline.Run(ctx, cfg.Input.Path); err != nil {
			logrus.WithError(err).Error("Erro ao gerar relatório de vendas")
			return exitcode.FromError(err)
		}
		return exitcode.OK
	}

	reportScheduler := scheduler.NewReportSchedulerService(pipeline, cfg)

	// A primeira execução acontece imediatamente; falhas não encerram o agendamento
	if _, err := reportScheduler.RunNow(ctx); err != nil {
		logrus.WithError(err).Error("Erro na execução inicial do relatório")
	}

	if err := reportScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de relatórios")
		return exitcode.Failure
	}

	// SIGHUP dispara uma execução manual fora do cron
	trigger := make(chan os.Signal, 1)
	signal.Notify(trigger, syscall.SIGHUP)
	defer signal.Stop(trigger)

	serve(ctx, reportScheduler, trigger)
	logrus.Infof("Agendador encerrado: %s", utils.PrettyJson(reportScheduler.GetStatus()))

	return exitcode.OK
}

// serve aguarda o cancelamento do contexto, atendendo os pedidos de execução manual
func serve(ctx context.Context, reportScheduler *scheduler.ReportSchedulerService, trigger <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-trigger:
			logrus.WithField("signal", sig.String()).Info("Sinal recebido, solicitando execução manual do relatório")
			reportScheduler.TriggerManualRun(ctx)
		}
	}
}
