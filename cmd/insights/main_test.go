package main

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights/internal/config"
	"github.com/vfg2006/sales-insights/internal/domain"
	"github.com/vfg2006/sales-insights/internal/scheduler"
	"github.com/vfg2006/sales-insights/internal/scheduler/mocks"
	"github.com/vfg2006/sales-insights/pkg/exitcode"
	"go.uber.org/mock/gomock"
)

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		content  string // Vazio = arquivo inexistente
		extra    []string
		wantCode int
		validate func(t *testing.T, outputDir string)
	}{
		{
			name:     "Relatório completo com log em debug",
			content:  "product,quantity,price,date\nA,2,10.00,2024-01-05\nB,1,5.00,2024-01-10\nA,1,10.00,2024-02-01\n",
			extra:    []string{"--log-level", "debug"},
			wantCode: exitcode.OK,
			validate: func(t *testing.T, outputDir string) {
				assert.FileExists(t, filepath.Join(outputDir, "top_products.png"))
				assert.FileExists(t, filepath.Join(outputDir, "monthly_trend.png"))
			},
		},
		{
			name:     "Arquivo inexistente",
			wantCode: exitcode.LoadFailed,
		},
		{
			name:     "Coluna de preço ausente",
			content:  "product,quantity,date\nA,1,2024-01-01\n",
			wantCode: exitcode.SchemaError,
		},
		{
			name:     "Nenhuma linha válida",
			content:  "product,quantity,price,date\nA,abc,1.00,2024-01-01\n",
			wantCode: exitcode.RenderError,
		},
		{
			name:     "Formato de gráfico inválido",
			content:  "product,quantity,price,date\nA,1,1.00,2024-01-01\n",
			extra:    []string{"--chart-format", "bmp"},
			wantCode: exitcode.Failure,
		},
		{
			name:     "Flag desconhecida",
			extra:    []string{"--nao-existe"},
			wantCode: exitcode.Failure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			outputDir := filepath.Join(dir, "charts")
			path := filepath.Join(dir, "vendas.csv")
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			args := append([]string{"--output-dir", outputDir}, tt.extra...)
			args = append(args, path)

			assert.Equal(t, tt.wantCode, run(args))
			if tt.validate != nil {
				tt.validate(t, outputDir)
			}
		})
	}
}

func TestServe_ManualTrigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	finished := make(chan struct{})

	runner := mocks.NewMockReportRunner(ctrl)
	runner.EXPECT().
		Run(gomock.Any(), "data/vendas.csv").
		DoAndReturn(func(ctx context.Context, path string) (*domain.InsightReport, error) {
			defer close(finished)
			return &domain.InsightReport{RunID: "sighup01", Source: path}, nil
		}).
		Times(1)

	cfg := &config.Config{
		Input:    config.Input{Path: "data/vendas.csv"},
		Schedule: config.Schedule{Enabled: true, CronSchedule: "0 6 * * *"},
	}
	reportScheduler := scheduler.NewReportSchedulerService(runner, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	trigger := make(chan os.Signal, 1)
	stopped := make(chan struct{})

	go func() {
		serve(ctx, reportScheduler, trigger)
		close(stopped)
	}()

	trigger <- syscall.SIGHUP

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("execução manual não foi iniciada pelo sinal")
	}

	assert.Eventually(t, func() bool {
		return reportScheduler.GetStatus()["last_run_id"] == "sighup01"
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("serve não terminou após o cancelamento")
	}
}
