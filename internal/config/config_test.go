package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights/internal/domain"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "data/sales_data_sample.csv", cfg.Input.Path)
	assert.Equal(t, ",", cfg.Input.CSVDelimiter)
	assert.Equal(t, "auto", cfg.Input.CSVEncoding)
	assert.Equal(t, []string{"PRODUCTLINE", "product", "product_name"}, cfg.Columns.Product)
	assert.Equal(t, []string{"PRICEEACH", "price", "unit_price"}, cfg.Columns.Price)
	assert.Contains(t, cfg.Parsing.DateLayouts, "2006-01-02")
	assert.Equal(t, 5, cfg.Report.TopN)
	assert.Equal(t, 10, cfg.Chart.TopN)
	assert.Equal(t, "output", cfg.Chart.OutputDir)
	assert.Equal(t, "png", cfg.Chart.Format)
	assert.Equal(t, 10.0, cfg.Chart.WidthInches)
	assert.Equal(t, 5.0, cfg.Chart.HeightInches)
	assert.False(t, cfg.Schedule.Enabled)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("INPUT_PATH", "vendas.xlsx")
	t.Setenv("COLUMN_PRODUCT", "Produto, Item")
	t.Setenv("REPORT_TOP_N", "3")
	t.Setenv("CHART_FORMAT", ".SVG")
	t.Setenv("CSV_DELIMITER", ";")
	t.Setenv("SCHEDULE_ENABLED", "true")

	cfg, err := NewConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "vendas.xlsx", cfg.Input.Path)
	assert.Equal(t, []string{"Produto", "Item"}, cfg.Columns.Product)
	assert.Equal(t, 3, cfg.Report.TopN)
	assert.Equal(t, "svg", cfg.Chart.Format)
	assert.Equal(t, ";", cfg.Input.CSVDelimiter)
	assert.True(t, cfg.Schedule.Enabled)
	assert.Equal(t, "0 6 * * *", cfg.Schedule.CronSchedule)

	aliases := cfg.Columns.Aliases()
	assert.Equal(t, []string{"Produto", "Item"}, aliases[domain.ColumnProduct])
}

func TestNewConfig_Flags(t *testing.T) {
	t.Setenv("REPORT_TOP_N", "3")

	fs := pflag.NewFlagSet("insights", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--top", "7", "--output-dir", "charts", "vendas.csv"}))

	cfg, err := NewConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Report.TopN)
	assert.Equal(t, "charts", cfg.Chart.OutputDir)
	assert.Equal(t, "vendas.csv", cfg.Input.Path)
	assert.Equal(t, "png", cfg.Chart.Format)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "Formato de gráfico não suportado",
			env:     map[string]string{"CHART_FORMAT": "gif"},
			wantErr: "CHART_FORMAT",
		},
		{
			name:    "Delimitador com mais de um caractere",
			env:     map[string]string{"CSV_DELIMITER": ";;"},
			wantErr: "CSV_DELIMITER",
		},
		{
			name:    "Encoding desconhecido",
			env:     map[string]string{"CSV_ENCODING": "utf-16"},
			wantErr: "CSV_ENCODING",
		},
		{
			name:    "Top N negativo",
			env:     map[string]string{"REPORT_TOP_N": "-1"},
			wantErr: "REPORT_TOP_N",
		},
		{
			name:    "Dimensão de gráfico inválida",
			env:     map[string]string{"CHART_WIDTH_INCHES": "0"},
			wantErr: "dimensões",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := NewConfig(nil)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
