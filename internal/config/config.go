package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-insights/internal/domain"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Input    Input    `mapstructure:",squash"`
	Columns  Columns  `mapstructure:",squash"`
	Parsing  Parsing  `mapstructure:",squash"`
	Report   Report   `mapstructure:",squash"`
	Chart    Chart    `mapstructure:",squash"`
	Schedule Schedule `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Input struct {
	Path         string `mapstructure:"input_path"`
	CSVDelimiter string `mapstructure:"csv_delimiter"`
	CSVEncoding  string `mapstructure:"csv_encoding"` // auto, utf-8 ou latin1
	XLSXSheet    string `mapstructure:"xlsx_sheet"`
}

// Columns lista os nomes aceitos no cabeçalho para cada coluna lógica
type Columns struct {
	Product  []string `mapstructure:"column_product"`
	Quantity []string `mapstructure:"column_quantity"`
	Price    []string `mapstructure:"column_price"`
	Date     []string `mapstructure:"column_date"`
}

type Parsing struct {
	DateLayouts []string `mapstructure:"date_layouts"`
}

type Report struct {
	TopN     int    `mapstructure:"report_top_n"`
	JSONPath string `mapstructure:"report_json_path"`
}

type Chart struct {
	TopN         int     `mapstructure:"chart_top_n"`
	OutputDir    string  `mapstructure:"output_dir"`
	Format       string  `mapstructure:"chart_format"`
	WidthInches  float64 `mapstructure:"chart_width_inches"`
	HeightInches float64 `mapstructure:"chart_height_inches"`
}

type Schedule struct {
	Enabled      bool   `mapstructure:"schedule_enabled"`
	CronSchedule string `mapstructure:"schedule_cron"`
}

var supportedChartFormats = []string{"png", "svg", "pdf", "jpg", "jpeg"}

var supportedEncodings = []string{"auto", "utf-8", "latin1"}

// Aliases retorna os nomes aceitos por coluna lógica
func (c Columns) Aliases() map[domain.Column][]string {
	return map[domain.Column][]string{
		domain.ColumnProduct:  c.Product,
		domain.ColumnQuantity: c.Quantity,
		domain.ColumnPrice:    c.Price,
		domain.ColumnDate:     c.Date,
	}
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("INPUT_PATH", filepath.Join("data", "sales_data_sample.csv"))
	v.SetDefault("CSV_DELIMITER", ",")
	v.SetDefault("CSV_ENCODING", "auto")
	v.SetDefault("XLSX_SHEET", "") // Vazio = primeira aba

	// Nomes do dataset de exemplo primeiro, depois os nomes genéricos
	v.SetDefault("COLUMN_PRODUCT", []string{"PRODUCTLINE", "product", "product_name"})
	v.SetDefault("COLUMN_QUANTITY", []string{"QUANTITYORDERED", "quantity", "qty"})
	v.SetDefault("COLUMN_PRICE", []string{"PRICEEACH", "price", "unit_price"})
	v.SetDefault("COLUMN_DATE", []string{"ORDERDATE", "date", "order_date"})

	v.SetDefault("DATE_LAYOUTS", []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z07:00",
		"1/2/2006 15:04",
		"1/2/2006 15:04:05",
		"1/2/2006",
		"1/2/06",
		"2006/01/02",
	})

	v.SetDefault("REPORT_TOP_N", 5)
	v.SetDefault("REPORT_JSON_PATH", "")

	v.SetDefault("CHART_TOP_N", 10)
	v.SetDefault("OUTPUT_DIR", "output")
	v.SetDefault("CHART_FORMAT", "png")
	v.SetDefault("CHART_WIDTH_INCHES", 10)
	v.SetDefault("CHART_HEIGHT_INCHES", 5)

	v.SetDefault("SCHEDULE_ENABLED", false)
	v.SetDefault("SCHEDULE_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
}

// RegisterFlags registra as flags de linha de comando aceitas pelo binário
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", "", "arquivo de vendas (.csv ou .xlsx)")
	fs.StringP("output-dir", "o", "", "diretório de saída dos gráficos")
	fs.Int("top", 0, "quantidade de produtos no resumo")
	fs.String("chart-format", "", "formato dos gráficos (png, svg, pdf, jpg)")
	fs.String("json", "", "caminho para exportar o relatório em JSON")
	fs.String("log-level", "", "nível de log")
	fs.Bool("schedule", false, "executa o relatório periodicamente")
	fs.String("cron", "", "expressão cron do agendamento")
}

var flagKeys = map[string]string{
	"input":        "INPUT_PATH",
	"output-dir":   "OUTPUT_DIR",
	"top":          "REPORT_TOP_N",
	"chart-format": "CHART_FORMAT",
	"json":         "REPORT_JSON_PATH",
	"log-level":    "LOG_LEVEL",
	"schedule":     "SCHEDULE_ENABLED",
	"cron":         "SCHEDULE_CRON",
}

// NewConfig carrega a configuração de .env, variáveis de ambiente e flags.
// fs pode ser nil; um argumento posicional substitui INPUT_PATH.
func NewConfig(fs *pflag.FlagSet) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errors.Wrapf(err, "erro ao associar flag %s", name)
			}
		}
	}

	config := &Config{}
	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler configuração")
	}

	if fs != nil && fs.NArg() > 0 {
		config.Input.Path = fs.Arg(0)
	}

	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) normalize() {
	c.Columns.Product = trimAll(c.Columns.Product)
	c.Columns.Quantity = trimAll(c.Columns.Quantity)
	c.Columns.Price = trimAll(c.Columns.Price)
	c.Columns.Date = trimAll(c.Columns.Date)
	c.Chart.Format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Chart.Format), "."))
	c.Input.CSVEncoding = strings.ToLower(strings.TrimSpace(c.Input.CSVEncoding))
	if c.Input.CSVDelimiter == `\t` {
		c.Input.CSVDelimiter = "\t"
	}
}

// Validate verifica combinações inválidas antes de iniciar o pipeline
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input.Path) == "" {
		return errors.New("config: INPUT_PATH é obrigatório")
	}

	if utf8.RuneCountInString(c.Input.CSVDelimiter) != 1 {
		return fmt.Errorf("config: CSV_DELIMITER deve ter um único caractere, recebido %q", c.Input.CSVDelimiter)
	}

	if !slices.Contains(supportedEncodings, c.Input.CSVEncoding) {
		return fmt.Errorf("config: CSV_ENCODING inválido: %s", c.Input.CSVEncoding)
	}

	for column, aliases := range c.Columns.Aliases() {
		if len(aliases) == 0 {
			return fmt.Errorf("config: nenhum nome configurado para a coluna %s", column)
		}
	}

	if len(c.Parsing.DateLayouts) == 0 {
		return errors.New("config: DATE_LAYOUTS não pode ser vazio")
	}

	if c.Report.TopN < 0 || c.Chart.TopN < 0 {
		return errors.New("config: REPORT_TOP_N e CHART_TOP_N não podem ser negativos")
	}

	if !slices.Contains(supportedChartFormats, c.Chart.Format) {
		return fmt.Errorf("config: CHART_FORMAT não suportado: %s", c.Chart.Format)
	}

	if c.Chart.WidthInches <= 0 || c.Chart.HeightInches <= 0 {
		return errors.New("config: dimensões do gráfico devem ser positivas")
	}

	if c.Schedule.Enabled && strings.TrimSpace(c.Schedule.CronSchedule) == "" {
		return errors.New("config: SCHEDULE_CRON é obrigatório quando SCHEDULE_ENABLED=true")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err != nil {
			continue
		}
		if err := godotenv.Load(location); err != nil {
			logrus.WithError(err).Warn("Erro ao carregar arquivo .env de:", location)
			continue
		}
		logrus.Debug("Arquivo .env carregado de:", location)
		return
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
