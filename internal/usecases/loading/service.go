// Package loading lê o arquivo de vendas (CSV ou XLSX) para uma tabela bruta
package loading

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-insights/internal/config"
	"github.com/vfg2006/sales-insights/internal/domain"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

const utf8BOM = "\xEF\xBB\xBF"

type Options struct {
	Delimiter rune
	Encoding  string // auto, utf-8 ou latin1
	Sheet     string // Vazio = primeira aba
	Aliases   map[domain.Column][]string
}

type Service struct {
	opts Options
}

func NewService(cfg *config.Config) *Service {
	delimiter, _ := utf8.DecodeRuneInString(cfg.Input.CSVDelimiter)

	return NewServiceWithOptions(Options{
		Delimiter: delimiter,
		Encoding:  cfg.Input.CSVEncoding,
		Sheet:     cfg.Input.XLSXSheet,
		Aliases:   cfg.Columns.Aliases(),
	})
}

func NewServiceWithOptions(opts Options) *Service {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.Encoding == "" {
		opts.Encoding = "auto"
	}
	return &Service{opts: opts}
}

// Load lê o arquivo inteiro e identifica as colunas do cabeçalho
func (s *Service) Load(path string) (*domain.RawTable, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewLoadError(path, domain.ErrFileNotFound, "")
		}
		return nil, domain.NewLoadError(path, domain.ErrFileUnreadable, err.Error())
	}
	if info.IsDir() {
		return nil, domain.NewLoadError(path, domain.ErrFileUnreadable, "o caminho é um diretório")
	}

	var (
		format  domain.FileFormat
		records [][]string
	)

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".txt":
		format = domain.FormatCSV
		records, err = s.readCSV(path)
	case ".xlsx", ".xlsm":
		format = domain.FormatXLSX
		records, err = s.readXLSX(path)
	case ".xls":
		return nil, domain.NewLoadError(path, domain.ErrUnsupportedFormat, "planilhas .xls devem ser convertidas para .xlsx")
	default:
		return nil, domain.NewLoadError(path, domain.ErrUnsupportedFormat, "extensão "+ext)
	}
	if err != nil {
		return nil, domain.NewLoadError(path, domain.ErrFileUnreadable, err.Error())
	}

	table, err := s.buildTable(path, format, records)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"file":      path,
		"format":    format,
		"rows_read": len(table.Rows),
		"columns":   len(table.Columns),
	}).Info("Arquivo de vendas carregado")

	return table, nil
}

func (s *Service) readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir arquivo")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler arquivo")
	}

	data, err = s.decode(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = s.opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao interpretar CSV")
	}

	return records, nil
}

// decode converte o conteúdo para UTF-8 conforme o encoding configurado
func (s *Service) decode(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	switch s.opts.Encoding {
	case "utf-8":
		if !utf8.Valid(data) {
			return nil, errors.New("conteúdo não é UTF-8 válido")
		}
		return data, nil
	case "latin1":
		return decodeLatin1(data)
	default:
		if utf8.Valid(data) {
			return data, nil
		}
		logrus.Debug("Arquivo não é UTF-8 válido, decodificando como Latin-1")
		return decodeLatin1(data)
	}
}

func decodeLatin1(data []byte) ([]byte, error) {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar Latin-1")
	}
	return decoded, nil
}

func (s *Service) readXLSX(path string) ([][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir planilha")
	}
	defer file.Close()

	sheet := s.opts.Sheet
	if sheet == "" {
		sheets := file.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("planilha sem abas")
		}
		sheet = sheets[0]
	}

	rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler aba %s", sheet)
	}

	return rows, nil
}

// buildTable localiza o cabeçalho e associa cada coluna lógica ao seu índice
func (s *Service) buildTable(path string, format domain.FileFormat, records [][]string) (*domain.RawTable, error) {
	headerIdx := -1
	for i, record := range records {
		if !isBlank(record) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, domain.NewLoadError(path, domain.ErrEmptyFile, "")
	}

	header := make([]string, len(records[headerIdx]))
	for i, cell := range records[headerIdx] {
		header[i] = strings.TrimSpace(cell)
	}

	columns := s.resolveColumns(header)
	if len(columns) == 0 {
		return nil, domain.NewLoadError(path, domain.ErrHeaderNotFound, "cabeçalho: "+strings.Join(header, ", "))
	}

	return &domain.RawTable{
		Source:  path,
		Format:  format,
		Header:  header,
		Rows:    records[headerIdx+1:],
		Columns: columns,
	}, nil
}

func (s *Service) resolveColumns(header []string) map[domain.Column]int {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(name)
		if _, exists := positions[key]; !exists {
			positions[key] = i
		}
	}

	columns := make(map[domain.Column]int)
	for _, column := range domain.RequiredColumns {
		for _, alias := range s.opts.Aliases[column] {
			if idx, ok := positions[strings.ToLower(strings.TrimSpace(alias))]; ok {
				columns[column] = idx
				break
			}
		}
	}

	return columns
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
