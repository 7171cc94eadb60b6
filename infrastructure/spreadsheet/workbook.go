package spreadsheet

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

//go:generate mockgen -destination=mocks/mock_spreadsheet.go -package=mocks github.com/vfg2006/bulksheet-generator/infrastructure/spreadsheet Reader,Writer

// Erros de leitura e escrita de planilhas
var (
	ErrSurveyNotFound    = errors.New("survey file not found")
	ErrUnreadableSurvey  = errors.New("survey file could not be read")
	ErrWriteOutput       = errors.New("output file could not be written")
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrSheetNotFound     = errors.New("sheet not found in workbook")
	ErrEmptySpreadsheet  = errors.New("spreadsheet has no header row")
)

// Format é o formato do arquivo tabular
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatFromPath deduz o formato pela extensão do arquivo
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// ContentType retorna o tipo MIME usado no download
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension retorna a extensão com ponto
func (f Format) Extension() string {
	return "." + string(f)
}

// Workbook lê pesquisas e grava planilhas de operações em massa em XLSX ou CSV
type Workbook struct {
	sheet string
}

// NewWorkbook cria o adaptador. Sheet vazio significa a primeira planilha do arquivo.
func NewWorkbook(sheet string) *Workbook {
	return &Workbook{sheet: sheet}
}

// checkContext é usado entre etapas longas de leitura e escrita
func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
