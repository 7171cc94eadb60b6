package spreadsheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Reader carrega a planilha de pesquisa em memória
type Reader interface {
	Read(ctx context.Context, path string) (*domain.SurveyTable, error)
	ReadFrom(ctx context.Context, r io.Reader, format Format) (*domain.SurveyTable, error)
}

const utf8BOM = "\ufeff"

func (w *Workbook) Read(ctx context.Context, path string) (*domain.SurveyTable, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrSurveyNotFound, path)
		}
		return nil, errors.Wrapf(ErrUnreadableSurvey, "%s: %v", path, err)
	}
	defer file.Close()

	logrus.WithFields(logrus.Fields{
		"path":   path,
		"format": format,
	}).Debug("Lendo planilha de pesquisa")

	return w.ReadFrom(ctx, file, format)
}

func (w *Workbook) ReadFrom(ctx context.Context, r io.Reader, format Format) (*domain.SurveyTable, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var (
		rows [][]string
		err  error
	)

	switch format {
	case FormatXLSX:
		rows, err = w.readXLSX(r)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	table, err := rowsToTable(rows)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"columns": len(table.Columns),
		"rows":    table.RowCount(),
	}).Info("Planilha de pesquisa carregada")

	return table, nil
}

func (w *Workbook) readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableSurvey, "open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheet := w.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptySpreadsheet
		}
		sheet = sheets[0]
	}

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return nil, errors.Wrap(ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableSurvey, "read sheet %s: %v", sheet, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableSurvey, "read csv: %v", err)
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte(utf8BOM))))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableSurvey, "parse csv: %v", err)
	}
	return rows, nil
}

// rowsToTable transforma a matriz lida em colunas nomeadas.
// Cabeçalhos vazios viram "Unnamed: N" e repetidos recebem o sufixo ".1", ".2"...
func rowsToTable(rows [][]string) (*domain.SurveyTable, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySpreadsheet
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	names := headerNames(rows[0], width)
	columns := make([]domain.SurveyColumn, width)
	for i, name := range names {
		columns[i] = domain.SurveyColumn{Name: name, Cells: make([]string, 0, len(rows)-1)}
	}

	for _, row := range rows[1:] {
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			columns[i].Cells = append(columns[i].Cells, cell)
		}
	}

	return domain.NewSurveyTable(columns...), nil
}

func headerNames(header []string, width int) []string {
	names := make([]string, width)
	used := make(map[string]bool, width)
	suffix := make(map[string]int, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		candidate := name
		for used[candidate] {
			suffix[name]++
			candidate = fmt.Sprintf("%s.%d", name, suffix[name])
		}
		used[candidate] = true
		names[i] = candidate
	}

	return names
}
