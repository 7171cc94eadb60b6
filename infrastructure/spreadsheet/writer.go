package spreadsheet

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/vfg2006/bulksheet-generator/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const outputSheet = "Sheet1"

// Writer grava a planilha de operações em massa
type Writer interface {
	Write(ctx context.Context, path string, header []string, rows [][]string) error
	WriteTo(ctx context.Context, w io.Writer, format Format, header []string, rows [][]string) error
}

// Write grava em um arquivo temporário e renomeia no final, para nunca deixar saída parcial
func (w *Workbook) Write(ctx context.Context, path string, header []string, rows [][]string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return errors.Wrap(err, path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".bulksheet-*"+format.Extension())
	if err != nil {
		return errors.Wrapf(ErrWriteOutput, "%s: %v", path, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if err := w.WriteTo(ctx, tmp, format, header, rows); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(ErrWriteOutput, "%s: %v", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(ErrWriteOutput, "%s: %v", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path": path,
		"rows": len(rows),
	}).Info("Planilha de operações em massa gravada")

	return nil
}

func (w *Workbook) WriteTo(ctx context.Context, out io.Writer, format Format, header []string, rows [][]string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	switch format {
	case FormatXLSX:
		return writeXLSX(out, header, rows)
	case FormatCSV:
		return writeCSV(out, header, rows)
	default:
		return ErrUnsupportedFormat
	}
}

func writeXLSX(out io.Writer, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerRow := make([]interface{}, 0, len(header))
	for _, h := range header {
		headerRow = append(headerRow, h)
	}
	if err := f.SetSheetRow(outputSheet, "A1", &headerRow); err != nil {
		return errors.Wrapf(ErrWriteOutput, "header: %v", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrapf(ErrWriteOutput, "row %d: %v", i+2, err)
		}

		values := cellValues(row)
		if err := f.SetSheetRow(outputSheet, cell, &values); err != nil {
			return errors.Wrapf(ErrWriteOutput, "row %d: %v", i+2, err)
		}
	}

	if err := f.Write(out); err != nil {
		return errors.Wrapf(ErrWriteOutput, "save workbook: %v", err)
	}
	return nil
}

// cellValues converte as colunas numéricas (orçamento, lances, porcentagem) em número
func cellValues(row []string) []interface{} {
	values := make([]interface{}, 0, len(row))
	for i, v := range row {
		if _, numeric := domain.NumericColumns[i]; numeric {
			if f, ok := utils.ParseNumber(v); ok {
				values = append(values, f)
				continue
			}
		}
		values = append(values, v)
	}
	return values
}

func writeCSV(out io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(ErrWriteOutput, "header: %v", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return errors.Wrapf(ErrWriteOutput, "rows: %v", err)
	}
	return nil
}
