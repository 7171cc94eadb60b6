package bulksheet

import (
	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/vfg2006/bulksheet-generator/pkg/log"
	"github.com/xuri/excelize/v2"
)

// FindDuplicates verifica as colunas de palavras-chave indicadas (por índice na tabela).
// Qualquer valor não vazio repetido em uma coluna entra no relatório.
// Cada coluna afetada é registrada no logger da execução.
func FindDuplicates(logger log.Logger, table *domain.SurveyTable, indexes []int) *domain.DuplicateReport {
	report := &domain.DuplicateReport{Columns: []domain.DuplicateColumn{}}

	for _, idx := range indexes {
		if idx < 0 || idx >= len(table.Columns) {
			continue
		}
		col := table.Columns[idx]

		counts := make(map[string]int)
		order := make([]string, 0)
		for _, value := range col.NonBlank() {
			if _, seen := counts[value]; !seen {
				order = append(order, value)
			}
			counts[value]++
		}

		values := make([]domain.DuplicateValue, 0)
		for _, value := range order {
			if counts[value] > 1 {
				values = append(values, domain.DuplicateValue{Value: value, Count: counts[value]})
			}
		}
		if len(values) == 0 {
			continue
		}

		letter, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			letter = "?"
		}

		logger.WithFields(log.Fields{
			"column":     col.Name,
			"letter":     letter,
			"duplicates": len(values),
		}).Warn("Coluna com palavras-chave repetidas")

		report.Columns = append(report.Columns, domain.DuplicateColumn{
			Index:  idx,
			Letter: letter,
			Name:   col.Name,
			Values: values,
		})
	}

	return report
}
