package domain

import (
	"fmt"
	"strings"
)

// DuplicateValue é um valor repetido e o número de ocorrências na coluna
type DuplicateValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// DuplicateColumn é uma coluna de palavras-chave com pelo menos um valor repetido
type DuplicateColumn struct {
	Index  int              `json:"index"`
	Letter string           `json:"letter"`
	Name   string           `json:"name"`
	Values []DuplicateValue `json:"values"`
}

// DuplicateReport lista todas as colunas com palavras-chave repetidas
type DuplicateReport struct {
	Columns []DuplicateColumn `json:"columns"`
}

func (r *DuplicateReport) HasDuplicates() bool {
	return r != nil && len(r.Columns) > 0
}

// Lines formata o relatório em uma linha por coluna afetada
func (r *DuplicateReport) Lines() []string {
	if r == nil {
		return nil
	}

	lines := make([]string, 0, len(r.Columns))
	for _, col := range r.Columns {
		values := make([]string, 0, len(col.Values))
		for _, v := range col.Values {
			values = append(values, fmt.Sprintf("%q x%d", v.Value, v.Count))
		}
		lines = append(lines, fmt.Sprintf("column %s (%s): %s", col.Letter, col.Name, strings.Join(values, ", ")))
	}
	return lines
}
