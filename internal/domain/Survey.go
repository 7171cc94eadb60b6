package domain

import (
	"fmt"
	"strings"
)

// SurveyColumn é uma coluna nomeada da planilha de pesquisa
type SurveyColumn struct {
	Name  string   `json:"name"`
	Cells []string `json:"cells"`
}

// SurveyTable é a planilha de pesquisa já carregada em memória.
// Lida uma vez no início da execução e nunca alterada.
type SurveyTable struct {
	Columns []SurveyColumn `json:"columns"`
}

func NewSurveyTable(columns ...SurveyColumn) *SurveyTable {
	return &SurveyTable{Columns: columns}
}

// IsBlank indica se a célula está vazia ou contém apenas espaços
func IsBlank(cell string) bool {
	return strings.TrimSpace(cell) == ""
}

func (t *SurveyTable) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		names = append(names, col.Name)
	}
	return names
}

func (t *SurveyTable) Column(name string) (*SurveyColumn, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

func (t *SurveyTable) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

func (t *SurveyTable) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// Cell retorna o valor da célula ou "" quando a coluna não existe
func (t *SurveyTable) Cell(name string, row int) string {
	col, ok := t.Column(name)
	if !ok || row < 0 || row >= len(col.Cells) {
		return ""
	}
	return col.Cells[row]
}

// NonBlank retorna os valores não vazios (sem espaços nas bordas) da coluna, na ordem das linhas.
// Coluna inexistente resulta em lista vazia.
func (t *SurveyTable) NonBlank(name string) []string {
	col, ok := t.Column(name)
	if !ok {
		return []string{}
	}
	return col.NonBlank()
}

func (c SurveyColumn) NonBlank() []string {
	values := make([]string, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if IsBlank(cell) {
			continue
		}
		values = append(values, strings.TrimSpace(cell))
	}
	return values
}

// Validate garante nomes de coluna únicos e colunas do mesmo tamanho
func (t *SurveyTable) Validate() error {
	seen := make(map[string]struct{}, len(t.Columns))
	rows := t.RowCount()
	for _, col := range t.Columns {
		if _, exists := seen[col.Name]; exists {
			return fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = struct{}{}

		if len(col.Cells) != rows {
			return fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Cells), rows)
		}
	}
	return nil
}
