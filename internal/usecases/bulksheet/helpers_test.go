package bulksheet

import (
	"github.com/vfg2006/bulksheet-generator/internal/domain"
)

// newTable monta uma pesquisa a partir do cabeçalho e das linhas; linhas curtas são completadas com vazio
func newTable(header []string, rows ...[]string) *domain.SurveyTable {
	columns := make([]domain.SurveyColumn, len(header))
	for i, name := range header {
		columns[i] = domain.SurveyColumn{Name: name, Cells: make([]string, 0, len(rows))}
	}

	for _, row := range rows {
		for i := range header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			columns[i].Cells = append(columns[i].Cells, cell)
		}
	}

	return domain.NewSurveyTable(columns...)
}

// rowsOf filtra as linhas geradas de uma campanha
func rowsOf(rows []domain.BulkRow, campaign string) []domain.BulkRow {
	out := make([]domain.BulkRow, 0)
	for _, row := range rows {
		if row.CampaignID == campaign {
			out = append(out, row)
		}
	}
	return out
}

func levelsOf(rows []domain.BulkRow) []domain.EntityLevel {
	out := make([]domain.EntityLevel, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Level)
	}
	return out
}

func keywordTexts(rows []domain.BulkRow, level domain.EntityLevel) []string {
	out := make([]string, 0)
	for _, row := range rows {
		if row.Level == level {
			out = append(out, row.KeywordText)
		}
	}
	return out
}

func negativeMatchTypes(rows []domain.BulkRow) []string {
	out := make([]string, 0)
	for _, row := range rows {
		if row.Level == domain.LevelNegativeKeyword {
			out = append(out, row.MatchType)
		}
	}
	return out
}

// scenarioHeader segue o layout da revisão com posicionamento: palavras-chave de J (índice 9) a N
var scenarioHeader = []string{
	"广告活动名称", "CPC", "SKU", "广告组默认竞价", "预算", "广告位", "百分比", "否定精准", "否定词组",
	"host exact", "case exact", "case broad", "Host-ASIN", "否定ASIN",
}
