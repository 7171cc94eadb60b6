package bulksheet

import (
	"github.com/vfg2006/bulksheet-generator/internal/domain"
)

// ColumnMatcher associa colunas de palavras-chave e ASIN a uma campanha.
// Todas as buscas são funções puras do nome da campanha, das categorias e do intervalo candidato.
// Colunas de listas de negativação nunca entram como palavras-chave.
type ColumnMatcher struct {
	table      *domain.SurveyTable
	classifier *Classifier
	categories CategorySet
	candidates []string
	folded     []string
	asin       AsinColumnStrategy
}

func NewColumnMatcher(
	table *domain.SurveyTable,
	classifier *Classifier,
	categories CategorySet,
	candidates []string,
	asin AsinColumnStrategy,
) *ColumnMatcher {
	return &ColumnMatcher{
		table:      table,
		classifier: classifier,
		categories: categories,
		candidates: candidates,
		folded:     foldAll(candidates),
		asin:       asin,
	}
}

// MatchedCategories retorna as categorias presentes no nome da campanha
func (m *ColumnMatcher) MatchedCategories(campaign string) []string {
	return m.categories.MatchedBy(fold(campaign))
}

// PositiveColumns retorna as colunas de palavras-chave da campanha para o tipo pedido.
// Sem categoria reconhecida no nome não há colunas.
func (m *ColumnMatcher) PositiveColumns(campaign string, kind domain.MatchKind) []string {
	if !kind.IsKeyword() {
		return []string{}
	}

	matched := m.MatchedCategories(campaign)
	if len(matched) == 0 {
		return []string{}
	}

	return m.filter(func(folded string) bool {
		return containsAny(folded, matched) && m.classifier.columnHasMarker(folded, kind)
	})
}

// SameCategoryExactColumns retorna as colunas de correspondência exata da mesma categoria,
// usadas como negativas implícitas das campanhas de correspondência ampla
func (m *ColumnMatcher) SameCategoryExactColumns(campaign string) []string {
	return m.PositiveColumns(campaign, domain.MatchExact)
}

// CrossNegativeColumns retorna as colunas exatas da família oposta
func (m *ColumnMatcher) CrossNegativeColumns(campaign string) []string {
	family := m.classifier.FamilyOf(m.MatchedCategories(campaign))
	opposite := m.classifier.aliases(family.Opposite())
	if len(opposite) == 0 {
		return []string{}
	}

	return m.filter(func(folded string) bool {
		return containsAny(folded, opposite) && m.classifier.columnHasMarker(folded, domain.MatchExact)
	})
}

// AsinColumns delega à estratégia de ASIN configurada
func (m *ColumnMatcher) AsinColumns(campaign string) []string {
	return m.asin.AsinColumns(campaign, m.categories, m.candidates)
}

// ExtractValues concatena os valores não vazios das colunas (coluna a coluna, linha a linha)
// e remove repetições preservando a primeira ocorrência
func (m *ColumnMatcher) ExtractValues(columns []string) []string {
	values := make([]string, 0)
	for _, col := range columns {
		values = append(values, m.table.NonBlank(col)...)
	}
	return dedupe(values)
}

func (m *ColumnMatcher) filter(keep func(folded string) bool) []string {
	out := make([]string, 0)
	for i, folded := range m.folded {
		if m.classifier.isNegative(folded) {
			continue
		}
		if keep(folded) {
			out = append(out, m.candidates[i])
		}
	}
	return out
}
