package bulksheet

import (
	"strings"

	"github.com/vfg2006/bulksheet-generator/internal/domain"
)

// AsinColumnStrategy resolve quais colunas de ASIN pertencem a uma campanha.
// As duas implementações correspondem a revisões distintas da planilha e não se misturam.
type AsinColumnStrategy interface {
	Name() string
	AsinColumns(campaign string, categories CategorySet, candidates []string) []string
}

// NewAsinStrategy cria a estratégia pelo nome configurado
func NewAsinStrategy(name string, classifier *Classifier) (AsinColumnStrategy, error) {
	switch name {
	case "", AsinStrategyExactName:
		return &ExactNameAsinStrategy{classifier: classifier}, nil
	case AsinStrategyFuzzy:
		return &FuzzyAsinStrategy{classifier: classifier}, nil
	default:
		return nil, NewBulkError(ErrUnknownAsinStrategy, CodeInvalidConfig, name)
	}
}

// ExactNameAsinStrategy aceita apenas a coluna de ASIN cujo cabeçalho é idêntico ao nome da campanha
type ExactNameAsinStrategy struct {
	classifier *Classifier
}

func (s *ExactNameAsinStrategy) Name() string {
	return AsinStrategyExactName
}

func (s *ExactNameAsinStrategy) AsinColumns(campaign string, _ CategorySet, candidates []string) []string {
	for _, col := range candidates {
		if col == campaign && s.classifier.ClassifyColumn(col) == domain.ColumnAsin {
			return []string{col}
		}
	}
	return []string{}
}

// FuzzyAsinStrategy associa colunas de ASIN por categoria e, havendo empate,
// pelas palavras do nome da campanha
type FuzzyAsinStrategy struct {
	classifier *Classifier
}

func (s *FuzzyAsinStrategy) Name() string {
	return AsinStrategyFuzzy
}

func (s *FuzzyAsinStrategy) AsinColumns(campaign string, categories CategorySet, candidates []string) []string {
	folded := fold(campaign)
	matched := categories.MatchedBy(folded)
	if len(matched) == 0 {
		return []string{}
	}

	qualifying := make([]string, 0)
	for _, col := range candidates {
		if s.classifier.ClassifyColumn(col) != domain.ColumnAsin {
			continue
		}
		if containsAny(fold(col), matched) {
			qualifying = append(qualifying, col)
		}
	}

	if len(qualifying) <= 1 {
		return qualifying
	}

	words := s.campaignWords(folded, categories)
	for _, col := range qualifying {
		if containsAny(fold(col), words) {
			return []string{col}
		}
	}

	// Nenhuma palavra desempata: todas as colunas da categoria valem
	return qualifying
}

// campaignWords extrai as palavras do nome que não são categorias nem palavras vazias
func (s *FuzzyAsinStrategy) campaignWords(folded string, categories CategorySet) []string {
	stop := make(map[string]struct{}, len(s.classifier.vocab.StopWords))
	for _, w := range s.classifier.vocab.StopWords {
		stop[w] = struct{}{}
	}

	words := make([]string, 0)
	for _, part := range fragments(strings.ReplaceAll(folded, s.classifier.vocab.AsinMarker, " ")) {
		if categories.Contains(part) {
			continue
		}
		if _, ok := stop[part]; ok {
			continue
		}
		words = append(words, part)
	}
	return dedupe(words)
}
