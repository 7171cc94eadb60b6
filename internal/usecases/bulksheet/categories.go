package bulksheet

import (
	"sort"
	"strings"
)

// CategorySet é o conjunto fechado de categorias de uma execução
type CategorySet struct {
	tokens []string
	index  map[string]struct{}
}

func newCategorySet(tokens map[string]struct{}) CategorySet {
	delete(tokens, "")

	sorted := make([]string, 0, len(tokens))
	for token := range tokens {
		sorted = append(sorted, token)
	}
	sort.Strings(sorted)

	return CategorySet{tokens: sorted, index: tokens}
}

// Tokens retorna as categorias em ordem lexicográfica
func (s CategorySet) Tokens() []string {
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

func (s CategorySet) Contains(token string) bool {
	_, ok := s.index[token]
	return ok
}

func (s CategorySet) Len() int {
	return len(s.tokens)
}

// MatchedBy retorna as categorias que aparecem como substring do texto normalizado
func (s CategorySet) MatchedBy(folded string) []string {
	matched := make([]string, 0)
	for _, token := range s.tokens {
		if strings.Contains(folded, token) {
			matched = append(matched, token)
		}
	}
	return matched
}

// ExtractCategories deriva as categorias de produto a partir dos cabeçalhos da pesquisa
func ExtractCategories(columnNames []string, vocab Vocabulary) CategorySet {
	v := vocab.normalized()
	tokens := make(map[string]struct{})

	add := func(text string) {
		for _, part := range fragments(text) {
			tokens[part] = struct{}{}
		}
	}

	for _, name := range columnNames {
		folded := fold(name)
		if containsAny(folded, v.NegativeMarkers) {
			continue
		}

		if suffix, ok := keywordSuffix(folded, v.KeywordSuffixes); ok {
			add(strings.TrimSpace(strings.TrimSuffix(folded, suffix)))
			continue
		}

		if strings.Contains(folded, v.AsinMarker) {
			add(strings.ReplaceAll(folded, v.AsinMarker, ""))
		}
	}

	for _, token := range v.BuiltinCategories() {
		tokens[token] = struct{}{}
	}

	return newCategorySet(tokens)
}

func keywordSuffix(folded string, suffixes []string) (string, bool) {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(folded, suffix) {
			return suffix, true
		}
	}
	return "", false
}
