package bulksheet

import (
	"strings"

	"github.com/vfg2006/bulksheet-generator/internal/domain"
)

// Vocabulary reúne os marcadores textuais usados pelas heurísticas de nome.
// Todos os marcadores são comparados com o texto já normalizado por fold.
type Vocabulary struct {
	// Sufixos de cabeçalho de listas de palavras-chave, mais longos primeiro
	KeywordSuffixes []string

	// Marcadores de tipo de correspondência em cabeçalhos de coluna
	ExactColumnMarkers []string
	BroadColumnMarkers []string

	// Marcadores de tipo de correspondência em nomes de campanha
	ExactNameMarkers []string
	BroadNameMarkers []string

	AsinMarker      string
	NegativeMarkers []string

	HostAliases []string
	CaseAliases []string

	// Palavras ignoradas ao desempatar colunas de ASIN pela estratégia aproximada
	StopWords []string
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		KeywordSuffixes:    []string{"精准词", "广泛词", "精准", "广泛", "exact", "broad"},
		ExactColumnMarkers: []string{"精准", "exact"},
		BroadColumnMarkers: []string{"广泛", "broad"},
		ExactNameMarkers:   []string{"精准", "exact", "jz"},
		BroadNameMarkers:   []string{"广泛", "broad", "gf"},
		AsinMarker:         "asin",
		NegativeMarkers:    []string{"否", "negative"},
		HostAliases:        []string{"宿主", "host", "sz"},
		CaseAliases:        []string{"收纳包", "收纳", "case", "sn"},
		StopWords: []string{
			"sp", "ad", "ads", "asin", "exact", "broad", "auto", "manual",
			"精准", "广泛", "商品", "定向",
		},
	}
}

// normalized devolve uma cópia com todos os marcadores normalizados
func (v Vocabulary) normalized() Vocabulary {
	return Vocabulary{
		KeywordSuffixes:    foldAll(v.KeywordSuffixes),
		ExactColumnMarkers: foldAll(v.ExactColumnMarkers),
		BroadColumnMarkers: foldAll(v.BroadColumnMarkers),
		ExactNameMarkers:   foldAll(v.ExactNameMarkers),
		BroadNameMarkers:   foldAll(v.BroadNameMarkers),
		AsinMarker:         fold(v.AsinMarker),
		NegativeMarkers:    foldAll(v.NegativeMarkers),
		HostAliases:        foldAll(v.HostAliases),
		CaseAliases:        foldAll(v.CaseAliases),
		StopWords:          foldAll(v.StopWords),
	}
}

// BuiltinCategories são as categorias sempre presentes: os apelidos das duas famílias
func (v Vocabulary) BuiltinCategories() []string {
	out := make([]string, 0, len(v.HostAliases)+len(v.CaseAliases))
	out = append(out, v.HostAliases...)
	out = append(out, v.CaseAliases...)
	return out
}

// Classifier classifica nomes de campanha e cabeçalhos de coluna
type Classifier struct {
	vocab Vocabulary
}

func NewClassifier(vocab Vocabulary) *Classifier {
	return &Classifier{vocab: vocab.normalized()}
}

// Classify decide o tipo de segmentação da campanha.
// Precedência explícita: Exact > Broad > AsinTargeting > None.
// Um nome com marcador de correspondência exata e "asin" é classificado como Exact.
func (c *Classifier) Classify(name string) domain.MatchKind {
	folded := fold(name)
	for _, kind := range domain.MatchPrecedence {
		if c.nameHasMarker(folded, kind) {
			return kind
		}
	}
	return domain.MatchNone
}

func (c *Classifier) nameHasMarker(folded string, kind domain.MatchKind) bool {
	switch kind {
	case domain.MatchExact:
		return containsAny(folded, c.vocab.ExactNameMarkers)
	case domain.MatchBroad:
		return containsAny(folded, c.vocab.BroadNameMarkers)
	case domain.MatchAsinTargeting:
		return strings.Contains(folded, c.vocab.AsinMarker)
	}
	return false
}

// ClassifyColumn decide o papel da coluna a partir do cabeçalho
func (c *Classifier) ClassifyColumn(name string) domain.ColumnRole {
	folded := fold(name)
	switch {
	case strings.Contains(folded, c.vocab.AsinMarker):
		if c.isNegative(folded) {
			return domain.ColumnNegativeAsin
		}
		return domain.ColumnAsin
	case c.isNegative(folded):
		if containsAny(folded, c.vocab.ExactColumnMarkers) || containsAny(folded, c.vocab.BroadColumnMarkers) {
			return domain.ColumnNegativeKeywords
		}
	case containsAny(folded, c.vocab.ExactColumnMarkers):
		return domain.ColumnExactKeywords
	case containsAny(folded, c.vocab.BroadColumnMarkers):
		return domain.ColumnBroadKeywords
	}
	return domain.ColumnOther
}

// columnHasMarker testa o marcador do tipo de correspondência em um cabeçalho já normalizado
func (c *Classifier) columnHasMarker(folded string, kind domain.MatchKind) bool {
	switch kind {
	case domain.MatchExact:
		return containsAny(folded, c.vocab.ExactColumnMarkers)
	case domain.MatchBroad:
		return containsAny(folded, c.vocab.BroadColumnMarkers)
	}
	return false
}

func (c *Classifier) isNegative(folded string) bool {
	return containsAny(folded, c.vocab.NegativeMarkers)
}

// FamilyOf decide a família a partir das categorias encontradas no nome da campanha.
// Quando as duas famílias aparecem, Host vence.
func (c *Classifier) FamilyOf(matched []string) domain.Family {
	if sharesAny(matched, c.vocab.HostAliases) {
		return domain.FamilyHost
	}
	if sharesAny(matched, c.vocab.CaseAliases) {
		return domain.FamilyCase
	}
	return domain.NoFamily
}

// aliases retorna os apelidos normalizados da família
func (c *Classifier) aliases(family domain.Family) []string {
	switch family {
	case domain.FamilyHost:
		return c.vocab.HostAliases
	case domain.FamilyCase:
		return c.vocab.CaseAliases
	}
	return nil
}

func sharesAny(values, set []string) bool {
	for _, v := range values {
		for _, s := range set {
			if v == s {
				return true
			}
		}
	}
	return false
}
