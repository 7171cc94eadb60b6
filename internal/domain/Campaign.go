package domain

// MatchKind é o tipo de segmentação inferido a partir do nome da campanha
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchBroad
	MatchAsinTargeting
)

// MatchPrecedence é a ordem de avaliação do classificador: o primeiro teste satisfeito vence
var MatchPrecedence = []MatchKind{MatchExact, MatchBroad, MatchAsinTargeting}

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchBroad:
		return "broad"
	case MatchAsinTargeting:
		return "asin"
	default:
		return "none"
	}
}

// IsKeyword indica se a campanha gera linhas de palavra-chave
func (k MatchKind) IsKeyword() bool {
	return k == MatchExact || k == MatchBroad
}

// ColumnRole é o papel de uma coluna da pesquisa inferido a partir do cabeçalho
type ColumnRole int

const (
	ColumnOther ColumnRole = iota
	ColumnExactKeywords
	ColumnBroadKeywords
	ColumnAsin
	ColumnNegativeAsin
	ColumnNegativeKeywords
)

func (r ColumnRole) String() string {
	switch r {
	case ColumnExactKeywords:
		return "exact_keywords"
	case ColumnBroadKeywords:
		return "broad_keywords"
	case ColumnAsin:
		return "asin"
	case ColumnNegativeAsin:
		return "negative_asin"
	case ColumnNegativeKeywords:
		return "negative_keywords"
	default:
		return "other"
	}
}

// Family é o grupo de produto usado pelas regras de negativação cruzada
type Family int

const (
	NoFamily Family = iota
	FamilyHost
	FamilyCase
)

func (f Family) String() string {
	switch f {
	case FamilyHost:
		return "host"
	case FamilyCase:
		return "case"
	default:
		return "none"
	}
}

// Opposite retorna a família negativada pela família atual
func (f Family) Opposite() Family {
	switch f {
	case FamilyHost:
		return FamilyCase
	case FamilyCase:
		return FamilyHost
	default:
		return NoFamily
	}
}

// CampaignParams são os parâmetros resolvidos por campanha
type CampaignParams struct {
	CPC         string `json:"cpc"`
	SKU         string `json:"sku"`
	GroupBid    string `json:"group_bid"`
	DailyBudget string `json:"daily_budget"`
	Placement   string `json:"placement"`
	Percentage  string `json:"percentage"`
}

// NegativeKeyword é uma palavra negativa com o tipo de correspondência da lista de origem
type NegativeKeyword struct {
	Text   string
	Phrase bool
}

// Campaign reúne tudo o que a expansão de linhas precisa para uma campanha
type Campaign struct {
	Name             string
	Kind             MatchKind
	Family           Family
	Params           CampaignParams
	Keywords         []string
	NegativeKeywords []NegativeKeyword
	Asins            []string
	NegativeAsins    []string
}

// CampaignSummary resume o que foi gerado para uma campanha
type CampaignSummary struct {
	Name             string `json:"name"`
	Kind             string `json:"kind"`
	Family           string `json:"family"`
	Keywords         int    `json:"keywords"`
	NegativeKeywords int    `json:"negative_keywords"`
	Asins            int    `json:"asins"`
	Rows             int    `json:"rows"`
}
