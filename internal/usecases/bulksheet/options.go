package bulksheet

import (
	"fmt"

	"github.com/vfg2006/bulksheet-generator/internal/domain"
)

// Estratégias de associação das colunas de ASIN
const (
	AsinStrategyExactName = "exact-name"
	AsinStrategyFuzzy     = "fuzzy"
)

// ColumnRange é o intervalo de colunas de palavras-chave, base zero e semiaberto [Start, End)
type ColumnRange struct {
	Start int
	End   int
}

// Select retorna os nomes das colunas do intervalo. Um fim além da tabela é truncado.
func (r ColumnRange) Select(names []string) ([]string, []int, error) {
	if r.Start < 0 || r.End <= r.Start {
		return nil, nil, NewBulkError(ErrInvalidColumnRange, CodeInvalidConfig, fmt.Sprintf("[%d, %d)", r.Start, r.End))
	}

	end := r.End
	if end > len(names) {
		end = len(names)
	}

	selected := make([]string, 0, r.End-r.Start)
	indexes := make([]int, 0, r.End-r.Start)
	for i := r.Start; i < end; i++ {
		selected = append(selected, names[i])
		indexes = append(indexes, i)
	}
	return selected, indexes, nil
}

// ParameterColumns são os nomes das colunas de parâmetros por campanha
type ParameterColumns struct {
	CPC         string
	SKU         string
	GroupBid    string
	DailyBudget string
	Placement   string
	Percentage  string
}

// ListColumns são as colunas com listas globais de negativação
type ListColumns struct {
	NegativeExact           string
	NegativePhrase          string
	HostExtraNegativeExact  string
	HostExtraNegativePhrase string
	NegativeAsin            string
}

// Options é a configuração explícita do motor de geração
type Options struct {
	CampaignColumn      string
	KeywordColumns      ColumnRange
	PlacementAdjustment bool
	AsinStrategy        string
	Params              ParameterColumns
	Lists               ListColumns
	Defaults            domain.CampaignParams
	Vocabulary          Vocabulary
	Labels              domain.Labels
}

// DefaultOptions retorna a configuração da revisão com ajuste de lances por posicionamento
func DefaultOptions() Options {
	labels, _ := domain.LabelsFor(domain.LocaleZH)

	return Options{
		CampaignColumn:      "广告活动名称",
		KeywordColumns:      ColumnRange{Start: 9, End: 19},
		PlacementAdjustment: true,
		AsinStrategy:        AsinStrategyExactName,
		Params: ParameterColumns{
			CPC:         "CPC",
			SKU:         "SKU",
			GroupBid:    "广告组默认竞价",
			DailyBudget: "预算",
			Placement:   "广告位",
			Percentage:  "百分比",
		},
		Lists: ListColumns{
			NegativeExact:           "否定精准",
			NegativePhrase:          "否定词组",
			HostExtraNegativeExact:  "宿主额外否精准",
			HostExtraNegativePhrase: "宿主额外否词组",
			NegativeAsin:            "否定ASIN",
		},
		Defaults: domain.CampaignParams{
			CPC:         "0.5",
			SKU:         "SKU-1",
			GroupBid:    "0.6",
			DailyBudget: "12",
			Placement:   "搜索结果顶部（首页）",
			Percentage:  "0",
		},
		Vocabulary: DefaultVocabulary(),
		Labels:     labels,
	}
}

// ClassicOptions retorna a configuração da primeira revisão: colunas 8 a 17,
// sem ajuste de lances e associação aproximada de ASIN
func ClassicOptions() Options {
	opts := DefaultOptions()
	opts.KeywordColumns = ColumnRange{Start: 7, End: 17}
	opts.PlacementAdjustment = false
	opts.AsinStrategy = AsinStrategyFuzzy
	return opts
}

// RequiredParamColumns lista as colunas que precisam existir para confiar nos valores por campanha
func (o Options) RequiredParamColumns() []string {
	cols := []string{o.Params.CPC, o.Params.SKU, o.Params.GroupBid, o.Params.DailyBudget}
	if o.PlacementAdjustment {
		cols = append(cols, o.Params.Placement, o.Params.Percentage)
	}
	return cols
}
