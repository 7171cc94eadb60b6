package domain

import "fmt"

// Labels são as constantes textuais gravadas na planilha de saída.
// O importador da plataforma aceita o modelo no idioma da conta.
type Labels struct {
	Locale string

	Header []string

	Product         string
	Operation       string
	State           string
	TargetingType   string
	BiddingStrategy string

	Levels map[EntityLevel]string

	MatchExact          string
	MatchBroad          string
	MatchNegativeExact  string
	MatchNegativePhrase string
}

const (
	LocaleZH = "zh"
	LocaleEN = "en"
)

var labelsZH = Labels{
	Locale: LocaleZH,
	Header: []string{
		"产品", "实体层级", "操作", "广告活动编号", "广告组编号", "广告组合编号", "广告编号", "关键词编号", "商品投放 ID",
		"广告活动名称", "广告组名称", "开始日期", "结束日期", "投放类型", "状态", "每日预算", "SKU", "广告组默认竞价",
		"竞价", "关键词文本", "匹配类型", "竞价方案", "广告位", "百分比", "拓展商品投放编号",
	},
	Product:         "商品推广",
	Operation:       "Create",
	State:           "已启用",
	TargetingType:   "手动",
	BiddingStrategy: "动态竞价 - 仅降低",
	Levels: map[EntityLevel]string{
		LevelCampaign:                 "广告活动",
		LevelBidAdjustment:            "竞价调整",
		LevelAdGroup:                  "广告组",
		LevelProductAd:                "商品广告",
		LevelKeyword:                  "关键词",
		LevelNegativeKeyword:          "否定关键词",
		LevelProductTargeting:         "商品定向",
		LevelNegativeProductTargeting: "否定商品定向",
	},
	MatchExact:          "精准",
	MatchBroad:          "广泛",
	MatchNegativeExact:  "否定精准",
	MatchNegativePhrase: "否定词组",
}

var labelsEN = Labels{
	Locale: LocaleEN,
	Header: []string{
		"Product", "Entity", "Operation", "Campaign ID", "Ad Group ID", "Portfolio ID", "Ad ID", "Keyword ID", "Product Targeting ID",
		"Campaign Name", "Ad Group Name", "Start Date", "End Date", "Targeting Type", "State", "Daily Budget", "SKU", "Ad Group Default Bid",
		"Bid", "Keyword Text", "Match Type", "Bidding Strategy", "Placement", "Percentage", "Product Targeting Expression",
	},
	Product:         "Sponsored Products",
	Operation:       "Create",
	State:           "enabled",
	TargetingType:   "Manual",
	BiddingStrategy: "Dynamic bids - down only",
	Levels: map[EntityLevel]string{
		LevelCampaign:                 "Campaign",
		LevelBidAdjustment:            "Bidding Adjustment",
		LevelAdGroup:                  "Ad Group",
		LevelProductAd:                "Product Ad",
		LevelKeyword:                  "Keyword",
		LevelNegativeKeyword:          "Negative Keyword",
		LevelProductTargeting:         "Product Targeting",
		LevelNegativeProductTargeting: "Negative Product Targeting",
	},
	MatchExact:          "exact",
	MatchBroad:          "broad",
	MatchNegativeExact:  "negativeExact",
	MatchNegativePhrase: "negativePhrase",
}

// LabelsFor retorna o conjunto de rótulos do idioma informado
func LabelsFor(locale string) (Labels, error) {
	switch locale {
	case "", LocaleZH:
		return labelsZH, nil
	case LocaleEN:
		return labelsEN, nil
	default:
		return Labels{}, fmt.Errorf("unsupported output locale %q", locale)
	}
}

// Level retorna o rótulo do nível hierárquico
func (l Labels) Level(level EntityLevel) string {
	return l.Levels[level]
}

// MatchType retorna o rótulo do tipo de correspondência de uma palavra-chave positiva
func (l Labels) MatchType(kind MatchKind) string {
	switch kind {
	case MatchExact:
		return l.MatchExact
	case MatchBroad:
		return l.MatchBroad
	default:
		return ""
	}
}
