package domain

// EntityLevel é o nível hierárquico de uma linha da planilha de operações em massa.
// A ordem das constantes é a ordem de emissão dentro de uma campanha.
type EntityLevel int

const (
	LevelCampaign EntityLevel = iota
	LevelBidAdjustment
	LevelAdGroup
	LevelProductAd
	LevelKeyword
	LevelNegativeKeyword
	LevelProductTargeting
	LevelNegativeProductTargeting
)

// EntityLevels lista os níveis na ordem de emissão
var EntityLevels = []EntityLevel{
	LevelCampaign,
	LevelBidAdjustment,
	LevelAdGroup,
	LevelProductAd,
	LevelKeyword,
	LevelNegativeKeyword,
	LevelProductTargeting,
	LevelNegativeProductTargeting,
}

// BulkRow é uma linha da planilha de saída. Os campos seguem a ordem das 25 colunas do modelo.
type BulkRow struct {
	Product                    string `json:"product"`
	EntityLevel                string `json:"entity_level"`
	Operation                  string `json:"operation"`
	CampaignID                 string `json:"campaign_id"`
	AdGroupID                  string `json:"ad_group_id"`
	PortfolioID                string `json:"portfolio_id"`
	AdID                       string `json:"ad_id"`
	KeywordID                  string `json:"keyword_id"`
	ProductTargetingID         string `json:"product_targeting_id"`
	CampaignName               string `json:"campaign_name"`
	AdGroupName                string `json:"ad_group_name"`
	StartDate                  string `json:"start_date"`
	EndDate                    string `json:"end_date"`
	TargetingType              string `json:"targeting_type"`
	State                      string `json:"state"`
	DailyBudget                string `json:"daily_budget"`
	SKU                        string `json:"sku"`
	AdGroupDefaultBid          string `json:"ad_group_default_bid"`
	Bid                        string `json:"bid"`
	KeywordText                string `json:"keyword_text"`
	MatchType                  string `json:"match_type"`
	BiddingStrategy            string `json:"bidding_strategy"`
	Placement                  string `json:"placement"`
	Percentage                 string `json:"percentage"`
	ExtendedProductTargetingID string `json:"extended_product_targeting_id"`

	Level EntityLevel `json:"-"`
}

// BulkColumnCount é o número fixo de colunas da saída
const BulkColumnCount = 25

// NumericColumns são os índices das colunas gravadas como número quando o valor é numérico
var NumericColumns = map[int]struct{}{
	15: {}, // DailyBudget
	17: {}, // AdGroupDefaultBid
	18: {}, // Bid
	23: {}, // Percentage
}

// Values retorna os campos na ordem das colunas de saída
func (r BulkRow) Values() []string {
	return []string{
		r.Product,
		r.EntityLevel,
		r.Operation,
		r.CampaignID,
		r.AdGroupID,
		r.PortfolioID,
		r.AdID,
		r.KeywordID,
		r.ProductTargetingID,
		r.CampaignName,
		r.AdGroupName,
		r.StartDate,
		r.EndDate,
		r.TargetingType,
		r.State,
		r.DailyBudget,
		r.SKU,
		r.AdGroupDefaultBid,
		r.Bid,
		r.KeywordText,
		r.MatchType,
		r.BiddingStrategy,
		r.Placement,
		r.Percentage,
		r.ExtendedProductTargetingID,
	}
}

// GenerationResult é o resultado de uma execução completa do gerador
type GenerationResult struct {
	RunID     string            `json:"run_id"`
	Header    []string          `json:"header"`
	Rows      []BulkRow         `json:"-"`
	Campaigns []CampaignSummary `json:"campaigns"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// Table retorna as linhas como matriz de strings, na ordem das colunas
func (g *GenerationResult) Table() [][]string {
	table := make([][]string, 0, len(g.Rows))
	for _, row := range g.Rows {
		table = append(table, row.Values())
	}
	return table
}
