package bulksheet

import (
	"fmt"

	"github.com/vfg2006/bulksheet-generator/internal/domain"
)

// RowExpander transforma uma campanha planejada na sequência ordenada de linhas.
// Níveis sem dados não geram linhas; a ordem dos níveis nunca muda.
type RowExpander struct {
	labels              domain.Labels
	placementAdjustment bool
}

func NewRowExpander(labels domain.Labels, placementAdjustment bool) *RowExpander {
	return &RowExpander{labels: labels, placementAdjustment: placementAdjustment}
}

// TargetingExpression monta a expressão de segmentação de produto para um ASIN
func TargetingExpression(asin string) string {
	return fmt.Sprintf("asin=%q", asin)
}

func (e *RowExpander) Expand(c domain.Campaign) []domain.BulkRow {
	rows := make([]domain.BulkRow, 0, 4+len(c.Keywords)+len(c.NegativeKeywords)+len(c.Asins)+len(c.NegativeAsins))

	rows = append(rows, e.campaignRow(c))
	if e.placementAdjustment {
		rows = append(rows, e.bidAdjustmentRow(c))
	}
	rows = append(rows, e.adGroupRow(c), e.productAdRow(c))

	if c.Kind.IsKeyword() {
		for _, keyword := range c.Keywords {
			row := e.base(domain.LevelKeyword, c)
			row.Bid = c.Params.CPC
			row.KeywordText = keyword
			row.MatchType = e.labels.MatchType(c.Kind)
			rows = append(rows, row)
		}

		for _, negative := range c.NegativeKeywords {
			row := e.base(domain.LevelNegativeKeyword, c)
			row.KeywordText = negative.Text
			row.MatchType = e.labels.MatchNegativeExact
			if negative.Phrase {
				row.MatchType = e.labels.MatchNegativePhrase
			}
			rows = append(rows, row)
		}
	}

	if c.Kind == domain.MatchAsinTargeting {
		for _, asin := range c.Asins {
			row := e.base(domain.LevelProductTargeting, c)
			row.Bid = c.Params.CPC
			row.ExtendedProductTargetingID = TargetingExpression(asin)
			rows = append(rows, row)
		}

		for _, asin := range c.NegativeAsins {
			row := e.base(domain.LevelNegativeProductTargeting, c)
			row.ExtendedProductTargetingID = TargetingExpression(asin)
			rows = append(rows, row)
		}
	}

	return rows
}

// base preenche os campos comuns às linhas abaixo do nível de campanha
func (e *RowExpander) base(level domain.EntityLevel, c domain.Campaign) domain.BulkRow {
	return domain.BulkRow{
		Product:     e.labels.Product,
		EntityLevel: e.labels.Level(level),
		Operation:   e.labels.Operation,
		CampaignID:  c.Name,
		AdGroupID:   c.Name,
		State:       e.labels.State,
		Level:       level,
	}
}

func (e *RowExpander) campaignRow(c domain.Campaign) domain.BulkRow {
	return domain.BulkRow{
		Product:         e.labels.Product,
		EntityLevel:     e.labels.Level(domain.LevelCampaign),
		Operation:       e.labels.Operation,
		CampaignID:      c.Name,
		CampaignName:    c.Name,
		TargetingType:   e.labels.TargetingType,
		State:           e.labels.State,
		DailyBudget:     c.Params.DailyBudget,
		BiddingStrategy: e.labels.BiddingStrategy,
		Level:           domain.LevelCampaign,
	}
}

func (e *RowExpander) bidAdjustmentRow(c domain.Campaign) domain.BulkRow {
	return domain.BulkRow{
		Product:         e.labels.Product,
		EntityLevel:     e.labels.Level(domain.LevelBidAdjustment),
		Operation:       e.labels.Operation,
		CampaignID:      c.Name,
		BiddingStrategy: e.labels.BiddingStrategy,
		Placement:       c.Params.Placement,
		Percentage:      c.Params.Percentage,
		Level:           domain.LevelBidAdjustment,
	}
}

func (e *RowExpander) adGroupRow(c domain.Campaign) domain.BulkRow {
	row := e.base(domain.LevelAdGroup, c)
	row.AdGroupName = c.Name
	row.AdGroupDefaultBid = c.Params.GroupBid
	return row
}

func (e *RowExpander) productAdRow(c domain.Campaign) domain.BulkRow {
	row := e.base(domain.LevelProductAd, c)
	row.SKU = c.Params.SKU
	return row
}
