package bulksheet

import (
	"strings"

	"github.com/vfg2006/bulksheet-generator/internal/domain"
)

// ParameterLookup mapeia campanha -> parâmetros, com valores padrão para o que faltar
type ParameterLookup struct {
	values   map[string]domain.CampaignParams
	defaults domain.CampaignParams
}

// For retorna os parâmetros da campanha ou o conjunto padrão completo
func (l ParameterLookup) For(campaign string) domain.CampaignParams {
	if params, ok := l.values[campaign]; ok {
		return params
	}
	return l.defaults
}

func (l ParameterLookup) Len() int {
	return len(l.values)
}

// ParameterResolver monta a tabela de parâmetros a partir da primeira linha de cada campanha
type ParameterResolver struct {
	opts Options
}

func NewParameterResolver(opts Options) *ParameterResolver {
	return &ParameterResolver{opts: opts}
}

// Resolve retorna o mapeamento e as colunas obrigatórias ausentes.
// Se qualquer coluna obrigatória faltar, nenhum valor por campanha é usado.
func (r *ParameterResolver) Resolve(table *domain.SurveyTable) (ParameterLookup, []string) {
	lookup := ParameterLookup{
		values:   make(map[string]domain.CampaignParams),
		defaults: r.opts.Defaults,
	}

	missing := make([]string, 0)
	for _, col := range r.opts.RequiredParamColumns() {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return lookup, missing
	}

	names, ok := table.Column(r.opts.CampaignColumn)
	if !ok {
		return lookup, missing
	}

	for row, name := range names.Cells {
		if domain.IsBlank(name) {
			continue
		}
		if _, seen := lookup.values[name]; seen {
			continue
		}
		lookup.values[name] = r.paramsAt(table, row)
	}

	return lookup, missing
}

func (r *ParameterResolver) paramsAt(table *domain.SurveyTable, row int) domain.CampaignParams {
	d := r.opts.Defaults
	p := r.opts.Params

	params := domain.CampaignParams{
		CPC:         cellOr(table, p.CPC, row, d.CPC),
		SKU:         cellOr(table, p.SKU, row, d.SKU),
		GroupBid:    cellOr(table, p.GroupBid, row, d.GroupBid),
		DailyBudget: cellOr(table, p.DailyBudget, row, d.DailyBudget),
		Placement:   d.Placement,
		Percentage:  d.Percentage,
	}
	if r.opts.PlacementAdjustment {
		params.Placement = cellOr(table, p.Placement, row, d.Placement)
		params.Percentage = cellOr(table, p.Percentage, row, d.Percentage)
	}
	return params
}

func cellOr(table *domain.SurveyTable, column string, row int, fallback string) string {
	value := table.Cell(column, row)
	if domain.IsBlank(value) {
		return fallback
	}
	return strings.TrimSpace(value)
}

// UniqueCampaigns retorna os nomes de campanha não vazios na ordem da primeira ocorrência
func UniqueCampaigns(table *domain.SurveyTable, campaignColumn string) []string {
	col, ok := table.Column(campaignColumn)
	if !ok {
		return []string{}
	}

	names := make([]string, 0)
	for _, name := range col.Cells {
		if domain.IsBlank(name) {
			continue
		}
		names = append(names, name)
	}
	return dedupe(names)
}
