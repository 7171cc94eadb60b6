package bulksheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/vfg2006/bulksheet-generator/pkg/log"
	"github.com/vfg2006/bulksheet-generator/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_generator.go -package=mocks

// Generator converte a planilha de pesquisa na planilha de operações em massa
type Generator interface {
	// Generate executa o pipeline completo; qualquer falha aborta sem saída parcial
	Generate(ctx context.Context, table *domain.SurveyTable) (*domain.GenerationResult, error)

	// Validate executa apenas a verificação de palavras-chave repetidas
	Validate(ctx context.Context, table *domain.SurveyTable) (*domain.DuplicateReport, error)
}

type Service struct {
	opts       Options
	classifier *Classifier
	asin       AsinColumnStrategy
	resolver   *ParameterResolver
	expander   *RowExpander
}

func NewService(opts Options) (Generator, error) {
	classifier := NewClassifier(opts.Vocabulary)

	asin, err := NewAsinStrategy(opts.AsinStrategy, classifier)
	if err != nil {
		return nil, err
	}

	if len(opts.Labels.Header) != domain.BulkColumnCount {
		return nil, NewBulkError(ErrInvalidSurvey, CodeInvalidConfig, "output labels must define 25 columns")
	}

	return &Service{
		opts:       opts,
		classifier: classifier,
		asin:       asin,
		resolver:   NewParameterResolver(opts),
		expander:   NewRowExpander(opts.Labels, opts.PlacementAdjustment),
	}, nil
}

// run é o estado de uma única execução; nada é compartilhado entre execuções
type run struct {
	id       string
	matcher  *ColumnMatcher
	params   ParameterLookup
	lists    globalLists
	rows     []domain.BulkRow
	warnings []string
}

type globalLists struct {
	negativeExact           []string
	negativePhrase          []string
	hostExtraNegativeExact  []string
	hostExtraNegativePhrase []string
	negativeAsin            []string
}

func (s *Service) Validate(ctx context.Context, table *domain.SurveyTable) (*domain.DuplicateReport, error) {
	_, indexes, err := s.prepare(table)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx)
	report := FindDuplicates(logger, table, indexes)
	logger.WithFields(log.Fields{
		"duplicate_columns": len(report.Columns),
	}).Info("Verificação de palavras-chave repetidas concluída")

	return report, nil
}

func (s *Service) Generate(ctx context.Context, table *domain.SurveyTable) (*domain.GenerationResult, error) {
	candidates, indexes, err := s.prepare(table)
	if err != nil {
		return nil, err
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("error generating run id: %w", err)
	}

	logger := log.ForContext(ctx).WithField("run_id", runID)

	if report := FindDuplicates(logger, table, indexes); report.HasDuplicates() {
		logger.WithField("duplicate_columns", len(report.Columns)).
			Error("Palavras-chave repetidas detectadas, a planilha não será gerada")
		return nil, NewDuplicateError(report)
	}

	r := &run{id: runID, rows: make([]domain.BulkRow, 0)}

	if len(candidates) < s.opts.KeywordColumns.End-s.opts.KeywordColumns.Start {
		r.warn(fmt.Sprintf("keyword column range [%d, %d) truncated to %d column(s)",
			s.opts.KeywordColumns.Start, s.opts.KeywordColumns.End, len(candidates)))
	}

	categories := ExtractCategories(table.ColumnNames(), s.opts.Vocabulary)

	params, missing := s.resolver.Resolve(table)
	if len(missing) > 0 {
		r.warn(fmt.Sprintf("missing parameter columns %s, using defaults for every campaign", strings.Join(missing, ", ")))
	}
	r.params = params
	r.lists = s.loadLists(table)
	r.matcher = NewColumnMatcher(table, s.classifier, categories, candidates, s.asin)

	campaigns := UniqueCampaigns(table, s.opts.CampaignColumn)
	logger.WithFields(log.Fields{
		"campaigns":     len(campaigns),
		"categories":    categories.Len(),
		"asin_strategy": s.asin.Name(),
	}).Info("Iniciando geração da planilha")

	summaries := make([]domain.CampaignSummary, 0, len(campaigns))
	for _, name := range campaigns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		campaign := s.plan(r, name)
		rows := s.expander.Expand(campaign)
		r.rows = append(r.rows, rows...)

		summaries = append(summaries, domain.CampaignSummary{
			Name:             campaign.Name,
			Kind:             campaign.Kind.String(),
			Family:           campaign.Family.String(),
			Keywords:         len(campaign.Keywords),
			NegativeKeywords: len(campaign.NegativeKeywords),
			Asins:            len(campaign.Asins),
			Rows:             len(rows),
		})
	}

	for _, w := range r.warnings {
		logger.Warn(w)
	}
	logger.WithField("rows", len(r.rows)).Info("Planilha gerada com sucesso")

	return &domain.GenerationResult{
		RunID:     r.id,
		Header:    s.opts.Labels.Header,
		Rows:      r.rows,
		Campaigns: summaries,
		Warnings:  r.warnings,
	}, nil
}

// prepare valida a tabela e seleciona o intervalo de colunas de palavras-chave
func (s *Service) prepare(table *domain.SurveyTable) ([]string, []int, error) {
	if table == nil {
		return nil, nil, NewBulkError(ErrInvalidSurvey, CodeInvalidSurvey, "empty survey")
	}
	if err := table.Validate(); err != nil {
		return nil, nil, NewBulkError(ErrInvalidSurvey, CodeInvalidSurvey, err.Error())
	}
	if !table.HasColumn(s.opts.CampaignColumn) {
		return nil, nil, NewBulkError(ErrMissingCampaignColumn, CodeInvalidSurvey, s.opts.CampaignColumn)
	}

	return s.opts.KeywordColumns.Select(table.ColumnNames())
}

func (s *Service) loadLists(table *domain.SurveyTable) globalLists {
	l := s.opts.Lists
	return globalLists{
		negativeExact:           dedupe(table.NonBlank(l.NegativeExact)),
		negativePhrase:          dedupe(table.NonBlank(l.NegativePhrase)),
		hostExtraNegativeExact:  dedupe(table.NonBlank(l.HostExtraNegativeExact)),
		hostExtraNegativePhrase: dedupe(table.NonBlank(l.HostExtraNegativePhrase)),
		negativeAsin:            table.NonBlank(l.NegativeAsin),
	}
}

// plan classifica a campanha e reúne as listas de cada nível
func (s *Service) plan(r *run, name string) domain.Campaign {
	m := r.matcher
	campaign := domain.Campaign{
		Name:   name,
		Kind:   s.classifier.Classify(name),
		Family: s.classifier.FamilyOf(m.MatchedCategories(name)),
		Params: r.params.For(name),
	}

	switch campaign.Kind {
	case domain.MatchExact:
		campaign.Keywords = m.ExtractValues(m.PositiveColumns(name, domain.MatchExact))
		campaign.NegativeKeywords = joinNegatives(
			exactNegatives(r.lists.negativeExact),
			phraseNegatives(r.lists.negativePhrase),
			exactNegatives(m.ExtractValues(m.CrossNegativeColumns(name))),
		)

	case domain.MatchBroad:
		campaign.Keywords = m.ExtractValues(m.PositiveColumns(name, domain.MatchBroad))
		campaign.NegativeKeywords = joinNegatives(
			exactNegatives(r.lists.negativeExact),
			phraseNegatives(r.lists.negativePhrase),
			exactNegatives(m.ExtractValues(m.SameCategoryExactColumns(name))),
			exactNegatives(m.ExtractValues(m.CrossNegativeColumns(name))),
		)
		if campaign.Family == domain.FamilyHost {
			campaign.NegativeKeywords = joinNegatives(
				campaign.NegativeKeywords,
				exactNegatives(r.lists.hostExtraNegativeExact),
				phraseNegatives(r.lists.hostExtraNegativePhrase),
			)
		}

	case domain.MatchAsinTargeting:
		campaign.Asins = m.ExtractValues(m.AsinColumns(name))
		campaign.NegativeAsins = r.lists.negativeAsin
	}

	return campaign
}

func (r *run) warn(message string) {
	r.warnings = append(r.warnings, message)
}

func exactNegatives(values []string) []domain.NegativeKeyword {
	return toNegatives(values, false)
}

func phraseNegatives(values []string) []domain.NegativeKeyword {
	return toNegatives(values, true)
}

func toNegatives(values []string, phrase bool) []domain.NegativeKeyword {
	out := make([]domain.NegativeKeyword, 0, len(values))
	for _, v := range values {
		out = append(out, domain.NegativeKeyword{Text: v, Phrase: phrase})
	}
	return out
}

func joinNegatives(lists ...[]domain.NegativeKeyword) []domain.NegativeKeyword {
	out := make([]domain.NegativeKeyword, 0)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
