package bulksheet

import (
	"errors"
	"fmt"

	"github.com/vfg2006/bulksheet-generator/internal/domain"
)

// Erros específicos da geração da planilha de operações em massa
var (
	// Erros de entrada
	ErrInvalidSurvey         = errors.New("invalid survey table")
	ErrMissingCampaignColumn = errors.New("campaign name column not found")
	ErrInvalidColumnRange    = errors.New("invalid keyword column range")

	// Erros de qualidade de dados
	ErrDuplicateKeywords = errors.New("duplicate keywords found in survey")

	// Erros de configuração
	ErrUnknownAsinStrategy = errors.New("unknown asin matching strategy")
)

// Códigos usados na resposta da API
const (
	CodeInvalidSurvey     = "BULK_001"
	CodeDuplicateKeywords = "BULK_002"
	CodeInvalidConfig     = "BULK_003"
)

// BulkError é um erro com contexto adicional para a geração
type BulkError struct {
	Err     error                   // Erro base
	Code    string                  // Código de erro para API
	Details string                  // Detalhes adicionais
	Report  *domain.DuplicateReport // Relatório de duplicidades (quando aplicável)
}

// Error implementa a interface error
func (e *BulkError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *BulkError) Unwrap() error {
	return e.Err
}

// NewBulkError cria um novo BulkError
func NewBulkError(err error, code string, details string) *BulkError {
	return &BulkError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewDuplicateError cria o erro de duplicidade carregando o relatório completo
func NewDuplicateError(report *domain.DuplicateReport) *BulkError {
	return &BulkError{
		Err:     ErrDuplicateKeywords,
		Code:    CodeDuplicateKeywords,
		Details: fmt.Sprintf("%d column(s) with repeated keywords", len(report.Columns)),
		Report:  report,
	}
}

// DuplicateReportFrom extrai o relatório de duplicidades de um erro, se houver
func DuplicateReportFrom(err error) (*domain.DuplicateReport, bool) {
	var bulkErr *BulkError
	if errors.As(err, &bulkErr) && bulkErr.Report != nil {
		return bulkErr.Report, true
	}
	return nil, false
}
