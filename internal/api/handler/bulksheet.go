package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/bulksheet-generator/infrastructure/spreadsheet"
	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/bulksheet"
	"github.com/vfg2006/bulksheet-generator/pkg/apiErrors"
	"github.com/vfg2006/bulksheet-generator/pkg/log"
)

const (
	uploadField = "file"

	// HeaderRunID identifica a execução que gerou a planilha
	HeaderRunID = "X-Run-ID"
)

// BulksheetServices reúne as dependências das rotas de geração
type BulksheetServices struct {
	Generator      bulksheet.Generator
	Reader         spreadsheet.Reader
	Writer         spreadsheet.Writer
	MaxUploadBytes int64
}

type ValidateSurveyResponse struct {
	Valid      bool                    `json:"valid"`
	Duplicates *domain.DuplicateReport `json:"duplicates,omitempty"`
	Lines      []string                `json:"lines,omitempty"`
}

// GenerateBulksheet recebe a pesquisa em multipart e devolve a planilha de operações em massa como anexo.
// O formato de saída segue ?format=xlsx|csv, com xlsx como padrão.
func GenerateBulksheet(services BulksheetServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.ForContext(ctx)

		outputFormat, err := outputFormatFrom(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		table, filename, ok := readUpload(w, r, services)
		if !ok {
			return
		}

		result, err := services.Generator.Generate(ctx, table)
		if err != nil {
			logger.WithError(err).WithField("file", filename).Warn("Geração recusada")
			writeGenerationError(w, err)
			return
		}

		// Gera em memória para não enviar uma resposta parcial em caso de erro
		var buf bytes.Buffer
		if err := services.Writer.WriteTo(ctx, &buf, outputFormat, result.Header, result.Table()); err != nil {
			logger.WithError(err).Error("Erro ao montar planilha de saída")
			apiErrors.WriteError(w, apiErrors.ErrWriteOutput, "Erro ao gravar a planilha", nil)
			return
		}

		base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		attachment := fmt.Sprintf("%s-bulk-%s%s", base, result.RunID, outputFormat.Extension())

		w.Header().Set("Content-Type", outputFormat.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment))
		w.Header().Set(HeaderRunID, result.RunID)
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			logger.WithError(err).Warn("Erro ao enviar planilha gerada")
		}
	}
}

// ValidateSurvey executa apenas a verificação de palavras-chave repetidas
func ValidateSurvey(services BulksheetServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, _, ok := readUpload(w, r, services)
		if !ok {
			return
		}

		report, err := services.Generator.Validate(r.Context(), table)
		if err != nil {
			writeGenerationError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ValidateSurveyResponse{
			Valid:      !report.HasDuplicates(),
			Duplicates: report,
			Lines:      report.Lines(),
		})
	}
}

func outputFormatFrom(r *http.Request) (spreadsheet.Format, error) {
	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "", string(spreadsheet.FormatXLSX):
		return spreadsheet.FormatXLSX, nil
	case string(spreadsheet.FormatCSV):
		return spreadsheet.FormatCSV, nil
	default:
		return "", errors.Errorf("unsupported output format %q", r.URL.Query().Get("format"))
	}
}

// readUpload lê o arquivo enviado e escreve a resposta de erro quando falha
func readUpload(w http.ResponseWriter, r *http.Request, services BulksheetServices) (*domain.SurveyTable, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadBytes)
	if err := r.ParseMultipartForm(services.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "Arquivo acima do limite permitido", nil)
			return nil, "", false
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return nil, "", false
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo 'file' é obrigatório", nil)
		return nil, "", false
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	format, err := spreadsheet.FormatFromPath(header.Filename)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Envie um arquivo .xlsx ou .csv", nil)
		return nil, "", false
	}

	table, err := services.Reader.ReadFrom(r.Context(), file, format)
	if err != nil {
		log.ForContext(r.Context()).WithError(err).WithField("file", header.Filename).Warn("Pesquisa ilegível")
		writeGenerationError(w, err)
		return nil, "", false
	}

	return table, header.Filename, true
}

// writeGenerationError converte os erros do motor e da leitura em respostas da API
func writeGenerationError(w http.ResponseWriter, err error) {
	if report, ok := bulksheet.DuplicateReportFrom(err); ok {
		apiErrors.WriteError(w, apiErrors.ErrDuplicateKeywords, "Palavras-chave repetidas na pesquisa", report)
		return
	}

	var bulkErr *bulksheet.BulkError
	if errors.As(err, &bulkErr) {
		apiErrors.WriteError(w, bulkErr.Code, bulkErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, spreadsheet.ErrUnreadableSurvey),
		errors.Is(err, spreadsheet.ErrEmptySpreadsheet),
		errors.Is(err, spreadsheet.ErrSheetNotFound):
		apiErrors.WriteError(w, apiErrors.ErrInvalidSurvey, err.Error(), nil)
	case errors.Is(err, spreadsheet.ErrWriteOutput):
		apiErrors.WriteError(w, apiErrors.ErrWriteOutput, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao gerar a planilha", nil)
	}
}
