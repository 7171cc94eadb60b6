package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/bulksheet-generator/infrastructure/spreadsheet"
	spreadsheetmocks "github.com/vfg2006/bulksheet-generator/infrastructure/spreadsheet/mocks"
	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/bulksheet"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/bulksheet/mocks"
	"github.com/vfg2006/bulksheet-generator/pkg/apiErrors"
	"github.com/vfg2006/bulksheet-generator/pkg/log"
	"go.uber.org/mock/gomock"
)

func multipartRequest(t *testing.T, target, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("other", "value"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGenerateBulksheet(t *testing.T) {
	log.SetupTestLogger()

	table := domain.NewSurveyTable(domain.SurveyColumn{Name: "广告活动名称", Cells: []string{"宿主-精准"}})
	result := &domain.GenerationResult{
		RunID:  "abc123",
		Header: []string{"产品", "实体层级"},
		Rows:   []domain.BulkRow{{Product: "商品推广", EntityLevel: "广告活动"}},
	}
	duplicates := &domain.DuplicateReport{Columns: []domain.DuplicateColumn{
		{Index: 9, Letter: "J", Name: "宿主精准词", Values: []domain.DuplicateValue{{Value: "kw1", Count: 2}}},
	}}

	tests := []struct {
		name     string
		request  func(t *testing.T) *http.Request
		maxBytes int64
		setup    func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator)
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Pesquisa válida - retorna a planilha como anexo",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/v1/bulksheets", "file", "pesquisa.xlsx", []byte("xlsx"))
			},
			setup: func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {
				reader.EXPECT().ReadFrom(gomock.Any(), gomock.Any(), spreadsheet.FormatXLSX).Return(table, nil)
				generator.EXPECT().Generate(gomock.Any(), table).Return(result, nil)
				writer.EXPECT().
					WriteTo(gomock.Any(), gomock.Any(), spreadsheet.FormatXLSX, result.Header, result.Table()).
					DoAndReturn(func(_ context.Context, w io.Writer, _ spreadsheet.Format, _ []string, _ [][]string) error {
						_, err := w.Write([]byte("PK-conteudo"))
						return err
					})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, spreadsheet.FormatXLSX.ContentType(), rec.Header().Get("Content-Type"))
				assert.Equal(t, `attachment; filename="pesquisa-bulk-abc123.xlsx"`, rec.Header().Get("Content-Disposition"))
				assert.Equal(t, "abc123", rec.Header().Get(HeaderRunID))
				assert.Equal(t, "PK-conteudo", rec.Body.String())
			},
		},
		{
			name: "Saída em CSV pelo parâmetro format",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/v1/bulksheets?format=csv", "file", "pesquisa.csv", []byte("a,b"))
			},
			setup: func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {
				reader.EXPECT().ReadFrom(gomock.Any(), gomock.Any(), spreadsheet.FormatCSV).Return(table, nil)
				generator.EXPECT().Generate(gomock.Any(), table).Return(result, nil)
				writer.EXPECT().WriteTo(gomock.Any(), gomock.Any(), spreadsheet.FormatCSV, gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, spreadsheet.FormatCSV.ContentType(), rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Header().Get("Content-Disposition"), "pesquisa-bulk-abc123.csv")
			},
		},
		{
			name: "Palavras-chave repetidas - 422 com relatório",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/v1/bulksheets", "file", "pesquisa.xlsx", []byte("xlsx"))
			},
			setup: func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {
				reader.EXPECT().ReadFrom(gomock.Any(), gomock.Any(), gomock.Any()).Return(table, nil)
				generator.EXPECT().Generate(gomock.Any(), table).Return(nil, bulksheet.NewDuplicateError(duplicates))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
				body := decodeAPIError(t, rec)
				assert.Equal(t, apiErrors.ErrDuplicateKeywords, body.Code)
				assert.Contains(t, rec.Body.String(), `"letter":"J"`)
				assert.Contains(t, rec.Body.String(), `"value":"kw1"`)
			},
		},
		{
			name: "Coluna de campanha ausente - 422",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/v1/bulksheets", "file", "pesquisa.xlsx", []byte("xlsx"))
			},
			setup: func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {
				reader.EXPECT().ReadFrom(gomock.Any(), gomock.Any(), gomock.Any()).Return(table, nil)
				generator.EXPECT().Generate(gomock.Any(), table).
					Return(nil, bulksheet.NewBulkError(bulksheet.ErrMissingCampaignColumn, bulksheet.CodeInvalidSurvey, "广告活动名称"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidSurvey, decodeAPIError(t, rec).Code)
			},
		},
		{
			name: "Planilha ilegível - 422",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/v1/bulksheets", "file", "pesquisa.xlsx", []byte("nao-e-zip"))
			},
			setup: func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {
				reader.EXPECT().ReadFrom(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.Wrap(spreadsheet.ErrUnreadableSurvey, "open workbook"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidSurvey, decodeAPIError(t, rec).Code)
			},
		},
		{
			name: "Falha ao montar a saída - 500 sem anexo",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/v1/bulksheets", "file", "pesquisa.xlsx", []byte("xlsx"))
			},
			setup: func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {
				reader.EXPECT().ReadFrom(gomock.Any(), gomock.Any(), gomock.Any()).Return(table, nil)
				generator.EXPECT().Generate(gomock.Any(), table).Return(result, nil)
				writer.EXPECT().WriteTo(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(spreadsheet.ErrWriteOutput)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.Empty(t, rec.Header().Get("Content-Disposition"))
				assert.Equal(t, apiErrors.ErrWriteOutput, decodeAPIError(t, rec).Code)
			},
		},
		{
			name: "Sem o campo file - 400",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/v1/bulksheets", "", "", nil)
			},
			setup: func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeAPIError(t, rec).Code)
			},
		},
		{
			name: "Extensão não suportada - 400",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/v1/bulksheets", "file", "pesquisa.pdf", []byte("%PDF"))
			},
			setup: func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
			},
		},
		{
			name: "Formato de saída inválido - 400",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/v1/bulksheets?format=pdf", "file", "pesquisa.xlsx", []byte("xlsx"))
			},
			setup: func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
			},
		},
		{
			name: "Corpo que não é multipart - 400",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/v1/bulksheets", strings.NewReader("{}"))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			setup: func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code)
			},
		},
		{
			name: "Arquivo acima do limite - 413",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/v1/bulksheets", "file", "pesquisa.xlsx", bytes.Repeat([]byte("x"), 4096))
			},
			maxBytes: 256,
			setup:    func(reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
				assert.Equal(t, apiErrors.ErrPayloadTooLarge, decodeAPIError(t, rec).Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := spreadsheetmocks.NewMockReader(ctrl)
			writer := spreadsheetmocks.NewMockWriter(ctrl)
			generator := mocks.NewMockGenerator(ctrl)
			tt.setup(reader, writer, generator)

			maxBytes := tt.maxBytes
			if maxBytes == 0 {
				maxBytes = 1 << 20
			}

			rec := httptest.NewRecorder()
			GenerateBulksheet(BulksheetServices{
				Generator:      generator,
				Reader:         reader,
				Writer:         writer,
				MaxUploadBytes: maxBytes,
			}).ServeHTTP(rec, tt.request(t))

			tt.validate(t, rec)
		})
	}
}

func TestValidateSurvey(t *testing.T) {
	log.SetupTestLogger()

	table := domain.NewSurveyTable(domain.SurveyColumn{Name: "广告活动名称", Cells: []string{"宿主-精准"}})

	tests := []struct {
		name     string
		report   *domain.DuplicateReport
		err      error
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "Sem duplicidades - válida",
			report: &domain.DuplicateReport{},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var body ValidateSurveyResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.True(t, body.Valid)
				assert.Empty(t, body.Lines)
			},
		},
		{
			name: "Com duplicidades - inválida com linhas do relatório",
			report: &domain.DuplicateReport{Columns: []domain.DuplicateColumn{
				{Index: 10, Letter: "K", Name: "宿主广泛词", Values: []domain.DuplicateValue{{Value: "kw2", Count: 3}}},
			}},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var body ValidateSurveyResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.False(t, body.Valid)
				require.Len(t, body.Lines, 1)
				assert.Contains(t, body.Lines[0], "column K")
			},
		},
		{
			name: "Intervalo de colunas inválido - erro de configuração",
			err:  bulksheet.NewBulkError(bulksheet.ErrInvalidColumnRange, bulksheet.CodeInvalidConfig, "[5, 5)"),
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidConfig, decodeAPIError(t, rec).Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := spreadsheetmocks.NewMockReader(ctrl)
			generator := mocks.NewMockGenerator(ctrl)
			reader.EXPECT().ReadFrom(gomock.Any(), gomock.Any(), spreadsheet.FormatXLSX).Return(table, nil)
			generator.EXPECT().Validate(gomock.Any(), table).Return(tt.report, tt.err)

			rec := httptest.NewRecorder()
			ValidateSurvey(BulksheetServices{
				Generator:      generator,
				Reader:         reader,
				MaxUploadBytes: 1 << 20,
			}).ServeHTTP(rec, multipartRequest(t, "/v1/surveys/validate", "file", "pesquisa.xlsx", []byte("xlsx")))

			tt.validate(t, rec)
		})
	}
}
