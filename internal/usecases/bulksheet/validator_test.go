package bulksheet

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/vfg2006/bulksheet-generator/pkg/log"
)

func TestFindDuplicates(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name     string
		table    *domain.SurveyTable
		indexes  []int
		validate func(t *testing.T, report *domain.DuplicateReport)
	}{
		{
			name:    "Colunas sem repetição",
			table:   newTable([]string{"a", "b"}, []string{"x", "y"}, []string{"z", ""}, []string{"", ""}),
			indexes: []int{0, 1},
			validate: func(t *testing.T, report *domain.DuplicateReport) {
				assert.False(t, report.HasDuplicates())
				assert.Empty(t, report.Lines())
			},
		},
		{
			name:    "Vazios não contam como repetição",
			table:   newTable([]string{"a"}, []string{""}, []string{"  "}, []string{""}),
			indexes: []int{0},
			validate: func(t *testing.T, report *domain.DuplicateReport) {
				assert.False(t, report.HasDuplicates())
			},
		},
		{
			name: "Todas as colunas afetadas entram no relatório",
			table: newTable(
				[]string{"a", "b", "c"},
				[]string{"kw1", "x", "k"},
				[]string{"kw2", "x", "k"},
				[]string{"kw1", "x", "j"},
				[]string{"kw2", "", "k"},
			),
			indexes: []int{0, 1, 2},
			validate: func(t *testing.T, report *domain.DuplicateReport) {
				require.Len(t, report.Columns, 3)

				assert.Equal(t, "A", report.Columns[0].Letter)
				assert.Equal(t, []domain.DuplicateValue{{Value: "kw1", Count: 2}, {Value: "kw2", Count: 2}}, report.Columns[0].Values)
				assert.Equal(t, []domain.DuplicateValue{{Value: "x", Count: 3}}, report.Columns[1].Values)
				assert.Equal(t, []domain.DuplicateValue{{Value: "k", Count: 3}}, report.Columns[2].Values)
				assert.Len(t, report.Lines(), 3)
			},
		},
		{
			name:    "Espaços nas bordas são ignorados",
			table:   newTable([]string{"a"}, []string{"kw1"}, []string{" kw1 "}),
			indexes: []int{0},
			validate: func(t *testing.T, report *domain.DuplicateReport) {
				require.Len(t, report.Columns, 1)
				assert.Equal(t, 2, report.Columns[0].Values[0].Count)
			},
		},
		{
			name:    "Apenas as colunas indicadas são verificadas",
			table:   newTable([]string{"a", "b"}, []string{"x", "y"}, []string{"x", "z"}),
			indexes: []int{1},
			validate: func(t *testing.T, report *domain.DuplicateReport) {
				assert.False(t, report.HasDuplicates())
			},
		},
		{
			name:    "Índices fora da tabela são ignorados",
			table:   newTable([]string{"a"}, []string{"x"}),
			indexes: []int{-1, 5},
			validate: func(t *testing.T, report *domain.DuplicateReport) {
				assert.False(t, report.HasDuplicates())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, FindDuplicates(log.L, tt.table, tt.indexes))
		})
	}
}

func TestFindDuplicates_ColumnLetter(t *testing.T) {
	header := make([]string, 28)
	row := make([]string, 28)
	for i := range header {
		header[i] = string(rune('a'+i%26)) + string(rune('0'+i/26))
	}
	first := append([]string(nil), row...)
	first[27] = "dup"
	second := append([]string(nil), row...)
	second[27] = "dup"

	report := FindDuplicates(log.L, newTable(header, first, second), []int{27})
	require.Len(t, report.Columns, 1)
	assert.Equal(t, "AB", report.Columns[0].Letter)
	assert.Equal(t, 27, report.Columns[0].Index)
}

func TestFindDuplicates_LogsWithRunFields(t *testing.T) {
	log.SetupTestLogger()

	var buf bytes.Buffer
	defer logrus.SetOutput(logrus.StandardLogger().Out)
	logrus.SetOutput(&buf)

	ctx, correlationID := log.WithCorrelationID(context.Background())
	logger := log.ForContext(ctx).WithField("run_id", "run-0001")

	report := FindDuplicates(logger, newTable([]string{"host exact"}, []string{"kw1"}, []string{"kw1"}), []int{0})
	require.True(t, report.HasDuplicates())

	output := buf.String()
	assert.Contains(t, output, "Coluna com palavras-chave repetidas")
	assert.Contains(t, output, "run_id=run-0001")
	assert.Contains(t, output, "correlation_id="+correlationID)
}
