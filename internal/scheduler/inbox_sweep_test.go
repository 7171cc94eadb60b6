package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	spreadsheetmocks "github.com/vfg2006/bulksheet-generator/infrastructure/spreadsheet/mocks"
	"github.com/vfg2006/bulksheet-generator/internal/config"
	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/bulksheet"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/bulksheet/mocks"
	"github.com/vfg2006/bulksheet-generator/pkg/log"
	"go.uber.org/mock/gomock"
)

func newSweepConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()

	return &config.Config{
		Inbox: config.Inbox{
			Dir:          filepath.Join(root, "inbox"),
			OutboxDir:    filepath.Join(root, "outbox"),
			ArchiveDir:   filepath.Join(root, "archive"),
			CronSchedule: "*/5 * * * *",
			Enabled:      true,
		},
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func sampleResult(runID string) *domain.GenerationResult {
	return &domain.GenerationResult{
		RunID:  runID,
		Header: []string{"h1"},
		Rows: []domain.BulkRow{
			{Product: "商品推广", Level: domain.LevelCampaign},
		},
	}
}

func TestInboxSweepService_RunOnce(t *testing.T) {
	log.SetupTestLogger()

	duplicates := &domain.DuplicateReport{Columns: []domain.DuplicateColumn{
		{Index: 9, Letter: "J", Name: "宿主精准词", Values: []domain.DuplicateValue{{Value: "kw1", Count: 2}}},
	}}

	tests := []struct {
		name     string
		files    []string
		setup    func(cfg *config.Config, reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator)
		validate func(t *testing.T, cfg *config.Config, report *domain.SweepReport, err error)
	}{
		{
			name:  "Caixa de entrada vazia - relatório sem arquivos",
			setup: func(cfg *config.Config, reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {},
			validate: func(t *testing.T, cfg *config.Config, report *domain.SweepReport, err error) {
				require.NoError(t, err)
				assert.Empty(t, report.Files)
				assert.DirExists(t, cfg.Inbox.OutboxDir)
				assert.DirExists(t, cfg.Inbox.ArchiveDir)
			},
		},
		{
			name:  "Pesquisa válida é gerada e arquivada; duplicada permanece na caixa",
			files: []string{"b.csv", "a.xlsx", ".oculto.xlsx", "notas.txt", "~$a.xlsx"},
			setup: func(cfg *config.Config, reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {
				tableA := domain.NewSurveyTable(domain.SurveyColumn{Name: "广告活动名称", Cells: []string{"A"}})
				tableB := domain.NewSurveyTable(domain.SurveyColumn{Name: "广告活动名称", Cells: []string{"B"}})
				result := sampleResult("run1")

				gomock.InOrder(
					reader.EXPECT().Read(gomock.Any(), filepath.Join(cfg.Inbox.Dir, "a.xlsx")).Return(tableA, nil),
					generator.EXPECT().Generate(gomock.Any(), tableA).Return(result, nil),
					writer.EXPECT().
						Write(gomock.Any(), filepath.Join(cfg.Inbox.OutboxDir, "a-run1.xlsx"), result.Header, result.Table()).
						Return(nil),
					reader.EXPECT().Read(gomock.Any(), filepath.Join(cfg.Inbox.Dir, "b.csv")).Return(tableB, nil),
					generator.EXPECT().Generate(gomock.Any(), tableB).Return(nil, bulksheet.NewDuplicateError(duplicates)),
				)
			},
			validate: func(t *testing.T, cfg *config.Config, report *domain.SweepReport, err error) {
				require.NoError(t, err)
				require.Len(t, report.Files, 2)

				assert.Equal(t, "a.xlsx", report.Files[0].Name)
				assert.Equal(t, domain.SweepFileGenerated, report.Files[0].Status)
				assert.Equal(t, "run1", report.Files[0].RunID)
				assert.Equal(t, 1, report.Files[0].Rows)

				assert.Equal(t, "b.csv", report.Files[1].Name)
				assert.Equal(t, domain.SweepFileFailed, report.Files[1].Status)
				assert.Equal(t, duplicates.Lines(), report.Files[1].Duplicates)
				assert.Equal(t, 1, report.Failed())

				assert.FileExists(t, filepath.Join(cfg.Inbox.ArchiveDir, "a.xlsx"))
				assert.NoFileExists(t, filepath.Join(cfg.Inbox.Dir, "a.xlsx"))
				assert.FileExists(t, filepath.Join(cfg.Inbox.Dir, "b.csv"))
			},
		},
		{
			name:  "Falha de leitura - arquivo permanece na caixa",
			files: []string{"quebrado.xlsx"},
			setup: func(cfg *config.Config, reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {
				reader.EXPECT().Read(gomock.Any(), gomock.Any()).Return(nil, errors.New("zip: not a valid zip file"))
			},
			validate: func(t *testing.T, cfg *config.Config, report *domain.SweepReport, err error) {
				require.NoError(t, err)
				require.Len(t, report.Files, 1)
				assert.Equal(t, domain.SweepFileFailed, report.Files[0].Status)
				assert.Contains(t, report.Files[0].Error, "zip")
				assert.FileExists(t, filepath.Join(cfg.Inbox.Dir, "quebrado.xlsx"))
			},
		},
		{
			name:  "Falha de gravação - arquivo permanece na caixa",
			files: []string{"a.csv"},
			setup: func(cfg *config.Config, reader *spreadsheetmocks.MockReader, writer *spreadsheetmocks.MockWriter, generator *mocks.MockGenerator) {
				table := domain.NewSurveyTable()
				reader.EXPECT().Read(gomock.Any(), gomock.Any()).Return(table, nil)
				generator.EXPECT().Generate(gomock.Any(), table).Return(sampleResult("run2"), nil)
				writer.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			validate: func(t *testing.T, cfg *config.Config, report *domain.SweepReport, err error) {
				require.NoError(t, err)
				require.Len(t, report.Files, 1)
				assert.Equal(t, domain.SweepFileFailed, report.Files[0].Status)
				assert.FileExists(t, filepath.Join(cfg.Inbox.Dir, "a.csv"))
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

			cfg := newSweepConfig(t)
			require.NoError(t, os.MkdirAll(cfg.Inbox.Dir, 0o755))
			require.NoError(t, os.MkdirAll(filepath.Join(cfg.Inbox.Dir, "sub.xlsx"), 0o755))
			for _, f := range tt.files {
				touch(t, cfg.Inbox.Dir, f)
			}
			tt.setup(cfg, reader, writer, generator)

			service := NewInboxSweepService(reader, writer, generator, cfg)
			report, err := service.RunOnce(context.Background())

			tt.validate(t, cfg, report, err)

			status := service.GetStatus()
			assert.False(t, status["sync_running"].(bool))
			assert.Equal(t, report, status["last_report"])
		})
	}
}

func TestInboxSweepService_Concurrency(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := newSweepConfig(t)
	service := NewInboxSweepService(
		spreadsheetmocks.NewMockReader(ctrl),
		spreadsheetmocks.NewMockWriter(ctrl),
		mocks.NewMockGenerator(ctrl),
		cfg,
	)

	service.syncRunning = true

	report, err := service.RunOnce(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrSweepRunning)
	assert.False(t, service.TriggerManualSync())
}

func TestInboxSweepService_StartWithManualTrigger(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := newSweepConfig(t)
	service := NewInboxSweepService(
		spreadsheetmocks.NewMockReader(ctrl),
		spreadsheetmocks.NewMockWriter(ctrl),
		mocks.NewMockGenerator(ctrl),
		cfg,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, service.Start(ctx))
	}()
	go func() {
		defer wg.Done()
		assert.True(t, service.TriggerManualSync())
	}()
	wg.Wait()

	assert.Eventually(t, func() bool {
		status := service.GetStatus()
		report, _ := status["last_report"].(*domain.SweepReport)
		return report != nil && !status["sync_running"].(bool)
	}, 2*time.Second, 10*time.Millisecond)
	assert.DirExists(t, cfg.Inbox.OutboxDir)
}

func TestInboxSweepService_CancelledContext(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := newSweepConfig(t)
	touch(t, cfg.Inbox.Dir, "a.xlsx")

	service := NewInboxSweepService(
		spreadsheetmocks.NewMockReader(ctrl),
		spreadsheetmocks.NewMockWriter(ctrl),
		mocks.NewMockGenerator(ctrl),
		cfg,
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.FileExists(t, filepath.Join(cfg.Inbox.Dir, "a.xlsx"))
}

func TestInboxSweepService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := newSweepConfig(t)
	cfg.Inbox.Enabled = false

	service := NewInboxSweepService(
		spreadsheetmocks.NewMockReader(ctrl),
		spreadsheetmocks.NewMockWriter(ctrl),
		mocks.NewMockGenerator(ctrl),
		cfg,
	)

	require.NoError(t, service.Start(context.Background()))
	assert.NoDirExists(t, cfg.Inbox.OutboxDir)
	assert.False(t, service.GetStatus()["sync_enabled"].(bool))
}
