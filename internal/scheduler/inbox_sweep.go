package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bulksheet-generator/infrastructure/spreadsheet"
	"github.com/vfg2006/bulksheet-generator/internal/config"
	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/bulksheet"
)

// ErrSweepRunning indica que já existe uma varredura em andamento
var ErrSweepRunning = errors.New("inbox sweep already running")

// InboxSweepConfig representa a configuração da varredura da caixa de entrada
type InboxSweepConfig struct {
	CronSchedule string
	InboxDir     string
	OutboxDir    string
	ArchiveDir   string
	SyncEnabled  bool
}

// InboxSweepService gera as planilhas de operações em massa para cada pesquisa deixada na caixa de entrada
type InboxSweepService struct {
	scheduler           *gocron.Scheduler
	config              InboxSweepConfig
	reader              spreadsheet.Reader
	writer              spreadsheet.Writer
	generator           bulksheet.Generator
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *domain.SweepReport
}

func NewInboxSweepService(
	reader spreadsheet.Reader,
	writer spreadsheet.Writer,
	generator bulksheet.Generator,
	appConfig *config.Config,
) *InboxSweepService {
	sweepConfig := InboxSweepConfig{
		CronSchedule: appConfig.Inbox.CronSchedule,
		InboxDir:     appConfig.Inbox.Dir,
		OutboxDir:    appConfig.Inbox.OutboxDir,
		ArchiveDir:   appConfig.Inbox.ArchiveDir,
		SyncEnabled:  appConfig.Inbox.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": sweepConfig.CronSchedule,
		"inbox_dir":     sweepConfig.InboxDir,
		"outbox_dir":    sweepConfig.OutboxDir,
		"archive_dir":   sweepConfig.ArchiveDir,
		"sync_enabled":  sweepConfig.SyncEnabled,
	}).Info("Configuração da varredura da caixa de entrada carregada")

	return &InboxSweepService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    sweepConfig,
		reader:    reader,
		writer:    writer,
		generator: generator,
		baseCtx:   context.Background(),
	}
}

// Start agenda a varredura
func (s *InboxSweepService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Varredura da caixa de entrada desabilitada por configuração")
		return nil
	}

	if err := s.ensureDirs(); err != nil {
		return err
	}

	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador da caixa de entrada")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, ErrSweepRunning) {
			logrus.WithError(err).Error("Erro na varredura agendada da caixa de entrada")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura da caixa de entrada: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da caixa de entrada")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *InboxSweepService) ensureDirs() error {
	for _, dir := range []string{s.config.InboxDir, s.config.OutboxDir, s.config.ArchiveDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("erro ao criar diretório %s: %w", dir, err)
		}
	}
	return nil
}

// RunOnce processa uma vez todos os arquivos da caixa de entrada, em ordem alfabética.
// Arquivos com falha permanecem na caixa de entrada.
func (s *InboxSweepService) RunOnce(ctx context.Context) (*domain.SweepReport, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Varredura da caixa de entrada já em andamento, ignorando")
		return nil, ErrSweepRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	report := &domain.SweepReport{StartedAt: time.Now(), Files: make([]domain.SweepFile, 0)}

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.lastReport = report
		s.syncMutex.Unlock()
	}()

	if err := s.ensureDirs(); err != nil {
		return report, err
	}

	names, err := s.pendingFiles()
	if err != nil {
		return report, err
	}

	if len(names) == 0 {
		logrus.Debug("Nenhuma pesquisa pendente na caixa de entrada")
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Files = append(report.Files, s.processFile(ctx, name))
	}

	report.CompletedAt = time.Now()
	logrus.WithFields(logrus.Fields{
		"files":    len(report.Files),
		"failed":   report.Failed(),
		"duration": report.CompletedAt.Sub(report.StartedAt).String(),
	}).Info("Varredura da caixa de entrada concluída")

	return report, nil
}

// pendingFiles lista as planilhas suportadas, ignorando ocultos e temporários
func (s *InboxSweepService) pendingFiles() ([]string, error) {
	entries, err := os.ReadDir(s.config.InboxDir)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar caixa de entrada: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			continue
		}
		if _, err := spreadsheet.FormatFromPath(name); err != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

func (s *InboxSweepService) processFile(ctx context.Context, name string) domain.SweepFile {
	result := domain.SweepFile{Name: name, Status: domain.SweepFileFailed}
	path := filepath.Join(s.config.InboxDir, name)
	logger := logrus.WithField("file", name)

	table, err := s.reader.Read(ctx, path)
	if err != nil {
		logger.WithError(err).Error("Erro ao ler pesquisa da caixa de entrada")
		result.Error = err.Error()
		return result
	}

	generated, err := s.generator.Generate(ctx, table)
	if err != nil {
		if report, ok := bulksheet.DuplicateReportFrom(err); ok {
			result.Duplicates = report.Lines()
		}
		logger.WithError(err).Error("Erro ao gerar planilha da caixa de entrada")
		result.Error = err.Error()
		return result
	}

	ext := filepath.Ext(name)
	output := filepath.Join(s.config.OutboxDir, fmt.Sprintf("%s-%s%s", strings.TrimSuffix(name, ext), generated.RunID, ext))
	if err := s.writer.Write(ctx, output, generated.Header, generated.Table()); err != nil {
		logger.WithError(err).Error("Erro ao gravar planilha gerada")
		result.Error = err.Error()
		return result
	}

	if err := os.Rename(path, filepath.Join(s.config.ArchiveDir, name)); err != nil {
		// A planilha já foi gerada; o arquivo fica na caixa e será processado de novo
		logger.WithError(err).Warn("Erro ao arquivar pesquisa processada")
	}

	logger.WithFields(logrus.Fields{
		"output": output,
		"run_id": generated.RunID,
		"rows":   len(generated.Rows),
	}).Info("Pesquisa da caixa de entrada processada")

	result.Status = domain.SweepFileGenerated
	result.Output = output
	result.RunID = generated.RunID
	result.Rows = len(generated.Rows)
	return result
}

// TriggerManualSync inicia uma varredura em background; retorna false se já houver uma em andamento
func (s *InboxSweepService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Varredura da caixa de entrada já em andamento, ignorando solicitação manual")
		return false
	}
	ctx := s.baseCtx
	s.syncMutex.Unlock()

	logrus.Info("Iniciando varredura manual da caixa de entrada")
	go func() {
		if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, ErrSweepRunning) {
			logrus.WithError(err).Error("Erro na varredura manual da caixa de entrada")
		}
	}()
	return true
}

// GetStatus retorna o status atual da varredura
func (s *InboxSweepService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"inbox_dir":              s.config.InboxDir,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_report":            s.lastReport,
	}
}
