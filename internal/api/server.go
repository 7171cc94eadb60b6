package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bulksheet-generator/infrastructure/spreadsheet"
	"github.com/vfg2006/bulksheet-generator/internal/api/handler"
	"github.com/vfg2006/bulksheet-generator/internal/api/handler/router"
	"github.com/vfg2006/bulksheet-generator/internal/config"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/authenticating"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/bulksheet"
	"github.com/vfg2006/bulksheet-generator/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Workbook lê pesquisas e grava planilhas
type Workbook interface {
	spreadsheet.Reader
	spreadsheet.Writer
}

func New(
	config *config.Config,
	generator bulksheet.Generator,
	workbook Workbook,
	authenticator authenticating.Authenticator,
	sweeper handler.InboxSweeper,
) (*Server, error) {
	if generator == nil || workbook == nil {
		return nil, fmt.Errorf("api: generator and workbook are required")
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, generator, workbook, authenticator, sweeper),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta o roteador com a cadeia de middlewares globais
func NewHandler(
	config *config.Config,
	generator bulksheet.Generator,
	workbook Workbook,
	authenticator authenticating.Authenticator,
	sweeper handler.InboxSweeper,
) http.Handler {
	authEnabled := config.Auth.Enabled && authenticator != nil

	services := handler.BulksheetServices{
		Generator:      generator,
		Reader:         workbook,
		Writer:         workbook,
		MaxUploadBytes: config.Server.UploadMaxBytes,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator, authEnabled)...),
		router.WithRoutes(handler.Bulksheets(services, authEnabled)...),
		router.WithRoutes(handler.Inbox(sweeper, authEnabled)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins...),
	}
	if authEnabled {
		middlewares = append(middlewares, middleware.AuthMiddleware(authenticator))
	} else {
		logrus.Warn("Autenticação desabilitada: rotas de envio abertas")
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-errCh:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
