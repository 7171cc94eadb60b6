package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bulksheet-generator/infrastructure/spreadsheet"
	"github.com/vfg2006/bulksheet-generator/internal/api"
	"github.com/vfg2006/bulksheet-generator/internal/config"
	"github.com/vfg2006/bulksheet-generator/internal/scheduler"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/authenticating"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/bulksheet"
	"github.com/vfg2006/bulksheet-generator/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define formato e nível de log com base na configuração
	log.Setup(cfg.App.LogLevel, nil)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts, err := cfg.EngineOptions()
	if err != nil {
		logrus.WithError(err).Fatal("Configuração do motor inválida")
	}

	generator, err := bulksheet.NewService(opts)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar o gerador de planilhas")
	}

	workbook := spreadsheet.NewWorkbook(cfg.Survey.Sheet)

	var authenticator authenticating.Authenticator
	if cfg.Auth.Enabled {
		operators, err := cfg.Auth.OperatorHashes()
		if err != nil {
			logrus.WithError(err).Fatal("Operadores inválidos")
		}
		authenticator = authenticating.NewService(cfg.Auth.Secret, authenticating.WithOperators(operators))
	}

	// Inicia o agendador da caixa de entrada em background
	inboxSweepService := scheduler.NewInboxSweepService(workbook, workbook, generator, cfg)
	if err := inboxSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador da caixa de entrada")
	} else {
		logrus.Info("Agendador da caixa de entrada iniciado com sucesso")
	}

	server, err := api.New(cfg, generator, workbook, authenticator, inboxSweepService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
