package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/vfg2006/bulksheet-generator/infrastructure/spreadsheet"
	"github.com/vfg2006/bulksheet-generator/internal/config"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/bulksheet"
	"github.com/vfg2006/bulksheet-generator/pkg/log"
)

// app carrega o estado compartilhado entre os subcomandos
type app struct {
	out    io.Writer
	errOut io.Writer

	cfg *config.Config

	// Sobrescritas por flag; vazio mantém o valor do ambiente
	profile      string
	asinStrategy string
	locale       string
	sheet        string
	logLevel     string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "bulkgen",
		Short: "Gera planilhas de operações em massa de Sponsored Products",
		Long: `bulkgen converte a planilha de pesquisa de palavras-chave na planilha de
operações em massa aceita pelo console de anúncios.

A configuração vem do ambiente (.env) e pode ser sobrescrita pelas flags globais.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.profile, "profile", "", "Survey layout profile (classic|placement)")
	rootCmd.PersistentFlags().StringVar(&a.asinStrategy, "asin-strategy", "", "ASIN column strategy (exact-name|fuzzy)")
	rootCmd.PersistentFlags().StringVar(&a.locale, "locale", "", "Output labels locale (zh|en)")
	rootCmd.PersistentFlags().StringVar(&a.sheet, "sheet", "", "Survey sheet name (default: first sheet)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newTokenCmd(a))
	rootCmd.AddCommand(newHashPasswordCmd(a))

	return rootCmd
}

func (a *app) loadConfig() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	if a.profile != "" {
		cfg.Survey.Profile = a.profile
	}
	if a.asinStrategy != "" {
		cfg.Survey.AsinStrategy = a.asinStrategy
	}
	if a.locale != "" {
		cfg.Output.Locale = a.locale
	}
	if a.sheet != "" {
		cfg.Survey.Sheet = a.sheet
	}
	if a.logLevel != "" {
		cfg.App.LogLevel = a.logLevel
	}

	log.Setup(cfg.App.LogLevel, a.errOut)
	a.cfg = cfg
	return nil
}

// engine monta o gerador e o adaptador de planilhas a partir da configuração carregada
func (a *app) engine() (bulksheet.Generator, *spreadsheet.Workbook, error) {
	opts, err := a.cfg.EngineOptions()
	if err != nil {
		return nil, nil, err
	}

	generator, err := bulksheet.NewService(opts)
	if err != nil {
		return nil, nil, err
	}

	return generator, spreadsheet.NewWorkbook(a.cfg.Survey.Sheet), nil
}
