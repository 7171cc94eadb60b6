package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/bulksheet"
)

const defaultOutput = "header.xlsx"

func newGenerateCmd(a *app) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the bulk operations sheet from a survey",
		Long: `Lê a pesquisa, recusa a execução se houver palavras-chave repetidas e grava
a planilha de operações em massa. O formato de saída segue a extensão de --output.

Exemplo:
  bulkgen generate -i pesquisa.xlsx -o header.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, input, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Survey file (.xlsx or .csv)")
	cmd.Flags().StringVarP(&output, "output", "o", defaultOutput, "Output file (.xlsx or .csv)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (a *app) generate(cmd *cobra.Command, input, output string) error {
	ctx := cmd.Context()

	generator, workbook, err := a.engine()
	if err != nil {
		return err
	}

	table, err := workbook.Read(ctx, input)
	if err != nil {
		return err
	}

	result, err := generator.Generate(ctx, table)
	if err != nil {
		a.printDuplicates(err)
		return err
	}

	if err := workbook.Write(ctx, output, result.Header, result.Table()); err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(a.errOut, "warning: %s\n", w)
	}
	fmt.Fprintf(a.out, "run %s: %d campaign(s), %d row(s) written to %s\n",
		result.RunID, len(result.Campaigns), len(result.Rows), filepath.Clean(output))

	return nil
}

// printDuplicates escreve uma linha por coluna com valores repetidos
func (a *app) printDuplicates(err error) {
	report, ok := bulksheet.DuplicateReportFrom(err)
	if !ok {
		return
	}

	fmt.Fprintln(a.errOut, "duplicate keywords found, no output written:")
	for _, line := range report.Lines() {
		fmt.Fprintf(a.errOut, "  %s\n", line)
	}
}
