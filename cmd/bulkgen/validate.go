package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errSurveyHasDuplicates = errors.New("survey has duplicate keywords")

func newValidateCmd(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a survey for duplicate keywords without generating output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			generator, workbook, err := a.engine()
			if err != nil {
				return err
			}

			table, err := workbook.Read(cmd.Context(), input)
			if err != nil {
				return err
			}

			report, err := generator.Validate(cmd.Context(), table)
			if err != nil {
				return err
			}

			if report.HasDuplicates() {
				for _, line := range report.Lines() {
					fmt.Fprintln(a.out, line)
				}
				return errSurveyHasDuplicates
			}

			fmt.Fprintln(a.out, "ok: no duplicate keywords")
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Survey file (.xlsx or .csv)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
