package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/authenticating"
)

func newTokenCmd(a *app) *cobra.Command {
	var (
		subject string
		scopes  []string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an HS256 token for the upload API",
		Long: `Emite um token assinado com AUTH_SECRET. Sem --scope o token recebe
todos os escopos.

Exemplo:
  bulkgen token --subject operador --scope bulksheet:upload --ttl 12h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := authenticating.NewService(a.cfg.Auth.Secret).IssueToken(subject, scopes, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Token subject (required)")
	cmd.Flags().StringSliceVar(&scopes, "scope", nil, "Granted scopes (default: all)")
	cmd.Flags().DurationVar(&ttl, "ttl", authenticating.DefaultTokenTTL, "Token lifetime")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func newHashPasswordCmd(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print the bcrypt hash of an operator password",
		Long: `Gera o hash usado em AUTH_OPERATORS (nome:hash). Sem --password a senha
é lida da primeira linha da entrada padrão.

Exemplo:
  echo 'senha' | bulkgen hash-password`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}

			hash, err := authenticating.HashPassword(password)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password to hash (default: read from stdin)")

	return cmd
}
