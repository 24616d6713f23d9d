package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DIOR27/mailbill/internal/application/ingest"
	domsri "github.com/DIOR27/mailbill/internal/domain/sri"
	"github.com/DIOR27/mailbill/internal/infrastructure/ledger"
	"github.com/DIOR27/mailbill/internal/infrastructure/mail"
	infrasri "github.com/DIOR27/mailbill/internal/infrastructure/sri"
	"github.com/DIOR27/mailbill/pkg/config"
	"github.com/DIOR27/mailbill/pkg/logger"
)

// imapSource adapta el cliente IMAP al puerto MailSource del caso de uso.
type imapSource struct {
	c *mail.Client
}

func (s imapSource) Connect() (ingest.MailSession, error) {
	return s.c.Connect()
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Sondea el buzón y anexa los comprobantes nuevos al libro",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateWatch(); err != nil {
				return err
			}

			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			log.Info().
				Str("env", cfg.App.Env).
				Str("buzon", cfg.Mail.Mailbox).
				Str("libro", cfg.Ledger.Path).
				Str("layout", cfg.Ledger.Layout).
				Dur("intervalo", cfg.Mail.CheckInterval).
				Msg("iniciando mailbill")

			uc := ingest.NewProcessUseCase(
				infrasri.NewExtractor(domsri.NewTaxComputer(), cfg.Ledger.IncluirDescuento),
				ledger.NewAppender(ledger.Config{
					Path:             cfg.Ledger.Path,
					Sheet:            cfg.Ledger.Sheet,
					Layout:           ledger.Layout(cfg.Ledger.Layout),
					IncluirDescuento: cfg.Ledger.IncluirDescuento,
				}),
				log,
			)
			source := imapSource{c: mail.NewClient(mail.Config{
				Server:  cfg.Mail.Addr(),
				Account: cfg.Mail.Account,
				Pass:    cfg.Mail.Password,
				Mailbox: cfg.Mail.Mailbox,
			})}
			watcher := ingest.NewWatcher(source, uc, cfg.Mail.CheckInterval, log)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("watcher detenido por error")
				return err
			}
			log.Info().Msg("mailbill detenido")
			return nil
		},
	}
}
