package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/DIOR27/mailbill/internal/application/ingest"
	domsri "github.com/DIOR27/mailbill/internal/domain/sri"
	"github.com/DIOR27/mailbill/internal/infrastructure/ledger"
	infrasri "github.com/DIOR27/mailbill/internal/infrastructure/sri"
	"github.com/DIOR27/mailbill/pkg/config"
	"github.com/DIOR27/mailbill/pkg/logger"
)

// procesarCmd procesa un comprobante suelto desde disco, sin tocar el
// correo. Útil para re-procesar un XML descargado a mano o verificar el
// libro antes de dejar el watcher corriendo.
func procesarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "procesar <archivo.xml>",
		Short: "Anexa al libro un comprobante XML local",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

			datos, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

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
			if err := uc.ProcessInvoiceXML(string(datos)); err != nil {
				return err
			}
			log.Info().Str("archivo", args[0]).Msg("comprobante procesado")
			return nil
		},
	}
}
