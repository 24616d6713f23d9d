package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "1.1.0"

func main() {
	root := &cobra.Command{
		Use:           "mailbill",
		Short:         "Ingesta de comprobantes electrónicos SRI desde el correo a un libro XLSX",
		Long: `mailbill vigila un buzón IMAP, desenvuelve los comprobantes electrónicos
(facturas SRI) que llegan como adjuntos XML y anexa sus campos, con el
impuesto calculado por línea, a un libro de facturas XLSX acumulativo.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(watchCmd(), procesarCmd())

	if err := root.Execute(); err != nil {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
