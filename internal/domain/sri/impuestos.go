// Package sri contiene la lógica de dominio para comprobantes electrónicos
// del SRI (Ecuador): cálculo de impuestos por línea de detalle y
// validaciones de coherencia del comprobante extraído.
package sri

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxComputer calcula el precio con impuesto de cada línea de detalle.
// Invariante: precioConImpuesto = base * (1 + tarifa/100), redondeado a dos
// decimales. Los montos entran y salen como cadenas decimales; la conversión
// numérica ocurre únicamente aquí.
type TaxComputer struct{}

// NewTaxComputer crea el servicio.
func NewTaxComputer() *TaxComputer {
	return &TaxComputer{}
}

// Compute devuelve base*(1+tarifa/100) con dos decimales, como cadena.
// Con tarifa "0" el resultado es la base sin cambios (re-formateada a dos
// decimales).
func (c *TaxComputer) Compute(base, tarifa string) (string, error) {
	b, err := decimal.NewFromString(base)
	if err != nil {
		return "", fmt.Errorf("sri: monto base inválido %q: %w", base, err)
	}
	t, err := decimal.NewFromString(tarifa)
	if err != nil {
		return "", fmt.Errorf("sri: tarifa inválida %q: %w", tarifa, err)
	}
	factor := decimal.NewFromInt(1).Add(t.Div(decimal.NewFromInt(100)))
	return b.Mul(factor).Round(2).StringFixed(2), nil
}
