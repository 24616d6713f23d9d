package sri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DIOR27/mailbill/internal/domain/entity"
	"github.com/DIOR27/mailbill/internal/domain/sri"
)

// Invariante del cálculo de impuestos: monto = base * (1 + tarifa/100),
// redondeado a dos decimales, sin pasar por punto flotante binario.
func TestTaxComputer_IVAQuince(t *testing.T) {
	c := sri.NewTaxComputer()

	got, err := c.Compute("100.00", "15")
	require.NoError(t, err)
	assert.Equal(t, "115.00", got)
}

func TestTaxComputer_TarifaCero(t *testing.T) {
	c := sri.NewTaxComputer()

	got, err := c.Compute("37.52", "0")
	require.NoError(t, err)
	assert.Equal(t, "37.52", got, "con tarifa 0 el monto base no cambia")
}

func TestTaxComputer_Redondeo(t *testing.T) {
	c := sri.NewTaxComputer()

	// 20.00 * 1.15 = 23.00 exacto; 33.33 * 1.12 = 37.3296 -> 37.33
	got, err := c.Compute("20.00", "15")
	require.NoError(t, err)
	assert.Equal(t, "23.00", got)

	got, err = c.Compute("33.33", "12")
	require.NoError(t, err)
	assert.Equal(t, "37.33", got)
}

func TestTaxComputer_EntradasInvalidas(t *testing.T) {
	c := sri.NewTaxComputer()

	_, err := c.Compute("no-numerico", "15")
	assert.Error(t, err)

	_, err = c.Compute("10.00", "")
	assert.Error(t, err)
}

func TestValidateComprobante_Valido(t *testing.T) {
	err := sri.ValidateComprobante(&entity.Comprobante{
		RazonSocial: "ACME SA",
		RUC:         "1790016919001",
		Estab:       "001",
		PtoEmi:      "002",
		Secuencial:  "000003626",
	})
	assert.NoError(t, err)
}

func TestValidateComprobante_AcumulaErrores(t *testing.T) {
	err := sri.ValidateComprobante(&entity.Comprobante{
		RUC:        "1790016918001", // verificador alterado
		Estab:      "1",
		PtoEmi:     "001",
		Secuencial: "123",
	})
	require.Error(t, err)
	// Deben reportarse el RUC, el estab y el secuencial a la vez.
	assert.ErrorIs(t, err, sri.ErrComprobanteInvalido)
}

func TestValidateComprobante_CamposVaciosNoValidan(t *testing.T) {
	// Un comprobante sin RUC ni clave no genera errores de verificador:
	// los campos opcionales ausentes son celdas en blanco, no fallas.
	assert.NoError(t, sri.ValidateComprobante(&entity.Comprobante{}))
}
