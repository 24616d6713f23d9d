package sri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DIOR27/mailbill/internal/domain"
	"github.com/DIOR27/mailbill/internal/infrastructure/sri"
)

const facturaInterna = `<factura id="comprobante" version="1.0.0">` +
	`<infoTributaria><razonSocial>ACME SA</razonSocial><ruc>1790016919001</ruc>` +
	`<estab>001</estab><ptoEmi>001</ptoEmi><secuencial>000000123</secuencial></infoTributaria>` +
	`<infoFactura><fechaEmision>05/09/2024</fechaEmision></infoFactura>` +
	`</factura>`

func TestUnwrap_CDATA(t *testing.T) {
	sobre := `<autorizacion><estado>AUTORIZADO</estado>` +
		`<comprobante><![CDATA[` + facturaInterna + `]]></comprobante></autorizacion>`

	doc, err := sri.Unwrap(sobre)
	require.NoError(t, err)
	assert.Equal(t, "factura", doc.Root().Tag)
}

func TestUnwrap_EntidadesEscapadas(t *testing.T) {
	// Doble escape: el cliente de correo escapó un comprobante que ya venía
	// con entidades. Tras el primer parseo el texto aún contiene &lt;.
	sobre := `<autorizacion><comprobante>&amp;lt;factura&amp;gt;&amp;lt;infoTributaria&amp;gt;` +
		`&amp;lt;ruc&amp;gt;1790016919001&amp;lt;/ruc&amp;gt;` +
		`&amp;lt;/infoTributaria&amp;gt;&amp;lt;/factura&amp;gt;</comprobante></autorizacion>`

	doc, err := sri.Unwrap(sobre)
	require.NoError(t, err)
	assert.Equal(t, "factura", doc.Root().Tag)
}

func TestUnwrap_CDATAEscapado(t *testing.T) {
	// Las dos transformaciones a la vez: marcador CDATA que llegó escapado.
	sobre := `<autorizacion><comprobante>&lt;![CDATA[&amp;lt;factura&amp;gt;&amp;lt;/factura&amp;gt;]]&gt;</comprobante></autorizacion>`

	doc, err := sri.Unwrap(sobre)
	require.NoError(t, err)
	assert.Equal(t, "factura", doc.Root().Tag)
}

func TestUnwrap_SinNodoComprobante(t *testing.T) {
	// El ancla del sobre es obligatoria: se escala, nunca se rellena.
	_, err := sri.Unwrap(`<autorizacion><estado>AUTORIZADO</estado></autorizacion>`)
	assert.ErrorIs(t, err, domain.ErrNodoRequerido)
}

func TestUnwrap_InternoMalformado(t *testing.T) {
	sobre := `<autorizacion><comprobante><![CDATA[<factura><sinCerrar></factura>]]></comprobante></autorizacion>`

	_, err := sri.Unwrap(sobre)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrComprobanteIlegible)
	// El diagnóstico del parser viaja en el mensaje para el log.
	assert.NotEqual(t, domain.ErrComprobanteIlegible.Error(), err.Error())
}

func TestUnwrap_SobreExteriorMalformado(t *testing.T) {
	_, err := sri.Unwrap(`esto no es XML`)
	assert.ErrorIs(t, err, domain.ErrComprobanteIlegible)
}

func TestUnwrap_ComprobanteVacio(t *testing.T) {
	_, err := sri.Unwrap(`<autorizacion><comprobante></comprobante></autorizacion>`)
	assert.ErrorIs(t, err, domain.ErrComprobanteIlegible)
}

// Desenvolver dos veces el mismo sobre produce documentos idénticos: la
// normalización es determinista e idempotente.
func TestUnwrap_Idempotente(t *testing.T) {
	sobre := `<autorizacion><comprobante><![CDATA[` + facturaInterna + `]]></comprobante></autorizacion>`

	d1, err := sri.Unwrap(sobre)
	require.NoError(t, err)
	d2, err := sri.Unwrap(sobre)
	require.NoError(t, err)

	s1, err := d1.WriteToString()
	require.NoError(t, err)
	s2, err := d2.WriteToString()
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}
