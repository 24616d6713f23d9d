package sri_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DIOR27/mailbill/internal/domain/entity"
	domsri "github.com/DIOR27/mailbill/internal/domain/sri"
	"github.com/DIOR27/mailbill/internal/infrastructure/sri"
)

func parseDocument(t *testing.T, xml string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return doc
}

const facturaCompleta = `<factura id="comprobante" version="1.0.0">
  <infoTributaria>
    <razonSocial>ACME SA</razonSocial>
    <ruc>0999999999001</ruc>
    <estab>001</estab>
    <ptoEmi>001</ptoEmi>
    <secuencial>000000123</secuencial>
  </infoTributaria>
  <infoFactura>
    <fechaEmision>05/09/2024</fechaEmision>
    <totalSinImpuestos>20.00</totalSinImpuestos>
    <importeTotal>23.00</importeTotal>
    <moneda>DOLAR</moneda>
  </infoFactura>
  <detalles>
    <detalle>
      <codigoPrincipal>WID-01</codigoPrincipal>
      <descripcion>Widget</descripcion>
      <cantidad>2</cantidad>
      <precioUnitario>10.00</precioUnitario>
      <descuento>0.00</descuento>
      <precioTotalSinImpuesto>20.00</precioTotalSinImpuesto>
      <impuestos>
        <impuesto>
          <codigo>2</codigo>
          <codigoPorcentaje>4</codigoPorcentaje>
          <tarifa>15</tarifa>
          <baseImponible>20.00</baseImponible>
          <valor>3.00</valor>
        </impuesto>
      </impuestos>
    </detalle>
  </detalles>
</factura>`

func newExtractor(incluirDescuento bool) *sri.Extractor {
	return sri.NewExtractor(domsri.NewTaxComputer(), incluirDescuento)
}

func extraer(t *testing.T, xml string, incluirDescuento bool) *entity.Comprobante {
	t.Helper()
	doc := parseDocument(t, xml)
	c, err := newExtractor(incluirDescuento).Extract(doc)
	require.NoError(t, err)
	return c
}

func TestExtract_Cabecera(t *testing.T) {
	c := extraer(t, facturaCompleta, false)

	assert.Equal(t, "ACME SA", c.RazonSocial)
	assert.Equal(t, "", c.NombreComercial, "nombreComercial ausente queda en blanco")
	assert.Equal(t, "0999999999001", c.RUC)
	assert.Equal(t, "05/09/2024", c.Campo(entity.CampoFechaEmision))
	assert.Equal(t, "20.00", c.Campo(entity.CampoTotalSinImpuestos))
	assert.Equal(t, "23.00", c.Campo(entity.CampoImporteTotal))
}

// El número de factura se concatena como cadenas: una suma numérica
// colapsaría los ceros a la izquierda de cada segmento.
func TestExtract_NumFacturaConcatenado(t *testing.T) {
	c := extraer(t, `<factura><infoTributaria>
		<estab>001</estab><ptoEmi>002</ptoEmi><secuencial>000012345</secuencial>
	</infoTributaria></factura>`, false)

	assert.Equal(t, "001002000012345", c.NumFactura())
}

func TestExtract_DetalleListaPermitida(t *testing.T) {
	c := extraer(t, facturaCompleta, false)

	require.Len(t, c.Detalles, 1)
	d := c.Detalles[0]
	assert.Equal(t, "Widget", d.Descripcion)
	assert.Equal(t, "2", d.Cantidad)
	assert.Equal(t, "10.00", d.PrecioUnitario)
	assert.Equal(t, "20.00", d.PrecioTotalSinImpuesto)
	// descuento no habilitado: se descarta aunque el origen lo traiga.
	assert.Equal(t, "", d.Descuento)

	require.Len(t, d.Impuestos, 1)
	assert.Equal(t, "15", d.Impuestos[0].Tarifa)
	assert.Equal(t, "23.00", d.Impuestos[0].PrecioConImpuesto)
}

func TestExtract_DescuentoConfigurable(t *testing.T) {
	c := extraer(t, facturaCompleta, true)

	require.Len(t, c.Detalles, 1)
	assert.Equal(t, "0.00", c.Detalles[0].Descuento)
}

func TestExtract_SinDetalles(t *testing.T) {
	// Un comprobante sin <detalles> es "nada que anexar", no una falla.
	c := extraer(t, `<factura><infoTributaria><ruc>0999999999001</ruc></infoTributaria></factura>`, false)
	assert.Empty(t, c.Detalles)

	c = extraer(t, `<factura><detalles></detalles></factura>`, false)
	assert.Empty(t, c.Detalles)
}

func TestExtract_TarifaAusenteMontoVacio(t *testing.T) {
	c := extraer(t, `<factura><detalles><detalle>
		<descripcion>Servicio</descripcion>
		<precioTotalSinImpuesto>50.00</precioTotalSinImpuesto>
		<impuestos><impuesto><codigo>2</codigo></impuesto></impuestos>
	</detalle></detalles></factura>`, false)

	require.Len(t, c.Detalles, 1)
	require.Len(t, c.Detalles[0].Impuestos, 1)
	assert.Equal(t, "", c.Detalles[0].Impuestos[0].Tarifa)
	assert.Equal(t, "", c.Detalles[0].Impuestos[0].PrecioConImpuesto,
		"tarifa ausente degrada a monto vacío sin fallar el comprobante")
}

func TestExtract_VariosImpuestosEnOrden(t *testing.T) {
	c := extraer(t, `<factura><detalles><detalle>
		<precioTotalSinImpuesto>100.00</precioTotalSinImpuesto>
		<impuestos>
			<impuesto><tarifa>15</tarifa></impuesto>
			<impuesto><tarifa>5</tarifa></impuesto>
		</impuestos>
	</detalle></detalles></factura>`, false)

	require.Len(t, c.Detalles, 1)
	imps := c.Detalles[0].Impuestos
	require.Len(t, imps, 2)
	// El orden del origen se preserva para las columnas del libro.
	assert.Equal(t, "15", imps[0].Tarifa)
	assert.Equal(t, "115.00", imps[0].PrecioConImpuesto)
	assert.Equal(t, "5", imps[1].Tarifa)
	assert.Equal(t, "105.00", imps[1].PrecioConImpuesto)
}

// Extraer dos veces el mismo documento entrega valores idénticos.
func TestExtract_Idempotente(t *testing.T) {
	doc := parseDocument(t, facturaCompleta)
	ex := newExtractor(false)

	c1, err := ex.Extract(doc)
	require.NoError(t, err)
	c2, err := ex.Extract(doc)
	require.NoError(t, err)

	assert.Equal(t, c1, c2)
}
