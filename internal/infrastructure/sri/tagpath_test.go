package sri_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DIOR27/mailbill/internal/domain"
	"github.com/DIOR27/mailbill/internal/infrastructure/sri"
)

func parseDoc(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc.Root()
}

func TestResolve_EtiquetaSimple(t *testing.T) {
	root := parseDoc(t, `<factura><infoTributaria><ruc>1790016919001</ruc></infoTributaria></factura>`)

	// Primera coincidencia en profundidad: no importa el nivel de anidación.
	v, ok := sri.Resolve(root, "ruc")
	assert.True(t, ok)
	assert.Equal(t, "1790016919001", v)
}

func TestResolve_RutaPunteada(t *testing.T) {
	root := parseDoc(t, `<factura><infoFactura><fechaEmision>05/09/2024</fechaEmision></infoFactura></factura>`)

	v, ok := sri.Resolve(root, "infoFactura.fechaEmision")
	assert.True(t, ok)
	assert.Equal(t, "05/09/2024", v)
}

func TestResolve_AusenteYVacioColapsan(t *testing.T) {
	root := parseDoc(t, `<factura><nombreComercial></nombreComercial></factura>`)

	// Nodo ausente y nodo con texto vacío producen el mismo resultado.
	_, ok := sri.Resolve(root, "noExiste")
	assert.False(t, ok)
	_, ok = sri.Resolve(root, "nombreComercial")
	assert.False(t, ok)

	// Exists sí distingue la presencia del nodo.
	assert.True(t, sri.Exists(root, "nombreComercial"))
	assert.False(t, sri.Exists(root, "noExiste"))
}

func TestResolveAll_AlineadoAlPedido(t *testing.T) {
	root := parseDoc(t, `<factura><estab>001</estab><secuencial>000012345</secuencial></factura>`)

	got := sri.ResolveAll(root, "estab", "ptoEmi", "secuencial")
	assert.Equal(t, []string{"001", "", "000012345"}, got)
}

func TestRequireElement(t *testing.T) {
	root := parseDoc(t, `<autorizacion><comprobante>x</comprobante></autorizacion>`)

	n, err := sri.RequireElement(root, "comprobante")
	require.NoError(t, err)
	assert.Equal(t, "comprobante", n.Tag)

	_, err = sri.RequireElement(root, "inexistente")
	assert.ErrorIs(t, err, domain.ErrNodoRequerido)
}
